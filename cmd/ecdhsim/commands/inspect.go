package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ecdhsim/internal/journal"
)

// inspect <file>: print an exported transcript.
func inspectCmd() *cobra.Command {
	var passphrase string
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print a transcript written by run --export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := appCtx.Transcripts.LoadTranscript(args[0], passphrase)
			if err != nil {
				return err
			}
			fmt.Printf("Session %s, step %s, exported %s\n", t.SessionID, t.Step, t.ExportedAt.Format("2006-01-02 15:04:05"))
			for _, p := range t.Peers {
				fmt.Printf("  Peer %s  %s  secret %s\n", p.Label, p.PseudoID, p.SecretFingerprint)
			}
			for _, m := range t.Messages {
				printMessage(m)
			}
			fmt.Println()
			return journal.Write(os.Stdout, t.Logs)
		},
	}
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase of a sealed transcript")
	return cmd
}
