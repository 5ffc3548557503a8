package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ecdhsim/internal/crypto"
	"ecdhsim/internal/domain"
	"ecdhsim/internal/journal"
)

// run: the full scripted scenario.
func runCmd() *cobra.Command {
	var (
		messages   []string
		refresh    bool
		exportPath string
		passphrase string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation: initialize, share keys, derive secret, send messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sim := appCtx.Simulation

			// Print the log even when a step fails; the error is in it.
			defer func() { _ = journal.Write(os.Stdout, sim.Logs()) }()

			if err := establish(ctx); err != nil {
				return err
			}
			send := func(lines []string) error {
				for _, line := range lines {
					peer, content, err := parseScripted(line)
					if err != nil {
						return err
					}
					if _, err := sim.SendMessage(ctx, peer, content); err != nil {
						return err
					}
				}
				return nil
			}
			if err := send(messages); err != nil {
				return err
			}
			if refresh {
				if err := sim.Refresh(ctx); err != nil {
					return err
				}
				if err := send([]string{"A:Sent after the session key refresh."}); err != nil {
					return err
				}
			}

			printSnapshot(sim.Snapshot())
			for _, m := range sim.Messages() {
				printMessage(m)
			}

			path := exportPath
			if path == "" {
				path = cfg.Export.Path
			}
			if path != "" {
				if err := appCtx.Transcripts.SaveTranscript(path, sim.Transcript(), passphrase); err != nil {
					return err
				}
				fmt.Printf("Transcript written to %s\n", path)
			}
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&messages, "message", "m",
		[]string{"A:Hello Peer B, this is a secure message.", "B:Hi Peer A, message received."},
		"message to send as <peer>:<text> (repeatable)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "refresh the session key and send one more message")
	cmd.Flags().StringVar(&exportPath, "export", "", "write a transcript to this path")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "seal the exported transcript with a passphrase")
	return cmd
}

func printSnapshot(s domain.Snapshot) {
	fmt.Printf("Session %s, step %s, curve %s, kdf %s\n", s.SessionID, s.Step, appCtx.Crypto.Curve(), appCtx.Crypto.KDF())
	fmt.Printf("  next: %s\n", strings.Join(s.AllowedActions, ", "))
	for _, p := range []domain.PeerView{s.PeerA, s.PeerB} {
		fmt.Printf("  Peer %s  %-14s", p.Label, p.PseudoID)
		if p.PublicKey != nil {
			fmt.Printf("  key %s  fp %s", crypto.CompactJWK(p.PublicKey), crypto.Fingerprint(*p.PublicKey))
		}
		if p.HasSharedSecret {
			fmt.Printf("  secret %s", p.SecretFingerprint)
		}
		fmt.Println()
	}
}

func printMessage(m domain.Message) {
	fmt.Printf("#%d %s (%s) at %s\n", m.ID, m.Sender, m.SenderLabel, m.Timestamp.Format("15:04:05"))
	fmt.Printf("  content:    %s\n", m.Content)
	fmt.Printf("  iv:         %s\n", crypto.Hex(m.IV))
	fmt.Printf("  ciphertext: %s\n", crypto.Hex(m.Ciphertext))
	fmt.Printf("  decrypted:  %s\n", m.DecryptedContent)
}
