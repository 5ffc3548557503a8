package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ecdhsim/internal/crypto"
)

func keygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair and print its exported public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := appCtx.Crypto.GenerateKeyPair(cmd.Context())
			if err != nil {
				return err
			}
			jwk, err := appCtx.Crypto.ExportPublicKey(kp.Public)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(jwk, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			fmt.Printf("Fingerprint: %s\n", crypto.Fingerprint(jwk))
			return nil
		},
	}
	return cmd
}
