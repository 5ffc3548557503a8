package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ecdhsim/internal/crypto"
	"ecdhsim/internal/domain"
	"ecdhsim/internal/services/playground"
)

// playground: ad hoc encryption against the derived secret.
func playgroundCmd() *cobra.Command {
	var (
		plaintext string
		tamper    int
	)
	cmd := &cobra.Command{
		Use:   "playground",
		Short: "Encrypt and decrypt with the derived secret, optionally tampering first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := establish(cmd.Context()); err != nil {
				return err
			}
			pg := appCtx.Playground

			st, err := pg.Encrypt(plaintext)
			if err != nil {
				return err
			}
			fmt.Printf("Plaintext:  %s\n", st.Plaintext)
			fmt.Printf("IV:         %s\n", crypto.Hex(st.IV))
			fmt.Printf("Ciphertext: %s\n", crypto.Hex(st.Ciphertext))

			if tamper >= 0 {
				if st, err = pg.Tamper(tamper); err != nil {
					return err
				}
				fmt.Printf("Tampered:   %s (byte %d flipped)\n", crypto.Hex(st.Ciphertext), tamper)
			}

			st, err = pg.Decrypt(nil, nil)
			switch {
			case errors.Is(err, domain.ErrAuthentication):
				fmt.Printf("Error:      %s\n", st.Error)
				if tamper < 0 {
					return err
				}
				return nil
			case err != nil:
				return err
			}
			fmt.Printf("Decrypted:  %s\n", *st.DecryptedText)
			return nil
		},
	}
	cmd.Flags().StringVar(&plaintext, "plaintext", playground.DefaultPlaintext, "text to encrypt")
	cmd.Flags().IntVar(&tamper, "tamper", -1, "flip the ciphertext byte at this index before decrypting")
	return cmd
}
