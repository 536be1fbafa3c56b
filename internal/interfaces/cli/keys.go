package cli

import (
	"encoding/base64"
	"fmt"

	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	var (
		blockSize int
		dotenv    bool
	)
	c := &cobra.Command{
		Use:   "keys",
		Short: "Generate cookie keys for the preferred-game cookie (base64)",
		Long: "Prints COOKIE_HASH_KEY and COOKIE_BLOCK_KEY. The hash key signs the cookie;\n" +
			"the block key also encrypts it. Use --block-size 0 to sign only.",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch blockSize {
			case 0, 16, 24, 32:
			default:
				return fmt.Errorf("--block-size must be 0, 16, 24 or 32")
			}
			hash := securecookie.GenerateRandomKey(32)
			if hash == nil {
				return fmt.Errorf("generate hash key: no entropy")
			}
			var block []byte
			if blockSize > 0 {
				if block = securecookie.GenerateRandomKey(blockSize); block == nil {
					return fmt.Errorf("generate block key: no entropy")
				}
			}

			prefix := "export "
			if dotenv {
				prefix = ""
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%sCOOKIE_HASH_KEY=%s\n", prefix, base64.StdEncoding.EncodeToString(hash))
			fmt.Fprintf(out, "%sCOOKIE_BLOCK_KEY=%s\n", prefix, base64.StdEncoding.EncodeToString(block))
			return nil
		},
	}
	c.Flags().IntVar(&blockSize, "block-size", 32, "encryption key size: 16, 24, 32, or 0 to sign only")
	c.Flags().BoolVar(&dotenv, "dotenv", false, "print .env lines instead of shell exports")
	return c
}
