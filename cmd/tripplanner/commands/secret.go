package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tripplanner/internal/store"
)

func secretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage the encrypted secrets file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <name> [value]",
		Short: "Store a secret (value is read from stdin when omitted)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			value := ""
			if len(args) == 2 {
				value = args[1]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read secret from stdin: %w", err)
				}
				value = strings.TrimSpace(line)
			}
			if value == "" {
				return fmt.Errorf("empty value for %s", args[0])
			}

			secrets := store.NewSecretFileStore(cfg.Home)
			if err := secrets.SaveSecret(cfg.Passphrase, args[0], value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %s (fingerprint %s) in %s\n", args[0], store.Fingerprint(value), secrets.Path())
			return nil
		},
	})
	return cmd
}
