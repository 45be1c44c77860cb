package cli

import (
	"fmt"

	"github.com/nathfavour/blubot/pkg/config"
	"github.com/nathfavour/blubot/pkg/vault"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// openVault is replaced in tests to keep the OS keychain out of them.
var openVault = vault.Open

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage stored bot tokens",
}

var vaultSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a secret in the vault",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Load(viper.GetViper())
		if _, err := s.EnsureDataDir(); err != nil {
			return err
		}
		if err := openVault(s.SecretsPath()).Set(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Secret '%s' stored.\n", args[0])
		return nil
	},
}

var vaultListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored secrets (values masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Load(viper.GetViper())
		v := openVault(s.SecretsPath())
		keys, err := v.List()
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Vault is empty.")
			return nil
		}
		for _, k := range keys {
			val, err := v.Get(k)
			if err != nil {
				val = "?"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", k, vault.Mask(val))
		}
		return nil
	},
}

func init() {
	vaultCmd.AddCommand(vaultSetCmd)
	vaultCmd.AddCommand(vaultListCmd)
	rootCmd.AddCommand(vaultCmd)
}
