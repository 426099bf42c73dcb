package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cookie/auth"
)

// keyCmd manages the API key stored in the system keyring
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the API key stored in the system keyring",
}

var keySetCmd = &cobra.Command{
	Use:   "set <api_key>",
	Short: "Store an API key in the system keyring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.SetAPIKey(args[0]); err != nil {
			return fmt.Errorf("failed to store API key: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "API key stored in keyring")
		return nil
	},
}

var keyDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the API key from the system keyring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.DeleteAPIKey(); err != nil {
			return fmt.Errorf("failed to delete API key: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "API key removed from keyring")
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyDeleteCmd)
	rootCmd.AddCommand(keyCmd)
}
