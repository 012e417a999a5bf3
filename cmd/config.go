package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage homebase configuration",
	Long: `Provides commands for viewing and creating the user configuration file.

The configuration lives in config.toml next to the vault and the audit log,
under your user configuration directory (HOMEBASE_CONFIG_DIR overrides it).
It sets the default downloads folder, project location and layouts, password
length, and the application to vault label mapping used by autofill-app.

Examples:
  # Write a config.toml with the defaults
  homebase config init

  # Show the effective configuration
  homebase config show
  homebase config show -o yaml`,
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

// resetConfigCobraFlagState resets the flag state for all config commands to prevent test pollution.
func resetConfigCobraFlagState() {
	for _, c := range append([]*cobra.Command{ConfigCmd}, ConfigCmd.Commands()...) {
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}
