package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/homebase/internal/configs"
	"github.com/PolarWolf314/homebase/internal/ui"
)

var configShowOutput string

func init() {
	configShowCmd.Flags().StringVarP(&configShowOutput, "output", "o", ui.OutputText, "output format: text, json or yaml")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowOutput = ui.OutputText
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current configuration",
	Long: `Displays the effective configuration: config.toml with defaults filled in
for anything it does not set, plus where homebase keeps its files.

Examples:
  homebase config show
  homebase config show -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")
		Logger.Debugf("Flags: output=%s", configShowOutput)

		encoder, err := ui.NewEncoder(configShowOutput, os.Stdout)
		if err != nil {
			return err
		}
		if encoder != nil {
			return encoder.Encode(env.Config)
		}

		outputUserConfigText(env.Settings, env.Config)
		return nil
	},
}

// outputUserConfigText outputs user config in human-readable format.
func outputUserConfigText(settings *configs.Settings, config *configs.UserConfig) {
	fileNote := ui.Muted.Sprint("defaults, no config file")
	if _, err := os.Stat(settings.ConfigFilePath); err == nil {
		fileNote = ui.Muted.Sprint(settings.ConfigFilePath)
	}
	fmt.Println(ui.Info.Sprint("User Configuration") + " " + fileNote + ":")
	fmt.Println()

	fmt.Printf("  %-18s %s\n", "Downloads folder:", ui.Path.Sprint(config.Downloads.Path))
	fmt.Printf("  %-18s %s\n", "Projects folder:", ui.Path.Sprint(config.Projects.Location))
	fmt.Printf("  %-18s %s\n", "Project type:", ui.Highlight.Sprint(config.Projects.Type))
	fmt.Printf("  %-18s %d\n", "Password length:", config.Passwords.Length)
	fmt.Printf("  %-18s %t\n", "Exclude symbols:", config.Passwords.ExcludeSymbols)

	if len(config.Downloads.Categories) > 0 {
		fmt.Println()
		fmt.Println(ui.Info.Sprint("Extra categories:"))
		for _, ext := range sortedKeys(config.Downloads.Categories) {
			fmt.Printf("  %s → %s\n", ext, config.Downloads.Categories[ext])
		}
	}

	if len(config.Projects.Layouts) > 0 {
		fmt.Println()
		fmt.Println(ui.Info.Sprint("Project layouts:"))
		names := make([]string, 0, len(config.Projects.Layouts))
		for name := range config.Projects.Layouts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s → %v\n", ui.Highlight.Sprint(name), config.Projects.Layouts[name])
		}
	}

	if len(config.Apps) > 0 {
		fmt.Println()
		fmt.Println(ui.Info.Sprint("Apps:"))
		for _, app := range sortedKeys(config.Apps) {
			fmt.Printf("  %s → %s\n", app, ui.Highlight.Sprint(config.Apps[app]))
		}
	}

	fmt.Println()
	fmt.Println(ui.Info.Sprint("Files:"))
	fmt.Printf("  %-18s %s\n", "Vault key:", ui.Path.Sprint(settings.VaultKeyPath))
	fmt.Printf("  %-18s %s\n", "Vault:", ui.Path.Sprint(settings.VaultPath))
	fmt.Printf("  %-18s %s\n", "Audit log:", ui.Path.Sprint(settings.AuditLogPath))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
