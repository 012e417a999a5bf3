package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/homebase/internal/configs"
	"github.com/PolarWolf314/homebase/internal/ui"
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config.toml with the default settings",
	Long: `Creates config.toml with the default settings so they can be edited. An
existing file is left untouched.

Examples:
  homebase config init`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")

		_, created, err := configs.EnsureUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to initialize user config: %v", err)
		}

		path := configs.HomebaseSettings.ConfigFilePath
		if !created {
			Logger.Infof("Config already exists at %s", path)
			fmt.Println(ui.Info.Sprint("ℹ") + " Configuration already exists at " + ui.Path.Sprint(path))
			fmt.Println(ui.Hint() + " Run " + ui.Code.Sprint("homebase config show") + " to see it")
			return nil
		}

		fmt.Println(ui.Done() + " Wrote the default configuration to " + ui.Path.Sprint(path))
		return nil
	},
}
