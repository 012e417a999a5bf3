package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/homebase/internal/workflows"
)

var (
	organizePath  string
	organizeApply bool
)

func init() {
	organizeDownloadsCmd.Flags().StringVar(&organizePath, "path", "", "folder to organize (default from config, ~/Downloads)")
	organizeDownloadsCmd.Flags().BoolVar(&organizeApply, "apply", false, "move the files instead of showing the plan")
}

// resetOrganizeDownloadsCommandState resets the organize-downloads command's global state for testing.
func resetOrganizeDownloadsCommandState() {
	organizePath = ""
	organizeApply = false
}

var organizeDownloadsCmd = &cobra.Command{
	Use:   "organize-downloads",
	Short: "Sort a downloads folder into category folders",
	Long: `Moves the files directly inside a folder into subfolders named after their
category, such as Images, Documents, Archives or Installers. Files with an
unknown extension go to Other.

Subfolders are left alone. Categories can be extended in the [downloads]
section of config.toml.

Examples:
  homebase organize-downloads                      # Show the plan for ~/Downloads
  homebase organize-downloads --apply              # Move the files
  homebase organize-downloads --path ~/Desktop     # Organize another folder`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting organize-downloads command")
		Logger.Debugf("Flags: path=%q, apply=%t", organizePath, organizeApply)

		result, err := workflows.OrganizeDownloads(context.Background(), env, workflows.OrganizeDownloadsOptions{
			SourceDir: organizePath,
			Apply:     organizeApply,
		})
		return finishRun("organize-downloads", result, err)
	},
}
