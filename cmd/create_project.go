package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/homebase/internal/workflows"
)

var (
	createProjectLocation string
	createProjectType     string
	createProjectApply    bool
)

func init() {
	createProjectCmd.Flags().StringVar(&createProjectLocation, "location", "", "parent folder (default from config, ~/Projects)")
	createProjectCmd.Flags().StringVar(&createProjectType, "type", "", "project layout (default from config, python_project)")
	createProjectCmd.Flags().BoolVar(&createProjectApply, "apply", false, "create the directories instead of showing the plan")
}

// resetCreateProjectCommandState resets the create-project command's global state for testing.
func resetCreateProjectCommandState() {
	createProjectLocation = ""
	createProjectType = ""
	createProjectApply = false
}

var createProjectCmd = &cobra.Command{
	Use:   "create-project NAME",
	Short: "Scaffold a new project directory",
	Long: `Creates a project folder and the subdirectories of its layout.

The python_project layout creates src, tests and docs. Other layouts can be
added in the [projects.layouts] section of config.toml. An unknown type
creates only the project folder.

Examples:
  homebase create-project demo                         # Show the plan
  homebase create-project demo --apply                 # Create ~/Projects/demo
  homebase create-project api --location ~/work --apply`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting create-project command")
		Logger.Debugf("Flags: location=%q, type=%q, apply=%t", createProjectLocation, createProjectType, createProjectApply)

		result, err := workflows.CreateProject(context.Background(), env, workflows.CreateProjectOptions{
			Name:        args[0],
			Location:    createProjectLocation,
			ProjectType: createProjectType,
			Apply:       createProjectApply,
		})
		return finishRun("create-project", result, err)
	},
}
