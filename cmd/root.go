package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/homebase/internal/configs"
	logger "github.com/PolarWolf314/homebase/internal/logging"
	"github.com/PolarWolf314/homebase/internal/ui"
	"github.com/PolarWolf314/homebase/internal/vault"
	"github.com/PolarWolf314/homebase/internal/workflows"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// env is built in PersistentPreRunE and shared by every subcommand.
	env *workflows.Env

	// clipboardOverride replaces the system clipboard when set (tests).
	clipboardOverride vault.Clipboard

	RootCmd = &cobra.Command{
		Use:   "homebase",
		Short: "Homebase - a personal automation assistant for files and passwords.",
		Long: `Homebase runs everyday chores through a checked pipeline: every task is
validated, planned, approved by a safety policy and only then carried out.
Every stage is recorded in an audit log.

Features:
  - Sort a downloads folder into category folders
  - Scaffold new project directories
  - Generate passwords into an encrypted local vault
  - Find password fields in files and autofill saved passwords

Nothing is changed unless you pass --apply. Without it, every command is a
dry run that shows what would happen.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)

			Logger.Debugf("Loading user config from %s", configs.HomebaseSettings.ConfigFilePath)
			config, err := configs.LoadUserConfig()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to load user config: %v", err)
			}

			env = workflows.NewEnv(configs.HomebaseSettings, config, Logger)
			if clipboardOverride != nil {
				env.Clipboard = clipboardOverride
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner(cmd.OutOrStdout())
			return cmd.Usage()
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(organizeDownloadsCmd)
	RootCmd.AddCommand(createProjectCmd)
	RootCmd.AddCommand(generatePasswordCmd)
	RootCmd.AddCommand(scanPasswordsCmd)
	RootCmd.AddCommand(autofillAppCmd)
	RootCmd.AddCommand(autofillConfigCmd)
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(ConfigCmd)
}

func printBanner(w io.Writer) {
	banner := figure.NewFigure("homebase", "standard", true)
	fmt.Fprintln(w, ui.Success.Sprint(banner.String()))
}

// reportedError marks an error whose message has already been printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// Execute runs the root command. Errors that were not already shown to the
// user are printed to stderr.
func Execute() error {
	err := RootCmd.Execute()
	var r *reportedError
	if err != nil && !errors.As(err, &r) {
		fmt.Fprintln(os.Stderr, ui.Failed()+" "+err.Error())
	}
	return err
}

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}
