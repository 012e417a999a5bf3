package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/homebase/internal/plan"
	"github.com/PolarWolf314/homebase/internal/ui"
	"github.com/PolarWolf314/homebase/internal/utils"
	"github.com/PolarWolf314/homebase/internal/workflows"
)

var (
	runParams string
	runOutput string
	runApply  bool
)

func init() {
	runCmd.Flags().StringVarP(&runParams, "params", "p", "", "task parameters as a JSON object, or - to read them from stdin")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", ui.OutputText, "output format: text, json or yaml")
	runCmd.Flags().BoolVar(&runApply, "apply", false, "carry out the task instead of a dry run")
}

// resetRunCommandState resets the run command's global state for testing.
func resetRunCommandState() {
	runParams = ""
	runOutput = ui.OutputText
	runApply = false
}

var runCmd = &cobra.Command{
	Use:   "run TASK_TYPE",
	Short: "Run any task type with JSON parameters",
	Long: `Builds a task request from a task type and a JSON object of parameters and
sends it through the pipeline. Every task type is accepted, including those
without a dedicated command.

Task types:
  ORGANIZE_DOWNLOADS, CREATE_PROJECT_SCAFFOLD, BULK_RENAME, SEARCH_DOCUMENTS,
  GENERATE_PASSWORD, SCAN_PASSWORD_FIELDS, AUTOFILL_APP, AUTOFILL_CONFIG

Examples:
  homebase run ORGANIZE_DOWNLOADS -p '{"source_dir":"~/Downloads"}'
  homebase run GENERATE_PASSWORD -p '{"label":"github","length":24}' --apply
  echo '{"scope":"~/sites"}' | homebase run SCAN_PASSWORD_FIELDS -p - -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting run command")
		Logger.Debugf("Flags: params=%q, output=%s, apply=%t", runParams, runOutput, runApply)

		encoder, err := ui.NewEncoder(runOutput, os.Stdout)
		if err != nil {
			return err
		}

		params := []byte(runParams)
		if runParams == "-" {
			Logger.Debugf("Reading task parameters from stdin")
			params, err = utils.ReadStdin()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to read parameters: %v", err)
			}
		}

		taskType := strings.ToUpper(strings.TrimSpace(args[0]))
		result, err := workflows.RunTask(context.Background(), env, workflows.RunTaskOptions{
			Type:   taskType,
			Params: params,
			Apply:  runApply,
		})
		if err != nil {
			fmt.Println(formatError(err))
			return reported(err)
		}

		if encoder != nil {
			return encoder.Encode(result)
		}
		if result.Plan.Effect == plan.EffectFilesystem {
			return finishRun(taskType, result, nil)
		}

		fmt.Println(formatActionRun(taskType, result))
		return nil
	},
}

func formatActionRun(name string, result *workflows.RunResult) string {
	head := ui.Done()
	if result.DryRun {
		head = ui.DryRunTag()
	}

	details := make(map[string]any, len(result.Details))
	for k, v := range result.Details {
		if k != "dry_run" {
			details[k] = v
		}
	}

	msg := head + " " + name + " completed " + ui.Muted.Sprint("request "+workflows.ShortID(result.RequestID))
	if s := workflows.FormatDetails(details); s != "" {
		msg += "\n  " + s
	}
	return msg
}
