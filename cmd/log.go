package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/homebase/internal/audit"
	kerrors "github.com/PolarWolf314/homebase/internal/errors"
	"github.com/PolarWolf314/homebase/internal/ui"
	"github.com/PolarWolf314/homebase/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logTaskTypes string
	logStatus    string
	logRequest   string
	logSince     string
	logUntil     string
	logOneline   bool
	logOutput    string
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logTaskTypes, "task", "", "filter by task type (comma-separated)")
	logCmd.Flags().StringVar(&logStatus, "status", "", "filter by stage, e.g. STARTED,COMPLETED (comma-separated)")
	logCmd.Flags().StringVar(&logRequest, "request", "", "show only the records of one request id")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().StringVarP(&logOutput, "output", "o", ui.OutputText, "output format: text, json or yaml")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logTaskTypes = ""
	logStatus = ""
	logRequest = ""
	logSince = ""
	logUntil = ""
	logOneline = false
	logOutput = ui.OutputText
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log. Every task records one entry per pipeline stage it
reaches: STARTED, VALIDATED, PLANNED, POLICY_APPROVED and COMPLETED. A run
that stops early was rejected at the next stage.

Examples:
  homebase log                              # View full log
  homebase log -n 10                        # Last 10 entries
  homebase log --reverse                    # Most recent first
  homebase log --task GENERATE_PASSWORD     # Filter by task type
  homebase log --status completed           # Only finished runs
  homebase log --request 1b9d6bcd-...       # One run
  homebase log --since 2024-01-01           # Filter by date
  homebase log -o json                      # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	encoder, err := ui.NewEncoder(logOutput, os.Stdout)
	if err != nil {
		return err
	}

	opts := workflows.LogOptions{
		Limit:     logLimit,
		Reverse:   logReverse,
		TaskTypes: logTaskTypes,
		Status:    logStatus,
		RequestID: logRequest,
		Since:     logSince,
		Until:     logUntil,
	}

	result, err := workflows.Log(context.Background(), opts)
	if err != nil {
		fmt.Println(formatLogError(err))
		if isLogUnexpectedError(err) {
			return reported(err)
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if encoder != nil {
		entries := result.Entries
		if entries == nil {
			entries = []audit.Entry{}
		}
		return encoder.Encode(entries)
	}

	if len(result.Entries) == 0 {
		fmt.Println("No audit log entries found matching the filters.")
		return nil
	}

	if logOneline {
		outputLogOneline(result.Entries)
		return nil
	}

	outputLogDefault(result.Entries)
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoFilesFound):
		return ui.Info.Sprint("ℹ") + " No audit log found. Entries are recorded when any task runs."

	case errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.Failed() + " " + err.Error()

	default:
		return ui.Failed() + " Failed to read audit log: " + err.Error()
	}
}

// isLogUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrNoFilesFound):
		return false
	default:
		return true
	}
}

func outputLogOneline(entries []audit.Entry) {
	for _, e := range entries {
		fmt.Printf("%s %s %s %s\n", workflows.FormatDateTime(e.Timestamp), workflows.ShortID(e.RequestID), e.TaskType, e.Status)
	}
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e.Details)
		fmt.Printf("%-19s  %-8s  %-24s  %-15s  %s\n", datetime, workflows.ShortID(e.RequestID), e.TaskType, e.Status, details)
	}
}
