package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	kerrors "github.com/PolarWolf314/homebase/internal/errors"
	"github.com/PolarWolf314/homebase/internal/executor"
	"github.com/PolarWolf314/homebase/internal/plan"
	"github.com/PolarWolf314/homebase/internal/policy"
	"github.com/PolarWolf314/homebase/internal/task"
	"github.com/PolarWolf314/homebase/internal/ui"
	"github.com/PolarWolf314/homebase/internal/utils"
	"github.com/PolarWolf314/homebase/internal/workflows"
)

// startSpinner creates a spinner with the given message. It only animates
// when stdout is a terminal and neither --verbose nor --debug is set.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// prints the final message with ui.EnsureNewline.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	animate := !verbose && !debug && utils.IsStdoutTerminal()
	if animate {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if animate {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if animate {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// formatError turns a pipeline or vault error into the message shown to the
// user.
func formatError(err error) string {
	var (
		schemaErr  *task.SchemaValidationError
		outsideErr *policy.PathOutsideHomeError
		tooMany    *policy.TooManyPathsError
	)

	switch {
	case errors.As(err, &schemaErr):
		var b strings.Builder
		b.WriteString(ui.Failed() + " Invalid parameters for " + ui.Highlight.Sprint(string(schemaErr.Type)) + ":")
		for _, f := range schemaErr.Fields {
			if f.Field == "" {
				b.WriteString("\n    - " + f.Message)
				continue
			}
			b.WriteString("\n    - " + ui.Flag.Sprint(f.Field) + ": " + f.Message)
		}
		return b.String()

	case errors.As(err, &outsideErr):
		msg := ui.Failed() + " Refused: " + ui.Path.Sprint(outsideErr.Path) + " is outside your home directory"
		if outsideErr.Resolved != "" && outsideErr.Resolved != outsideErr.Path {
			msg += " " + ui.Muted.Sprint("resolves to "+outsideErr.Resolved)
		}
		return msg + "\n" + ui.Hint() + " Only paths under " + ui.Path.Sprint(outsideErr.Home) + " can be changed"

	case errors.As(err, &tooMany):
		return ui.Failed() + fmt.Sprintf(" Refused: the plan affects %d paths, the limit is %d", tooMany.Count, tooMany.Limit) + "\n" +
			ui.Hint() + " Split the work into smaller runs"

	case errors.Is(err, kerrors.ErrUnknownTaskType):
		return ui.Failed() + " " + err.Error() + "\n" +
			ui.Hint() + " Known task types: " + knownTaskTypes()

	case errors.Is(err, kerrors.ErrNoPlannerRegistered):
		return ui.Failed() + " " + err.Error() + "\n" +
			ui.Hint() + " This task type is recognised but cannot be run yet"

	case errors.Is(err, kerrors.ErrInvalidParams):
		return ui.Failed() + " " + err.Error() + "\n" +
			ui.Hint() + " Pass the parameters as a JSON object, e.g. " + ui.Code.Sprint(`--params '{"scope":"~/Documents"}'`)

	case errors.Is(err, kerrors.ErrSourceUnreadable):
		return ui.Failed() + " " + err.Error()

	case errors.Is(err, kerrors.ErrEmptyCharset), errors.Is(err, kerrors.ErrInvalidLength):
		return ui.Failed() + " " + err.Error()

	case errors.Is(err, kerrors.ErrKeyUnavailable):
		return ui.Failed() + " The vault key could not be used: " + err.Error() + "\n" +
			ui.Hint() + " Check the permissions of " + ui.Path.Sprint(env.Settings.VaultKeyPath)

	case errors.Is(err, kerrors.ErrVaultCorrupted):
		return ui.Failed() + " The vault could not be decrypted\n" +
			ui.Hint() + " " + ui.Path.Sprint(env.Settings.VaultPath) + " is damaged or was written with a different key"

	case errors.Is(err, kerrors.ErrFileNotFound):
		return ui.Failed() + " " + err.Error()

	default:
		return ui.Failed() + " " + err.Error()
	}
}

func knownTaskTypes() string {
	names := make([]string, 0, len(task.Types()))
	for _, t := range task.Types() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

// formatPlan lists the steps of a filesystem run and, when applied, their
// outcomes.
func formatPlan(name string, result *workflows.RunResult) string {
	var b strings.Builder

	if result.DryRun {
		b.WriteString(ui.DryRunTag() + " ")
	}
	b.WriteString(fmt.Sprintf("%s: %d steps %s\n", name, len(result.Plan.Steps), ui.Muted.Sprint("request "+workflows.ShortID(result.RequestID))))

	if len(result.Plan.Steps) == 0 {
		b.WriteString(ui.Info.Sprint("ℹ") + " Nothing to do")
		return b.String()
	}

	for i, step := range result.Plan.Steps {
		marker := ui.Info.Sprint("•")
		suffix := ""
		if result.Report != nil && i < len(result.Report.Results) {
			res := result.Report.Results[i]
			switch res.Outcome {
			case executor.OutcomeDone:
				marker = ui.Done()
			case executor.OutcomeFailed:
				marker = ui.Failed()
				suffix = " " + ui.Muted.Sprint(res.Message)
			case executor.OutcomeSkipped:
				marker = ui.Warning.Sprint("-")
				suffix = " " + ui.Muted.Sprint(res.Message)
			}
		}
		b.WriteString("  " + marker + " " + formatStep(step) + suffix + "\n")
	}

	if result.DryRun {
		b.WriteString(ui.Hint() + " Re-run with " + ui.Flag.Sprint("--apply") + " to make these changes")
		return b.String()
	}

	failed := result.Report.Count(executor.OutcomeFailed)
	done := result.Report.Count(executor.OutcomeDone)
	if failed > 0 {
		b.WriteString(ui.Failed() + fmt.Sprintf(" %d of %d steps failed", failed, len(result.Plan.Steps)))
	} else {
		b.WriteString(ui.Done() + fmt.Sprintf(" Applied %d of %d steps", done, len(result.Plan.Steps)))
	}
	return b.String()
}

func formatStep(step plan.Step) string {
	switch step.Type {
	case plan.StepCreateDir:
		return string(step.Type) + " " + ui.Path.Sprint(step.Args[plan.ArgPath])
	case plan.StepMoveFile:
		return string(step.Type) + " " + ui.Path.Sprint(step.Args[plan.ArgSrc]) + " → " + ui.Path.Sprint(step.Args[plan.ArgDst])
	}
	return step.String()
}

// finishRun prints a filesystem run and reports step failures as a non-zero
// exit.
func finishRun(name string, result *workflows.RunResult, err error) error {
	if err != nil {
		fmt.Println(formatError(err))
		return reported(err)
	}

	fmt.Println(formatPlan(name, result))
	if result.Report != nil {
		if failures := result.Report.Failures(); len(failures) > 0 {
			return reported(failures[0])
		}
	}
	return nil
}
