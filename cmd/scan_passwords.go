package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/homebase/internal/ui"
	"github.com/PolarWolf314/homebase/internal/vault"
	"github.com/PolarWolf314/homebase/internal/workflows"
)

var (
	scanScope   string
	scanExclude []string
	scanOutput  string
	scanApply   bool
)

func init() {
	scanPasswordsCmd.Flags().StringVar(&scanScope, "scope", "~", "folder to scan")
	scanPasswordsCmd.Flags().StringArrayVar(&scanExclude, "exclude", nil, "glob of paths to skip, relative to the scope (repeatable)")
	scanPasswordsCmd.Flags().StringVarP(&scanOutput, "output", "o", ui.OutputText, "output format: text, json or yaml")
	scanPasswordsCmd.Flags().BoolVar(&scanApply, "apply", false, "record the scan as applied")
}

// resetScanPasswordsCommandState resets the scan-passwords command's global state for testing.
func resetScanPasswordsCommandState() {
	scanScope = "~"
	scanExclude = nil
	scanOutput = ui.OutputText
	scanApply = false
}

var scanPasswordsCmd = &cobra.Command{
	Use:   "scan-passwords",
	Short: "Find password fields in text files",
	Long: `Looks through the html, txt, md, conf, json and yaml files under a folder for
lines that look like password fields, and suggests whether to autofill a
saved password or generate a new one.

Scanning only reads files, so it runs with or without --apply.

Examples:
  homebase scan-passwords --scope ~/sites
  homebase scan-passwords --scope ~/code --exclude 'node_modules/**' --exclude '**/.git'
  homebase scan-passwords --scope ~/sites -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting scan-passwords command")
		Logger.Debugf("Flags: scope=%q, exclude=%v, output=%s, apply=%t", scanScope, scanExclude, scanOutput, scanApply)

		encoder, err := ui.NewEncoder(scanOutput, os.Stdout)
		if err != nil {
			return err
		}

		// Keep the spinner off structured output.
		spinnerVerbose := verbose || encoder != nil
		spinner, cleanup := startSpinner("Scanning "+scanScope+"...", spinnerVerbose)
		defer cleanup()

		result, err := workflows.ScanPasswords(context.Background(), env, workflows.ScanPasswordsOptions{
			Scope:   scanScope,
			Exclude: scanExclude,
			Apply:   scanApply,
		})
		if err != nil {
			spinner.FinalMSG = formatError(err)
			return reported(err)
		}

		if encoder != nil {
			return encoder.Encode(result)
		}
		spinner.FinalMSG = formatFindings(result)
		return nil
	},
}

func formatFindings(result *workflows.ScanPasswordsResult) string {
	if len(result.Findings) == 0 {
		return ui.Done() + " No password fields found under " + ui.Path.Sprint(result.Scope)
	}

	var b strings.Builder
	b.WriteString(ui.Warning.Sprint("⚠") + fmt.Sprintf(" Found %d files with password fields under ", len(result.Findings)) + ui.Path.Sprint(result.Scope) + ":\n")
	for _, f := range result.Findings {
		suggestion := "generate a new password with " + ui.Code.Sprint("homebase generate-password "+f.Label+" --apply")
		if f.Suggestion == vault.SuggestAutofillSaved {
			suggestion = "a saved password exists for " + ui.Highlight.Sprint(f.Label)
		}
		b.WriteString("  " + ui.Path.Sprint(f.File) + " " + ui.Muted.Sprintf("confidence %d%%", f.Confidence) + "\n")
		b.WriteString("    " + ui.Hint() + " " + suggestion + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
