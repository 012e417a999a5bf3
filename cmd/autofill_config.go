package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/homebase/internal/ui"
	"github.com/PolarWolf314/homebase/internal/workflows"
)

var autofillConfigApply bool

func init() {
	autofillConfigCmd.Flags().BoolVar(&autofillConfigApply, "apply", false, "record the check as applied")
}

// resetAutofillConfigCommandState resets the autofill-config command's global state for testing.
func resetAutofillConfigCommandState() {
	autofillConfigApply = false
}

var autofillConfigCmd = &cobra.Command{
	Use:   "autofill-config FILE",
	Short: "List the password fields in a config file",
	Long: `Finds password fields in a configuration file and reports whether the vault
holds a password for each. Passwords are looked up under the label
"<file name without extension>_<field>", for example app_password for a
password field in app.env.

The file is never modified.

Examples:
  homebase autofill-config ~/app/app.env
  homebase autofill-config ~/site/login.html`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting autofill-config command")

		result, err := workflows.AutofillConfig(context.Background(), env, workflows.AutofillConfigOptions{
			File:  args[0],
			Apply: autofillConfigApply,
		})
		if err != nil {
			fmt.Println(formatError(err))
			return reported(err)
		}

		fmt.Println(formatConfigMatches(result))
		return nil
	},
}

func formatConfigMatches(result *workflows.AutofillConfigResult) string {
	if len(result.Matches) == 0 {
		return ui.Info.Sprint("ℹ") + " No password fields found in " + ui.Path.Sprint(result.File)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Found %d password fields in ", len(result.Matches)) + ui.Path.Sprint(result.File) + ":\n")
	for _, m := range result.Matches {
		status := ui.Warning.Sprint("✗") + " not saved"
		if m.HasSaved {
			status = ui.Done() + " saved"
		}
		b.WriteString(fmt.Sprintf("  %-10s %s %s %s\n", m.Field, ui.Muted.Sprint(m.Placeholder), ui.Highlight.Sprint(m.Label), status))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
