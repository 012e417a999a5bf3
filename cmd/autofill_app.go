package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/homebase/internal/ui"
	"github.com/PolarWolf314/homebase/internal/vault"
	"github.com/PolarWolf314/homebase/internal/workflows"
)

var autofillAppApply bool

func init() {
	autofillAppCmd.Flags().BoolVar(&autofillAppApply, "apply", false, "copy the saved password to the clipboard")
}

// resetAutofillAppCommandState resets the autofill-app command's global state for testing.
func resetAutofillAppCommandState() {
	autofillAppApply = false
}

var autofillAppCmd = &cobra.Command{
	Use:   "autofill-app APP",
	Short: "Fetch the saved password for an application",
	Long: `Looks up the vault label for a known application and, with --apply, copies
its saved password to the clipboard.

Known applications: spotify, discord, steam, slack, zoom and teams. Add your
own in the [apps] section of config.toml.

Examples:
  homebase autofill-app spotify          # Check that a password is saved
  homebase autofill-app spotify --apply  # Copy it to the clipboard`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting autofill-app command")
		Logger.Debugf("Flags: apply=%t", autofillAppApply)

		result, err := workflows.AutofillApp(context.Background(), env, workflows.AutofillAppOptions{
			App:   args[0],
			Apply: autofillAppApply,
		})
		if err != nil {
			fmt.Println(formatError(err))
			return reported(err)
		}

		fmt.Println(formatAutofillApp(result))
		return nil
	},
}

func formatAutofillApp(result *workflows.AutofillAppResult) string {
	app := ui.Highlight.Sprint(result.App)

	if !result.OK {
		switch result.Reason {
		case vault.ReasonUnknownApp:
			return ui.Warning.Sprint("⚠") + " No login is known for " + app + "\n" +
				ui.Hint() + " Map it to a vault label in the [apps] section of config.toml"
		default:
			return ui.Warning.Sprint("⚠") + " No password is saved for " + app + " " + ui.Muted.Sprint("label "+result.Label) + "\n" +
				ui.Hint() + " Run " + ui.Code.Sprint("homebase generate-password "+result.Label+" --apply") + " to create one"
		}
	}

	found := "Found the password for " + app + " " + ui.Muted.Sprint("label "+result.Label) + ": " + ui.Secret.Sprint(result.Masked)
	switch result.Delivery {
	case vault.DeliveryClipboard:
		return ui.Done() + " " + found + "\n" + ui.Hint() + " Copied to the clipboard"
	case vault.DeliveryDisplay:
		return ui.Done() + " " + found + "\n" +
			ui.Warning.Sprint("⚠") + " The clipboard is not available, the password was not copied"
	default:
		return ui.DryRunTag() + " " + found + "\n" +
			ui.Hint() + " Re-run with " + ui.Flag.Sprint("--apply") + " to copy it to the clipboard"
	}
}
