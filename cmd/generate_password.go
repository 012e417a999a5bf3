package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/homebase/internal/ui"
	"github.com/PolarWolf314/homebase/internal/vault"
	"github.com/PolarWolf314/homebase/internal/workflows"
)

var (
	generateLength         int
	generateExcludeSymbols bool
	generateCopy           bool
	generateApply          bool
)

func init() {
	generatePasswordCmd.Flags().IntVarP(&generateLength, "length", "l", 0, "password length, 8 to 128 (default from config, 20)")
	generatePasswordCmd.Flags().BoolVar(&generateExcludeSymbols, "exclude-symbols", false, "leave symbols out of the password")
	generatePasswordCmd.Flags().BoolVar(&generateCopy, "copy", false, "copy the new password to the clipboard")
	generatePasswordCmd.Flags().BoolVar(&generateApply, "apply", false, "generate and store the password")
}

// resetGeneratePasswordCommandState resets the generate-password command's global state for testing.
func resetGeneratePasswordCommandState() {
	generateLength = 0
	generateExcludeSymbols = false
	generateCopy = false
	generateApply = false
}

var generatePasswordCmd = &cobra.Command{
	Use:   "generate-password LABEL",
	Short: "Generate a password and store it in the vault",
	Long: `Generates a random password and stores it under LABEL in the encrypted
vault, replacing any password already stored there.

The password itself is never printed. Use --copy to put it on the clipboard,
or autofill-app to fetch it later.

Examples:
  homebase generate-password github                     # Show the policy and strength
  homebase generate-password github --apply             # Generate and store
  homebase generate-password bank -l 24 --apply --copy  # Longer, copied to clipboard
  homebase generate-password wifi --exclude-symbols --apply`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting generate-password command")
		Logger.Debugf("Flags: length=%d, exclude-symbols=%t, copy=%t, apply=%t", generateLength, generateExcludeSymbols, generateCopy, generateApply)

		result, err := workflows.GeneratePassword(context.Background(), env, workflows.GeneratePasswordOptions{
			Label:          args[0],
			Length:         generateLength,
			ExcludeSymbols: generateExcludeSymbols,
			Copy:           generateCopy,
			Apply:          generateApply,
		})
		if err != nil {
			fmt.Println(formatError(err))
			return reported(err)
		}

		fmt.Println(formatGeneratedPassword(result))
		return nil
	},
}

func formatGeneratedPassword(result *workflows.GeneratePasswordResult) string {
	classes := fmt.Sprintf("%d characters, %d character classes", result.Policy.Length, result.Policy.Classes())

	if result.DryRun {
		return ui.DryRunTag() + " Would generate a password for " + ui.Highlight.Sprint(result.Label) + " " + ui.Muted.Sprint(classes) + "\n" +
			fmt.Sprintf("  Strength: %d/100\n", result.Strength) +
			ui.Hint() + " Re-run with " + ui.Flag.Sprint("--apply") + " to store it in " + ui.Path.Sprint(result.VaultPath)
	}

	msg := ui.Done() + " Stored a new password for " + ui.Highlight.Sprint(result.Label) + " " + ui.Muted.Sprint(classes) + "\n" +
		fmt.Sprintf("  Strength: %d/100\n", result.Strength) +
		"  Password: " + ui.Secret.Sprint(result.Masked)

	switch result.Delivery {
	case vault.DeliveryClipboard:
		msg += "\n" + ui.Hint() + " Copied to the clipboard"
	case vault.DeliveryDisplay:
		msg += "\n" + ui.Warning.Sprint("⚠") + " The clipboard is not available, the password was not copied"
	}
	return msg
}
