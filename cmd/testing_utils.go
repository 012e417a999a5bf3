package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/PolarWolf314/homebase/internal/configs"
	logger "github.com/PolarWolf314/homebase/internal/logging"
	"github.com/PolarWolf314/homebase/internal/vault"
)

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	env = nil
	Logger = logger.Logger{}

	resetOrganizeDownloadsCommandState()
	resetCreateProjectCommandState()
	resetGeneratePasswordCommandState()
	resetScanPasswordsCommandState()
	resetAutofillAppCommandState()
	resetAutofillConfigCommandState()
	resetRunCommandState()
	resetLogCommandState()
	resetConfigShowState()
	resetConfigCobraFlagState()
	resetCobraFlagState(RootCmd)
}

func resetCobraFlagState(c *cobra.Command) {
	c.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	c.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}

// SetClipboard replaces the system clipboard for testing. Pass nil to restore it.
func SetClipboard(cb vault.Clipboard) {
	clipboardOverride = cb
}

// setupTestEnvironment points every homebase path at a temporary home and
// returns that home. The original settings are restored on cleanup.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("NO_COLOR", "1")

	original := configs.HomebaseSettings
	configs.HomebaseSettings = configs.NewSettings(home, filepath.Join(home, ".config", "homebase"))

	t.Cleanup(func() {
		configs.HomebaseSettings = original
		SetClipboard(nil)
		ResetGlobalState()
	})

	ResetGlobalState()
	return home
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// runCLI executes the root command with args, capturing everything printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	ResetGlobalState()
	return captureOutput(func() error {
		RootCmd.SetArgs(args)
		return Execute()
	})
}
