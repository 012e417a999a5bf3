package utils

import (
	"os"

	"golang.org/x/term"
)

// IsStdoutTerminal returns true if stdout is a terminal. Spinners are only
// drawn when it is.
func IsStdoutTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
