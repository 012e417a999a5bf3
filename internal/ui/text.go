package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter renders one kind of console text. With color disabled it wraps
// the text in before and after instead, so the distinction survives in logs
// and pipes.
type Formatter struct {
	color  *color.Color
	before string
	after  string
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.before + text + f.after
	}
	return f.color.Sprint(text)
}

func (f Formatter) Sprint(a ...interface{}) string {
	return f.render(fmt.Sprint(a...))
}

func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.render(fmt.Sprintf(format, a...))
}

// EnsureNewline appends "\n" unless s already ends with one.
func EnsureNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s
	}
	return s + "\n"
}

// noColor honours NO_COLOR (https://no-color.org/) on top of fatih/color's
// own terminal detection.
func noColor() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return true
	}
	return color.NoColor
}

func plain(attr color.Attribute) Formatter {
	return Formatter{color: color.New(attr)}
}

func wrapped(attr color.Attribute, before, after string) Formatter {
	return Formatter{color: color.New(attr), before: before, after: after}
}

var (
	// Code is a command the user can copy, e.g. `homebase generate-password bank`.
	Code = wrapped(color.FgYellow, "`", "`")

	Path = plain(color.FgYellow)
	Flag = plain(color.FgYellow)

	Success = plain(color.FgGreen)
	Error   = plain(color.FgRed)
	Warning = plain(color.FgYellow)
	Info    = plain(color.FgCyan)

	// Highlight marks values the user chose: vault labels, app names, task types.
	Highlight = wrapped(color.FgCyan, "'", "'")

	// Secret is only ever given masked passwords.
	Secret = wrapped(color.FgMagenta, "[", "]")

	Muted = wrapped(color.FgHiBlack, "(", ")")
)

// Line markers used at the start of command output.
func Done() string   { return Success.Sprint("✓") }
func Failed() string { return Error.Sprint("✗") }
func Hint() string   { return Info.Sprint("→") }

// DryRunTag prefixes messages that describe intent only.
func DryRunTag() string {
	return Warning.Sprint("[dry-run]")
}
