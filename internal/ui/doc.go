// Package ui provides semantic text formatting and structured output for
// homebase commands.
//
// # Semantic Formatters
//
//	ui.Code.Sprint("homebase generate-password bank") // commands
//	ui.Path.Sprint("~/Downloads/Images")              // file paths
//	ui.Highlight.Sprint("spotify_account")            // labels and user values
//	ui.Secret.Sprint("abcd****")                      // masked passwords
//	ui.Muted.Sprint("confidence 80%")                 // secondary text
//
// Output lines start with a marker: Done (✓), Failed (✗) or Hint (→).
// DryRunTag marks output that describes intent only.
//
// Colors are disabled when NO_COLOR is set or fatih/color detects a terminal
// without color support. Formatters then fall back to text decorations.
//
// # Structured Output
//
// Commands that accept --output use NewEncoder for json and yaml; text output
// stays with the command.
package ui
