// Package utils provides shared helpers for homebase.
//
// # Path Utilities
//
//   - ExpandHome: expands a leading "~"
//   - ResolvePath: absolute, symlink-resolved form of a path that may not exist yet
//   - IsWithin: descendant check used by the policy engine
//   - FileStem: base name without extension, used for vault labels
//
// # String Utilities
//
//   - MaskSecret: masked display of a password
//
// # Terminal and I/O Utilities
//
//   - IsStdoutTerminal: terminal detection via golang.org/x/term
//   - ReadStdin: reads piped input
package utils
