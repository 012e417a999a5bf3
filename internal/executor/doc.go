// Package executor carries out plan steps against the filesystem.
//
// Steps run strictly in order. In dry-run mode (apply false) the executor
// only reports what it would do and never touches the disk. In apply mode
// each step is its own unit of work: a failed step is reported as a
// *StepError in the Report and the remaining steps still run. Nothing is
// rolled back.
//
// RENAME_FILE and any other step type without a handler is skipped with a
// warning.
package executor
