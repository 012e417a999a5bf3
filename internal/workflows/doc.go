// Package workflows provides high-level orchestration for homebase commands.
//
// Every feature goes through the same Pipeline: the request is validated,
// planned, checked by the policy engine and then executed, and each stage
// passed is written to the audit log under one request id. Workflows build
// the request for their feature, supply the in-process action for vault
// tasks, and shape the result for the CLI.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else, including defaults from config.toml.
//
// # Available Workflows
//
//   - OrganizeDownloads: sorts a folder's files into category subfolders
//   - CreateProject: creates a project root and its layout
//   - GeneratePassword: creates and stores a password under a label
//   - ScanPasswords: finds password fields in text files
//   - AutofillApp: delivers a saved app password to the clipboard
//   - AutofillConfig: reports password fields in a config file
//   - RunTask: runs any task type from JSON parameters
//   - Log: reads and filters the audit log
//
// # Dry Run
//
// Without Apply nothing on disk changes: filesystem plans are reported step
// by step and vault writes are skipped. Read-only tasks (scanning,
// autofill-config) produce the same results in both modes.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package:
//
//	result, err := workflows.OrganizeDownloads(ctx, env, opts)
//	if errors.Is(err, kerrors.ErrPathOutsideHome) {
//	    // Show user-friendly policy message
//	}
package workflows
