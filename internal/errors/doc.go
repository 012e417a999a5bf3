// Package errors provides typed error values for homebase.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. Packages that
// need to carry details (the offending path, the failing schema fields, the
// failing step) define their own error types whose Unwrap returns one of these
// sentinels.
//
// # Error Categories
//
//   - Request errors: the task cannot be run (ErrUnknownTaskType,
//     ErrNoPlannerRegistered, ErrSchemaValidation)
//   - Policy errors: the plan was rejected (ErrPathOutsideHome,
//     ErrTooManyAffectedPaths)
//   - Execution errors: one step failed (ErrStepFailed)
//   - Vault errors: key or document problems (ErrKeyUnavailable,
//     ErrVaultCorrupted, ErrEmptyCharset)
//
// # Usage
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.OrganizeDownloads(ctx, env, opts)
//	if errors.Is(err, kerrors.ErrPathOutsideHome) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: %v", kerrors.ErrKeyUnavailable, err)
package errors
