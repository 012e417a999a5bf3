package errors

import "errors"

// Request errors indicate the caller asked for something the pipeline cannot run.
var (
	// ErrUnknownTaskType indicates no schema is registered for the task type.
	ErrUnknownTaskType = errors.New("unknown task type")

	// ErrNoPlannerRegistered indicates the task type is known but has no planner.
	ErrNoPlannerRegistered = errors.New("no planner registered for task type")

	// ErrSchemaValidation indicates the task parameters do not satisfy the task schema.
	ErrSchemaValidation = errors.New("task parameters failed schema validation")

	// ErrInvalidParams indicates raw task parameters could not be decoded.
	ErrInvalidParams = errors.New("invalid task parameters")
)

// Policy errors indicate the plan was rejected by the safety gate. Nothing has
// been mutated when one of these is returned.
var (
	// ErrPathOutsideHome indicates an affected path resolves outside the home directory.
	ErrPathOutsideHome = errors.New("path is outside the home directory")

	// ErrTooManyAffectedPaths indicates the plan touches more paths than allowed.
	ErrTooManyAffectedPaths = errors.New("too many affected paths")
)

// Execution errors are step-local and never abort the remaining steps.
var (
	// ErrStepFailed indicates a single plan step failed during apply.
	ErrStepFailed = errors.New("step execution failed")

	// ErrSourceUnreadable indicates the planner could not list a source directory.
	ErrSourceUnreadable = errors.New("source directory could not be read")
)

// Vault errors are fatal to the vault operation in progress.
var (
	// ErrKeyUnavailable indicates the vault key file exists but cannot be used.
	ErrKeyUnavailable = errors.New("vault key is unavailable")

	// ErrVaultCorrupted indicates the vault document could not be decrypted or parsed.
	ErrVaultCorrupted = errors.New("vault document is corrupted or was encrypted with another key")

	// ErrEmptyCharset indicates every character class was disabled.
	ErrEmptyCharset = errors.New("no character classes enabled")

	// ErrInvalidLength indicates the requested password length is out of range.
	ErrInvalidLength = errors.New("password length out of range")
)

// File errors indicate issues with file access.
var (
	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrNoFilesFound indicates a lookup produced nothing to show.
	ErrNoFilesFound = errors.New("no matching files found")
)

// Input errors indicate a malformed command-line value.
var (
	// ErrInvalidDateFormat indicates a date filter is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
