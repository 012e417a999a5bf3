// Package task defines the typed requests that drive the homebase pipeline
// and validates them against embedded JSON schemas.
//
// A Request carries a Params payload. Params is a closed union: each task
// type has exactly one payload struct, and code that dispatches on the task
// does so with a type switch over those structs.
//
//	req := task.New(task.GeneratePassword{Label: "BankXYZ", Length: 20,
//	    Uppercase: true, Lowercase: true, Digits: true, Symbols: true})
//	if err := task.Validate(req); err != nil {
//	    // errors.Is(err, kerrors.ErrSchemaValidation)
//	}
//
// Schemas live in schemas/<TASK_TYPE>.json (JSON Schema draft 2020-12) and are
// compiled once with santhosh-tekuri/jsonschema. Parse builds a request from
// an untyped mapping, as the "run" command receives it.
package task
