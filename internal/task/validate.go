package task

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	kerrors "github.com/PolarWolf314/homebase/internal/errors"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaURLPrefix = "https://homebase.schemas.local/task/"

var (
	compileOnce sync.Once
	compiled    map[Type]*jsonschema.Schema
	compileErr  error
)

// schemas compiles every embedded schema once. A task type without a file
// under schemas/ has no schema registered.
func schemas() (map[Type]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020

		out := make(map[Type]*jsonschema.Schema)
		for _, t := range Types() {
			data, err := schemaFS.ReadFile("schemas/" + string(t) + ".json")
			if err != nil {
				continue
			}
			url := schemaURLPrefix + string(t) + ".schema.json"
			if err := c.AddResource(url, bytes.NewReader(data)); err != nil {
				compileErr = fmt.Errorf("task schema load failed for %s: %w", t, err)
				return
			}
			schema, err := c.Compile(url)
			if err != nil {
				compileErr = fmt.Errorf("task schema compile failed for %s: %w", t, err)
				return
			}
			out[t] = schema
		}
		compiled = out
	})
	return compiled, compileErr
}

// Registered reports whether a schema exists for t.
func Registered(t Type) bool {
	all, err := schemas()
	if err != nil {
		return false
	}
	_, ok := all[t]
	return ok
}

// FieldError is one reason a parameter was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SchemaValidationError lists every field that failed validation for a task.
type SchemaValidationError struct {
	Type   Type
	Fields []FieldError
}

func (e *SchemaValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("invalid parameters for %s: %s", e.Type, strings.Join(parts, "; "))
}

func (e *SchemaValidationError) Unwrap() error {
	return kerrors.ErrSchemaValidation
}

// Validate checks the request payload against the schema registered for its
// task type. It has no side effects.
func Validate(req Request) error {
	if req.Params == nil {
		return fmt.Errorf("%w: request has no parameters", kerrors.ErrUnknownTaskType)
	}

	data, err := json.Marshal(req.Params)
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrInvalidParams, err)
	}
	doc, err := decodeJSON(data)
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrInvalidParams, err)
	}

	return validateDocument(req.Type(), doc)
}

func validateDocument(t Type, doc any) error {
	all, err := schemas()
	if err != nil {
		return err
	}

	schema, ok := all[t]
	if !ok {
		return fmt.Errorf("%w: %s", kerrors.ErrUnknownTaskType, t)
	}

	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &SchemaValidationError{Type: t, Fields: fieldErrors(verr)}
		}
		return fmt.Errorf("%w: %v", kerrors.ErrSchemaValidation, err)
	}
	return nil
}

var quotedName = regexp.MustCompile(`'([^']+)'`)

// fieldErrors flattens the validation tree into its leaves. Errors reported
// against the object itself (missing or unexpected properties) name the
// properties in the message, so those names become the fields.
func fieldErrors(verr *jsonschema.ValidationError) []FieldError {
	var out []FieldError

	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, cause := range e.Causes {
				walk(cause)
			}
			return
		}

		field := strings.TrimPrefix(e.InstanceLocation, "/")
		if field != "" {
			out = append(out, FieldError{Field: field, Message: e.Message})
			return
		}

		names := quotedName.FindAllStringSubmatch(e.Message, -1)
		if len(names) == 0 {
			out = append(out, FieldError{Message: e.Message})
			return
		}
		for _, m := range names {
			out = append(out, FieldError{Field: m[1], Message: e.Message})
		}
	}
	walk(verr)

	return out
}
