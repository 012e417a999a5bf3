package task

import (
	"bytes"
	"encoding/json"
	"fmt"

	kerrors "github.com/PolarWolf314/homebase/internal/errors"
)

// defaults returns a payload of type t pre-filled with the values used when a
// field is left out.
func defaults(t Type) (Params, bool) {
	switch t {
	case TypeOrganizeDownloads:
		return &OrganizeDownloads{}, true
	case TypeCreateProject:
		return &CreateProject{ProjectType: "python_project"}, true
	case TypeBulkRename:
		return &BulkRename{Pattern: "date_slug"}, true
	case TypeSearchDocuments:
		return &SearchDocuments{}, true
	case TypeGeneratePassword:
		return &GeneratePassword{Length: 16, Uppercase: true, Lowercase: true, Digits: true, Symbols: true}, true
	case TypeScanPasswordFields:
		return &ScanPasswordFields{}, true
	case TypeAutofillApp:
		return &AutofillApp{}, true
	case TypeAutofillConfig:
		return &AutofillConfig{}, true
	}
	return nil, false
}

// Parse builds a request from an untyped parameter mapping, such as the JSON
// object given to "homebase run". The mapping is validated against the task
// schema before it is decoded, and omitted optional fields take their
// defaults.
func Parse(t Type, raw map[string]any) (Request, error) {
	target, ok := defaults(t)
	if !ok {
		return Request{}, fmt.Errorf("%w: %s", kerrors.ErrUnknownTaskType, t)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", kerrors.ErrInvalidParams, err)
	}

	doc, err := decodeJSON(data)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", kerrors.ErrInvalidParams, err)
	}
	if err := validateDocument(t, doc); err != nil {
		return Request{}, err
	}

	if err := json.Unmarshal(data, target); err != nil {
		return Request{}, fmt.Errorf("%w: %v", kerrors.ErrInvalidParams, err)
	}

	return New(deref(target)), nil
}

// ParseJSON is Parse for a raw JSON object. An empty input is an empty object.
func ParseJSON(t Type, data []byte) (Request, error) {
	raw := map[string]any{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return Request{}, fmt.Errorf("%w: params must be a JSON object: %v", kerrors.ErrInvalidParams, err)
		}
	}
	return Parse(t, raw)
}

func deref(p Params) Params {
	switch v := p.(type) {
	case *OrganizeDownloads:
		return *v
	case *CreateProject:
		return *v
	case *BulkRename:
		return *v
	case *SearchDocuments:
		return *v
	case *GeneratePassword:
		return *v
	case *ScanPasswordFields:
		return *v
	case *AutofillApp:
		return *v
	case *AutofillConfig:
		return *v
	}
	return p
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}
