package task

import (
	"bytes"
	"encoding/json"
)

// Version is the request format tag recorded with every request.
const Version = "1.0"

// Type names a task the pipeline knows about.
type Type string

const (
	TypeOrganizeDownloads  Type = "ORGANIZE_DOWNLOADS"
	TypeCreateProject      Type = "CREATE_PROJECT_SCAFFOLD"
	TypeBulkRename         Type = "BULK_RENAME"
	TypeSearchDocuments    Type = "SEARCH_DOCUMENTS"
	TypeGeneratePassword   Type = "GENERATE_PASSWORD"
	TypeScanPasswordFields Type = "SCAN_PASSWORD_FIELDS"
	TypeAutofillApp        Type = "AUTOFILL_APP"
	TypeAutofillConfig     Type = "AUTOFILL_CONFIG"
)

// Types returns every known task type in declaration order.
func Types() []Type {
	return []Type{
		TypeOrganizeDownloads,
		TypeCreateProject,
		TypeBulkRename,
		TypeSearchDocuments,
		TypeGeneratePassword,
		TypeScanPasswordFields,
		TypeAutofillApp,
		TypeAutofillConfig,
	}
}

// Known reports whether t is one of Types.
func (t Type) Known() bool {
	for _, known := range Types() {
		if t == known {
			return true
		}
	}
	return false
}

// Params is the typed payload of a request. The set of implementations is
// closed: only the payload structs in this package satisfy it.
type Params interface {
	Type() Type
	sealed()
}

type OrganizeDownloads struct {
	SourceDir string `json:"source_dir"`
}

type CreateProject struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	ProjectType string `json:"project_type"`
}

type BulkRename struct {
	Folder  string `json:"folder"`
	Pattern string `json:"pattern"`
}

type SearchDocuments struct {
	Scope string `json:"scope"`
}

type GeneratePassword struct {
	Label     string `json:"label"`
	Length    int    `json:"length"`
	Uppercase bool   `json:"uppercase"`
	Lowercase bool   `json:"lowercase"`
	Digits    bool   `json:"digits"`
	Symbols   bool   `json:"symbols"`
}

type ScanPasswordFields struct {
	Scope   string   `json:"scope"`
	Exclude []string `json:"exclude,omitempty"`
}

type AutofillApp struct {
	App string `json:"app"`
}

type AutofillConfig struct {
	File string `json:"file"`
}

func (OrganizeDownloads) Type() Type  { return TypeOrganizeDownloads }
func (CreateProject) Type() Type      { return TypeCreateProject }
func (BulkRename) Type() Type         { return TypeBulkRename }
func (SearchDocuments) Type() Type    { return TypeSearchDocuments }
func (GeneratePassword) Type() Type   { return TypeGeneratePassword }
func (ScanPasswordFields) Type() Type { return TypeScanPasswordFields }
func (AutofillApp) Type() Type        { return TypeAutofillApp }
func (AutofillConfig) Type() Type     { return TypeAutofillConfig }

func (OrganizeDownloads) sealed()  {}
func (CreateProject) sealed()      {}
func (BulkRename) sealed()         {}
func (SearchDocuments) sealed()    {}
func (GeneratePassword) sealed()   {}
func (ScanPasswordFields) sealed() {}
func (AutofillApp) sealed()        {}
func (AutofillConfig) sealed()     {}

// Request is one unit of work for the pipeline. Build it with New and do not
// modify it afterwards.
type Request struct {
	Version string
	Params  Params
}

// New wraps params in a request carrying the current Version. Pointer
// payloads are stored by value.
func New(params Params) Request {
	return Request{Version: Version, Params: Value(params)}
}

// Value returns params with a pointer payload dereferenced. A nil pointer
// becomes nil.
func Value(params Params) Params {
	switch p := params.(type) {
	case *OrganizeDownloads:
		return derefPtr(p)
	case *CreateProject:
		return derefPtr(p)
	case *BulkRename:
		return derefPtr(p)
	case *SearchDocuments:
		return derefPtr(p)
	case *GeneratePassword:
		return derefPtr(p)
	case *ScanPasswordFields:
		return derefPtr(p)
	case *AutofillApp:
		return derefPtr(p)
	case *AutofillConfig:
		return derefPtr(p)
	}
	return params
}

func derefPtr[T Params](p *T) Params {
	if p == nil {
		return nil
	}
	return *p
}

// Type returns the task type of the payload, or "" when there is none.
func (r Request) Type() Type {
	if r.Params == nil {
		return ""
	}
	return r.Params.Type()
}

// Fields renders the payload as a plain JSON-shaped mapping. Numbers are
// json.Number values.
func (r Request) Fields() map[string]any {
	fields := map[string]any{}
	if r.Params == nil {
		return fields
	}

	data, err := json.Marshal(r.Params)
	if err != nil {
		return fields
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	_ = dec.Decode(&fields)
	return fields
}
