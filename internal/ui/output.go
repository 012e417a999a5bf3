package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Encoder writes structured command results.
type Encoder interface {
	Encode(v interface{}) error
}

// NewEncoder returns the encoder for format. Text output is rendered by each
// command itself, so it has no encoder and nil is returned with no error.
func NewEncoder(format string, w io.Writer) (Encoder, error) {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc, nil
	case OutputYAML:
		return yamlEncoder{w: w}, nil
	case OutputText, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: text, json, yaml)", format)
	}
}

type yamlEncoder struct {
	w io.Writer
}

func (e yamlEncoder) Encode(v interface{}) error {
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
