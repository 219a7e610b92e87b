package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/soltana/internal/style"
)

// document is the structured form written by the JSON and YAML formatters.
type document struct {
	Name   string            `json:"name" yaml:"name"`
	Params map[string]string `json:"params" yaml:"params"`
}

// JSONFormatter formats parameters as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes params as an indented JSON object.
func (f *JSONFormatter) Format(w io.Writer, name string, params style.Params) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(document{Name: name, Params: selectParams(params, f.opts)})
}
