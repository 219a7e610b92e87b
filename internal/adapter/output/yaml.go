package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/soltana/internal/style"
)

// YAMLFormatter formats parameters as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes params as a YAML document.
func (f *YAMLFormatter) Format(w io.Writer, name string, params style.Params) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(document{Name: name, Params: selectParams(params, f.opts)}); err != nil {
		return err
	}
	return encoder.Close()
}
