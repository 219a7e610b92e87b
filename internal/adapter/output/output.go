// Package output provides output formatters for style parameters.
package output

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jmylchreest/soltana/internal/style"
)

// Formatter formats a named set of style parameters for output.
type Formatter interface {
	// Format writes the parameters of the named style to the writer.
	Format(w io.Writer, name string, params style.Params) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain  FormatType = "plain"
	FormatJSON   FormatType = "json"
	FormatYAML   FormatType = "yaml"
	FormatSwatch FormatType = "swatch"
)

// ValidFormats returns every supported format name.
func ValidFormats() []string {
	return []string{string(FormatPlain), string(FormatJSON), string(FormatYAML), string(FormatSwatch)}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (FormatType, error) {
	if slices.Contains(ValidFormats(), s) {
		return FormatType(s), nil
	}
	return "", fmt.Errorf("unknown format %q (available: %s)", s, strings.Join(ValidFormats(), ", "))
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatSwatch:
		return NewSwatchFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Prefix  string // Only keys starting with this prefix (e.g. "axes.")
	Resolve bool   // Print colors as resolved #rrggbb instead of raw values
}

// DefaultFormatterOptions returns options that print every key verbatim.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{}
}

// selectParams applies the prefix filter and color resolution. Colors that
// fail to resolve keep their raw value.
func selectParams(params style.Params, opts FormatterOptions) style.Params {
	out := make(style.Params, len(params))
	for k, v := range params {
		if !strings.HasPrefix(k, opts.Prefix) {
			continue
		}
		if opts.Resolve {
			if kind, ok := style.KnownKey(k); ok && kind == style.KindColor && v != "none" {
				if c, err := params.Color(k); err == nil {
					v = style.Hex(c)
				}
			}
		}
		out[k] = v
	}
	return out
}

// sortedKeys returns the keys of p in lexical order.
func sortedKeys(p style.Params) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
