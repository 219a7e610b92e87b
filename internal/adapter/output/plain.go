package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/soltana/internal/style"
)

// PlainFormatter writes parameters as a stylesheet: a header comment then
// one sorted "key: value" line per parameter.
type PlainFormatter struct {
	opts FormatterOptions
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{opts: opts}
}

// Format writes params as stylesheet text.
func (f *PlainFormatter) Format(w io.Writer, name string, params style.Params) error {
	p := selectParams(params, f.opts)

	var sb strings.Builder
	if name != "" {
		fmt.Fprintf(&sb, "# %s\n", name)
	}
	for _, k := range sortedKeys(p) {
		v := p[k]
		// '#' starts a comment in a stylesheet, so resolved colors go out bare.
		if f.opts.Resolve && strings.HasPrefix(v, "#") {
			v = v[1:]
		}
		fmt.Fprintf(&sb, "%s: %s\n", k, v)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
