package output

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/soltana/internal/style"
)

const swatchCell = "    "

var (
	swatchHeader = lipgloss.NewStyle().Bold(true)
	swatchKey    = lipgloss.NewStyle().Width(28)
	swatchDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// SwatchFormatter renders color parameters as terminal color blocks.
// Non-color keys are omitted.
type SwatchFormatter struct {
	opts FormatterOptions
}

// NewSwatchFormatter creates a new swatch formatter.
func NewSwatchFormatter(opts FormatterOptions) *SwatchFormatter {
	return &SwatchFormatter{opts: opts}
}

// Format writes one row per color key and one block per prop cycle entry.
func (f *SwatchFormatter) Format(w io.Writer, name string, params style.Params) error {
	var sb strings.Builder
	if name != "" {
		sb.WriteString(swatchHeader.Render(name) + "\n")
	}

	for _, k := range sortedKeys(params) {
		if !strings.HasPrefix(k, f.opts.Prefix) {
			continue
		}
		kind, ok := style.KnownKey(k)
		if !ok {
			continue
		}

		switch kind {
		case style.KindColor:
			sb.WriteString(swatchKey.Render(k))
			if params[k] == "none" {
				sb.WriteString(swatchDim.Render("none") + "\n")
				continue
			}
			c, err := params.Color(k)
			if err != nil {
				sb.WriteString(swatchDim.Render("invalid: "+params[k]) + "\n")
				continue
			}
			fmt.Fprintf(&sb, "%s %s\n", Swatch(c), style.Hex(c))
		case style.KindCycle:
			sb.WriteString(swatchKey.Render(k))
			cycle, err := params.Cycle()
			if err != nil {
				sb.WriteString(swatchDim.Render("invalid cycle") + "\n")
				continue
			}
			for _, c := range cycle {
				sb.WriteString(Swatch(c))
			}
			fmt.Fprintf(&sb, " %d colors\n", len(cycle))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Swatch renders a block of background color c.
func Swatch(c color.RGBA) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(style.Hex(c))).Render(swatchCell)
}
