package preview

import (
	"fmt"
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// colormapStops are evenly spaced samples of the supported image.cmap values.
var colormapStops = map[string][]string{
	"viridis": {"#440154", "#472c7a", "#3b518b", "#2c718e", "#21908d", "#27ad81", "#5cc863", "#aadc32", "#fde725"},
	"cividis": {"#00224e", "#1f3a6e", "#414d6b", "#5f636e", "#7c7b78", "#9b9376", "#bcaf6f", "#dec961", "#fee838"},
	"magma":   {"#000004", "#1c1044", "#4f127b", "#812581", "#b5367a", "#e55964", "#fb8761", "#fec287", "#fcfdbf"},
	"gray":    {"#000000", "#ffffff"},
	"grey":    {"#000000", "#ffffff"},
}

// colormap maps [0, 1] onto a piecewise linear color ramp.
type colormap []colorful.Color

func lookupColormap(name string) (colormap, error) {
	stops, ok := colormapStops[name]
	if !ok {
		names := make([]string, 0, len(colormapStops))
		for k := range colormapStops {
			names = append(names, k)
		}
		slices.Sort(names)
		return nil, fmt.Errorf("unsupported colormap %q (available: %s)", name, strings.Join(names, ", "))
	}

	m := make(colormap, 0, len(stops))
	for _, hex := range stops {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("colormap %s: %w", name, err)
		}
		m = append(m, c)
	}
	return m, nil
}

// at returns the color for t, clamped to [0, 1].
func (m colormap) at(t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(m)-1)
	i := min(int(pos), len(m)-2)
	c := m[i].BlendRgb(m[i+1], pos-float64(i)).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
