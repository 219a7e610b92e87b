package style

import (
	"fmt"
	"image/color"
	"maps"
	"strconv"
	"strings"
)

// Params maps rc keys to their raw stylesheet values.
type Params map[string]string

// Defaults returns a fresh copy of the default parameters.
func Defaults() Params {
	p := make(Params, len(knownKeys))
	for k, spec := range knownKeys {
		p[k] = spec.deflt
	}
	return p
}

// Clone returns an independent copy of p.
func (p Params) Clone() Params {
	return maps.Clone(p)
}

// Color resolves key to a color. "C<n>" values are looked up in the
// prop cycle; "auto" and "inherit" follow the key they inherit from.
func (p Params) Color(key string) (color.RGBA, error) {
	v, ok := p[key]
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown parameter %q", key)
	}
	return p.resolveColor(key, v, 0)
}

func (p Params) resolveColor(key, v string, depth int) (color.RGBA, error) {
	if depth > 4 {
		return color.RGBA{}, fmt.Errorf("%w: %s refers back to itself", ErrInvalidColor, key)
	}

	if n, ok := isCycleRef(v); ok {
		cycle, err := p.Cycle()
		if err != nil {
			return color.RGBA{}, err
		}
		return cycle[n%len(cycle)], nil
	}

	switch v {
	case "auto", "inherit", "None":
		if parent, ok := inheritFrom[key]; ok {
			return p.resolveColor(parent, p[parent], depth+1)
		}
	}
	return ParseColor(v)
}

// inheritFrom names the key an "auto" or "inherit" color falls back to.
var inheritFrom = map[string]string{
	"axes.titlecolor":   "text.color",
	"xtick.labelcolor":  "xtick.color",
	"ytick.labelcolor":  "ytick.color",
	"legend.facecolor":  "axes.facecolor",
	"legend.edgecolor":  "axes.edgecolor",
	"legend.labelcolor": "text.color",
	"savefig.facecolor": "figure.facecolor",
	"savefig.edgecolor": "figure.edgecolor",
}

// Cycle returns the colors of axes.prop_cycle.
func (p Params) Cycle() ([]color.RGBA, error) {
	return ParseCycle(p["axes.prop_cycle"])
}

// Float reads key as a float.
func (p Params) Float(key string) (float64, error) {
	return parseFloat(p[key])
}

// Bool reads key as a boolean.
func (p Params) Bool(key string) (bool, error) {
	return parseBool(p[key])
}

func parseFloat(v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float %q", v)
	}
	return f, nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "on", "1", "t", "y":
		return true, nil
	case "false", "no", "off", "0", "f", "n":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool %q", v)
}
