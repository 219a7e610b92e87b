package style

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a value cannot be read as a color.
var ErrInvalidColor = errors.New("invalid color")

var (
	hexDigits   = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	cycleRef    = regexp.MustCompile(`^C([0-9]+)$`)
	cyclerColor = regexp.MustCompile(`^cycler\(\s*(?:color\s*=\s*\[|['"]color['"]\s*,\s*\[)(.*)\]\s*\)$`)
)

// namedColors is the subset of CSS names accepted in stylesheets.
var namedColors = map[string]string{
	"white":     "#ffffff",
	"black":     "#000000",
	"red":       "#ff0000",
	"green":     "#008000",
	"blue":      "#0000ff",
	"gray":      "#808080",
	"grey":      "#808080",
	"lightgray": "#d3d3d3",
	"darkgray":  "#a9a9a9",
	"orange":    "#ffa500",
	"purple":    "#800080",
	"yellow":    "#ffff00",
	"cyan":      "#00ffff",
	"magenta":   "#ff00ff",
	"tan":       "#d2b48c",
	"wheat":     "#f5deb3",
	"ivory":     "#fffff0",
	"linen":     "#faf0e6",
}

// ParseColor reads a stylesheet color value.
//
// Accepted forms are #rgb, #rrggbb, #rrggbbaa, bare 6 or 8 digit hex,
// grayscale levels in [0, 1] such as "0.8", "none" and a handful of
// CSS color names. Functional notation like rgb(...) is rejected.
func ParseColor(value string) (color.RGBA, error) {
	v := strings.Trim(strings.TrimSpace(value), `'"`)
	if v == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty value", ErrInvalidColor)
	}

	lower := strings.ToLower(v)
	if lower == "none" {
		return color.RGBA{}, nil
	}
	if strings.Contains(lower, "(") {
		return color.RGBA{}, fmt.Errorf("%w: functional notation %q is not supported, use hex", ErrInvalidColor, v)
	}
	if hex, ok := namedColors[lower]; ok {
		return parseHex(hex)
	}

	if strings.HasPrefix(v, "#") {
		return parseHex(v)
	}
	if (len(v) == 6 || len(v) == 8) && hexDigits.MatchString(v) {
		return parseHex("#" + v)
	}

	if level, err := strconv.ParseFloat(v, 64); err == nil {
		if level < 0 || level > 1 {
			return color.RGBA{}, fmt.Errorf("%w: gray level %q outside [0, 1]", ErrInvalidColor, v)
		}
		g := uint8(level*255 + 0.5)
		return color.RGBA{R: g, G: g, B: g, A: 0xff}, nil
	}

	return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, v)
}

func parseHex(s string) (color.RGBA, error) {
	digits := strings.TrimPrefix(s, "#")
	if !hexDigits.MatchString(digits) {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	alpha := uint8(0xff)
	switch len(digits) {
	case 3, 6:
	case 4:
		a, _ := strconv.ParseUint(strings.Repeat(digits[3:], 2), 16, 8)
		alpha = uint8(a)
		digits = digits[:3]
	case 8:
		a, _ := strconv.ParseUint(digits[6:], 16, 8)
		alpha = uint8(a)
		digits = digits[:6]
	default:
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q: %w", ErrInvalidColor, s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alpha}, nil
}

// Hex formats c as #rrggbb, dropping alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseCycle extracts the color list from an axes.prop_cycle value.
//
// Both cycler('color', [...]) and cycler(color=[...]) are accepted.
func ParseCycle(value string) ([]color.RGBA, error) {
	m := cyclerColor.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return nil, fmt.Errorf("invalid prop cycle %q: expected cycler('color', [...])", value)
	}

	var colors []color.RGBA
	for _, item := range strings.Split(m[1], ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		c, err := ParseColor(item)
		if err != nil {
			return nil, fmt.Errorf("invalid prop cycle entry: %w", err)
		}
		colors = append(colors, c)
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("invalid prop cycle %q: no colors", value)
	}
	return colors, nil
}

// isCycleRef reports whether v is a "C<n>" reference into the prop cycle.
func isCycleRef(v string) (int, bool) {
	m := cycleRef.FindStringSubmatch(v)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
