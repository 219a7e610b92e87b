package style

import "sort"

// Kind identifies how the value of an rc key is interpreted.
type Kind int

const (
	KindString Kind = iota
	KindColor
	KindFloat
	KindBool
	KindCycle
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindCycle:
		return "cycle"
	default:
		return "string"
	}
}

type keySpec struct {
	kind    Kind
	deflt   string
	special []string // non-color literals accepted by color keys
}

// knownKeys holds the supported rc keys and their matplotlib defaults.
var knownKeys = map[string]keySpec{
	"figure.facecolor": {kind: KindColor, deflt: "white"},
	"figure.edgecolor": {kind: KindColor, deflt: "white"},
	"figure.dpi":       {kind: KindFloat, deflt: "100.0"},

	"axes.facecolor":     {kind: KindColor, deflt: "white"},
	"axes.edgecolor":     {kind: KindColor, deflt: "black"},
	"axes.labelcolor":    {kind: KindColor, deflt: "black"},
	"axes.titlecolor":    {kind: KindColor, deflt: "auto", special: []string{"auto"}},
	"axes.linewidth":     {kind: KindFloat, deflt: "0.8"},
	"axes.grid":          {kind: KindBool, deflt: "False"},
	"axes.axisbelow":     {kind: KindString, deflt: "line"},
	"axes.titlesize":     {kind: KindString, deflt: "large"},
	"axes.titleweight":   {kind: KindString, deflt: "normal"},
	"axes.labelsize":     {kind: KindString, deflt: "medium"},
	"axes.spines.top":    {kind: KindBool, deflt: "True"},
	"axes.spines.right":  {kind: KindBool, deflt: "True"},
	"axes.spines.left":   {kind: KindBool, deflt: "True"},
	"axes.spines.bottom": {kind: KindBool, deflt: "True"},
	"axes.prop_cycle": {kind: KindCycle, deflt: "cycler('color', ['1f77b4', 'ff7f0e', '2ca02c', " +
		"'d62728', '9467bd', '8c564b', 'e377c2', '7f7f7f', 'bcbd22', '17becf'])"},

	"text.color":  {kind: KindColor, deflt: "black"},
	"font.family": {kind: KindString, deflt: "sans-serif"},
	"font.size":   {kind: KindFloat, deflt: "10.0"},

	"xtick.color":      {kind: KindColor, deflt: "black"},
	"ytick.color":      {kind: KindColor, deflt: "black"},
	"xtick.labelcolor": {kind: KindColor, deflt: "inherit", special: []string{"inherit"}},
	"ytick.labelcolor": {kind: KindColor, deflt: "inherit", special: []string{"inherit"}},
	"xtick.direction":  {kind: KindString, deflt: "out"},
	"ytick.direction":  {kind: KindString, deflt: "out"},

	"grid.color":     {kind: KindColor, deflt: "b0b0b0"},
	"grid.alpha":     {kind: KindFloat, deflt: "1.0"},
	"grid.linestyle": {kind: KindString, deflt: "-"},
	"grid.linewidth": {kind: KindFloat, deflt: "0.8"},

	"legend.facecolor":  {kind: KindColor, deflt: "inherit", special: []string{"inherit"}},
	"legend.edgecolor":  {kind: KindColor, deflt: "0.8", special: []string{"inherit"}},
	"legend.labelcolor": {kind: KindColor, deflt: "None", special: []string{"None", "linecolor", "markerfacecolor", "markeredgecolor"}},
	"legend.framealpha": {kind: KindFloat, deflt: "0.8"},
	"legend.frameon":    {kind: KindBool, deflt: "True"},

	"lines.linewidth":  {kind: KindFloat, deflt: "1.5"},
	"lines.markersize": {kind: KindFloat, deflt: "6.0"},
	"patch.edgecolor":  {kind: KindColor, deflt: "black"},
	"patch.facecolor":  {kind: KindColor, deflt: "C0"},

	"boxplot.boxprops.color":     {kind: KindColor, deflt: "black"},
	"boxplot.whiskerprops.color": {kind: KindColor, deflt: "black"},
	"boxplot.capprops.color":     {kind: KindColor, deflt: "black"},
	"boxplot.medianprops.color":  {kind: KindColor, deflt: "C1"},
	"boxplot.flierprops.color":   {kind: KindColor, deflt: "black"},

	"image.cmap": {kind: KindString, deflt: "viridis"},

	"savefig.facecolor": {kind: KindColor, deflt: "auto", special: []string{"auto"}},
	"savefig.edgecolor": {kind: KindColor, deflt: "auto", special: []string{"auto"}},
}

// KnownKey reports whether key is a supported rc key and returns its kind.
func KnownKey(key string) (Kind, bool) {
	spec, ok := knownKeys[key]
	return spec.kind, ok
}

// Keys returns the supported rc keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// validateValue checks a raw value against the kind of key.
func validateValue(key, value string) error {
	spec, ok := knownKeys[key]
	if !ok {
		return nil
	}

	switch spec.kind {
	case KindColor:
		for _, s := range spec.special {
			if value == s {
				return nil
			}
		}
		if _, ok := isCycleRef(value); ok {
			return nil
		}
		_, err := ParseColor(value)
		return err
	case KindFloat:
		_, err := parseFloat(value)
		return err
	case KindBool:
		_, err := parseBool(value)
		return err
	case KindCycle:
		_, err := ParseCycle(value)
		return err
	}
	return nil
}
