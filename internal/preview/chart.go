package preview

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
)

// Chart identifies one of the sample charts.
type Chart string

const (
	ChartLine      Chart = "line"
	ChartBar       Chart = "bar"
	ChartScatter   Chart = "scatter"
	ChartHistogram Chart = "histogram"
	ChartBox       Chart = "box"
	ChartHeatmap   Chart = "heatmap"
)

// Charts returns all sample chart kinds.
func Charts() []Chart {
	return []Chart{ChartLine, ChartBar, ChartScatter, ChartHistogram, ChartBox, ChartHeatmap}
}

// ParseChart validates a chart name.
func ParseChart(s string) (Chart, error) {
	for _, c := range Charts() {
		if string(c) == s {
			return c, nil
		}
	}
	names := make([]string, 0, len(Charts()))
	for _, c := range Charts() {
		names = append(names, string(c))
	}
	return "", fmt.Errorf("unknown chart %q (available: %s)", s, strings.Join(names, ", "))
}

// Title returns the default title drawn above the chart.
func (c Chart) Title() string {
	switch c {
	case ChartLine:
		return "Trigonometric Functions"
	case ChartBar:
		return "Category Scores"
	case ChartScatter:
		return "Cluster Scatter"
	case ChartHistogram:
		return "Normal Distribution"
	case ChartBox:
		return "Treatment Comparison"
	case ChartHeatmap:
		return "Activity Matrix"
	}
	return string(c)
}

// point is a data-space coordinate.
type point struct{ X, Y float64 }

// series is one set of points drawn with a single cycle color.
type series struct {
	Points []point
	Alpha  float64
}

// bar is a data-space rectangle from (X0, 0) to (X1, Height).
type bar struct {
	X0, X1, Height float64
}

// box is the five-number summary of one box plot group centered on X.
// Lo and Hi are the whisker ends; Fliers lie beyond them.
type box struct {
	X           float64
	Q1, Med, Q3 float64
	Lo, Hi      float64
	Fliers      []float64
}

// dataset holds the data of a sample chart and its axis limits.
type dataset struct {
	Lines    []series
	Markers  []series
	Bars     []bar
	BarAlpha float64
	Boxes    []box
	Cells    [][]float64 // heatmap rows, top row first

	XMin, XMax float64
	YMin, YMax float64
	XLabel     string
}

// seed keeps the random sample charts identical across renders.
const seed = 42

func buildDataset(c Chart) dataset {
	switch c {
	case ChartBar:
		return barData()
	case ChartScatter:
		return scatterData()
	case ChartHistogram:
		return histogramData()
	case ChartBox:
		return boxData()
	case ChartHeatmap:
		return heatmapData()
	default:
		return lineData()
	}
}

func lineData() dataset {
	const n = 100
	sin := series{Alpha: 1}
	cos := series{Alpha: 1}
	for i := range n {
		x := 2 * math.Pi * float64(i) / float64(n-1)
		sin.Points = append(sin.Points, point{x, math.Sin(x)})
		cos.Points = append(cos.Points, point{x, math.Cos(x)})
	}
	return dataset{
		Lines:  []series{sin, cos},
		XMin:   0,
		XMax:   2 * math.Pi,
		YMin:   -1.1,
		YMax:   1.1,
		XLabel: "Radians",
	}
}

func barData() dataset {
	values := []float64{23, 45, 31, 52, 38}
	d := dataset{
		BarAlpha: 1,
		XMin:     0,
		XMax:     float64(len(values)),
		YMin:     0,
		YMax:     52 * 1.1,
		XLabel:   "Alpha Beta Gamma Delta Epsilon",
	}
	for i, v := range values {
		d.Bars = append(d.Bars, bar{X0: float64(i) + 0.1, X1: float64(i) + 0.9, Height: v})
	}
	return d
}

func scatterData() dataset {
	rng := rand.New(rand.NewPCG(seed, 0))
	d := dataset{XMin: 0, XMax: 8, YMin: 0, YMax: 9, XLabel: "X"}
	for _, center := range []point{{2, 3}, {5, 6}} {
		s := series{Alpha: 0.7}
		for range 50 {
			s.Points = append(s.Points, point{
				X: center.X + rng.NormFloat64()*0.8,
				Y: center.Y + rng.NormFloat64()*0.8,
			})
		}
		d.Markers = append(d.Markers, s)
	}
	return d
}

func histogramData() dataset {
	const (
		samples = 500
		bins    = 25
		lo, hi  = -4.0, 4.0
	)
	rng := rand.New(rand.NewPCG(seed, 0))
	counts := make([]float64, bins)
	width := (hi - lo) / bins
	for range samples {
		i := binOf(rng.NormFloat64(), lo, width)
		if i < 0 || i >= bins {
			continue
		}
		counts[i]++
	}

	d := dataset{BarAlpha: 0.8, XMin: lo, XMax: hi, YMin: 0, XLabel: "Value"}
	var peak float64
	for i, c := range counts {
		x0 := lo + float64(i)*width
		d.Bars = append(d.Bars, bar{X0: x0, X1: x0 + width, Height: c})
		peak = math.Max(peak, c)
	}
	d.YMax = peak * 1.1
	return d
}

// binOf returns the histogram bin of v. Values below lo give a negative bin.
func binOf(v, lo, width float64) int {
	return int(math.Floor((v - lo) / width))
}

func boxData() dataset {
	rng := rand.New(rand.NewPCG(seed, 0))
	d := dataset{XMin: 0.5, XMax: 3.5, XLabel: "Control  Treatment A  Treatment B"}

	lo, hi := math.Inf(1), math.Inf(-1)
	for i, loc := range []float64{3, 5, 4} {
		values := make([]float64, 0, 51)
		for range 50 {
			values = append(values, loc+rng.NormFloat64())
		}
		if i == 1 {
			// One fixed outlier keeps a flier on every render
			values = append(values, loc+4.5)
		}
		lo = math.Min(lo, slices.Min(values))
		hi = math.Max(hi, slices.Max(values))
		d.Boxes = append(d.Boxes, summarize(float64(i+1), values))
	}

	pad := (hi - lo) * 0.05
	d.YMin, d.YMax = lo-pad, hi+pad
	return d
}

// summarize computes box plot statistics with whiskers at 1.5 IQR.
func summarize(x float64, values []float64) box {
	s := slices.Clone(values)
	slices.Sort(s)

	b := box{X: x, Q1: quantile(s, 0.25), Med: quantile(s, 0.5), Q3: quantile(s, 0.75)}
	iqr := b.Q3 - b.Q1
	loLimit, hiLimit := b.Q1-1.5*iqr, b.Q3+1.5*iqr

	b.Lo, b.Hi = b.Q1, b.Q3
	for _, v := range s {
		if v < loLimit || v > hiLimit {
			b.Fliers = append(b.Fliers, v)
			continue
		}
		b.Lo = math.Min(b.Lo, v)
		b.Hi = math.Max(b.Hi, v)
	}
	return b
}

// quantile interpolates linearly between the closest ranks of sorted s.
func quantile(s []float64, p float64) float64 {
	pos := p * float64(len(s)-1)
	i := int(math.Floor(pos))
	if i+1 >= len(s) {
		return s[len(s)-1]
	}
	return s[i] + (s[i+1]-s[i])*(pos-float64(i))
}

func heatmapData() dataset {
	const n = 5
	rng := rand.New(rand.NewPCG(seed, 0))
	d := dataset{XMin: 0, XMax: n, YMin: 0, YMax: n, XLabel: "Mon Tue Wed Thu Fri"}
	for range n {
		row := make([]float64, n)
		for c := range row {
			row[c] = float64(rng.IntN(100))
		}
		d.Cells = append(d.Cells, row)
	}
	return d
}
