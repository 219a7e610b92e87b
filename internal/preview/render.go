package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"

	"github.com/jmylchreest/soltana/internal/style"
)

// supersample is the factor shapes are drawn at before downscaling.
const supersample = 2

const (
	minSize = 64
	maxSize = 4096
)

// gridFractions are the axis positions of grid lines and ticks.
var gridFractions = []float64{0.2, 0.4, 0.6, 0.8}

// ErrInvalidSize is returned for preview dimensions outside the supported range.
var ErrInvalidSize = errors.New("invalid preview size")

// Options controls a preview render.
type Options struct {
	Width  int
	Height int
	Chart  Chart
	Title  string // empty uses the chart's default title
}

// DefaultOptions returns a 640x480 line chart.
func DefaultOptions() Options {
	return Options{Width: 640, Height: 480, Chart: ChartLine}
}

// palette is the subset of parameters the renderer reads, resolved once.
type palette struct {
	figure, axes, edge   color.RGBA
	grid, tick           color.RGBA
	title, label         color.RGBA
	cycle                []color.RGBA
	gridAlpha            float64
	showGrid             bool
	spineTop, spineRight bool
	spineBottom          bool
	spineLeft            bool
	axesWidth            float64
	gridWidth            float64
	lineWidth            float64
	markerSize           float64

	boxEdge, whisker    color.RGBA
	caps, median, flier color.RGBA
	cmap                string
}

func resolvePalette(p style.Params) (palette, error) {
	var (
		pal  palette
		errs []error
	)

	col := func(key string) color.RGBA {
		c, err := p.Color(key)
		errs = append(errs, err)
		return c
	}
	num := func(key string) float64 {
		f, err := p.Float(key)
		errs = append(errs, err)
		return f
	}
	flag := func(key string) bool {
		b, err := p.Bool(key)
		errs = append(errs, err)
		return b
	}

	pal.figure = col("figure.facecolor")
	pal.axes = col("axes.facecolor")
	pal.edge = col("axes.edgecolor")
	pal.grid = col("grid.color")
	pal.tick = col("xtick.color")
	pal.title = col("axes.titlecolor")
	pal.label = col("axes.labelcolor")
	pal.gridAlpha = num("grid.alpha")
	pal.showGrid = flag("axes.grid")
	pal.spineTop = flag("axes.spines.top")
	pal.spineRight = flag("axes.spines.right")
	pal.spineBottom = flag("axes.spines.bottom")
	pal.spineLeft = flag("axes.spines.left")
	pal.axesWidth = num("axes.linewidth")
	pal.gridWidth = num("grid.linewidth")
	pal.lineWidth = num("lines.linewidth")
	pal.markerSize = num("lines.markersize")
	pal.boxEdge = col("boxplot.boxprops.color")
	pal.whisker = col("boxplot.whiskerprops.color")
	pal.caps = col("boxplot.capprops.color")
	pal.median = col("boxplot.medianprops.color")
	pal.flier = col("boxplot.flierprops.color")
	pal.cmap = p["image.cmap"]

	cycle, err := p.Cycle()
	errs = append(errs, err)
	pal.cycle = cycle

	if err := errors.Join(errs...); err != nil {
		return palette{}, fmt.Errorf("resolve style parameters: %w", err)
	}
	return pal, nil
}

// PlotArea returns the axes rectangle within an image of the given size.
func PlotArea(width, height int) image.Rectangle {
	return image.Rect(width*12/100, height*12/100, width*95/100, height*86/100)
}

// transform maps data coordinates into a pixel rectangle.
type transform struct {
	area       image.Rectangle
	xmin, xmax float64
	ymin, ymax float64
}

func (t transform) px(x, y float64) (float64, float64) {
	fx := float64(t.area.Min.X) + (x-t.xmin)/(t.xmax-t.xmin)*float64(t.area.Dx())
	fy := float64(t.area.Max.Y) - (y-t.ymin)/(t.ymax-t.ymin)*float64(t.area.Dy())
	return fx, fy
}

// Render draws a sample chart styled by params.
func Render(params style.Params, opts Options) (*image.RGBA, error) {
	if opts.Width < minSize || opts.Width > maxSize || opts.Height < minSize || opts.Height > maxSize {
		return nil, fmt.Errorf("%w: %dx%d (each side must be %d-%d)", ErrInvalidSize, opts.Width, opts.Height, minSize, maxSize)
	}
	if opts.Chart == "" {
		opts.Chart = ChartLine
	}
	if _, err := ParseChart(string(opts.Chart)); err != nil {
		return nil, err
	}

	pal, err := resolvePalette(params)
	if err != nil {
		return nil, err
	}
	data := buildDataset(opts.Chart)

	var cmap colormap
	if len(data.Cells) > 0 {
		if cmap, err = lookupColormap(pal.cmap); err != nil {
			return nil, err
		}
	}

	big := image.NewRGBA(image.Rect(0, 0, opts.Width*supersample, opts.Height*supersample))
	draw.Draw(big, big.Bounds(), image.NewUniform(opaque(pal.figure)), image.Point{}, draw.Src)

	area := PlotArea(big.Bounds().Dx(), big.Bounds().Dy())
	full := canvas{img: big, clip: big.Bounds()}
	plot := canvas{img: big, clip: area}
	tr := transform{area: area, xmin: data.XMin, xmax: data.XMax, ymin: data.YMin, ymax: data.YMax}

	full.fillRect(area, pal.axes, 1)
	if pal.showGrid {
		drawGrid(plot, area, pal)
	}
	drawCells(plot, tr, data.Cells, cmap)
	drawData(plot, tr, data, pal)
	drawBoxes(plot, tr, data.Boxes, pal)
	drawFrame(full, area, pal)

	out := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(out, out.Bounds(), big, big.Bounds(), draw.Src, nil)

	title := opts.Title
	if title == "" {
		title = opts.Chart.Title()
	}
	small := PlotArea(opts.Width, opts.Height)
	cx := (small.Min.X + small.Max.X) / 2
	drawText(out, title, cx, small.Min.Y-8, pal.title)
	drawText(out, data.XLabel, cx, small.Max.Y+(opts.Height-small.Max.Y)/2+6, pal.label)

	return out, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func drawGrid(cv canvas, area image.Rectangle, pal palette) {
	w := strokeWidth(pal.gridWidth)
	for _, f := range gridFractions {
		x := area.Min.X + int(f*float64(area.Dx()))
		y := area.Max.Y - int(f*float64(area.Dy()))
		cv.fillRect(image.Rect(x-w/2, area.Min.Y, x-w/2+w, area.Max.Y), pal.grid, pal.gridAlpha)
		cv.fillRect(image.Rect(area.Min.X, y-w/2, area.Max.X, y-w/2+w), pal.grid, pal.gridAlpha)
	}
}

func drawData(cv canvas, tr transform, data dataset, pal palette) {
	for _, b := range data.Bars {
		x0, y0 := tr.px(b.X0, b.Height)
		x1, y1 := tr.px(b.X1, 0)
		r := image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
		cv.fillRect(r, pal.cycle[0], data.BarAlpha)
	}

	lineWidth := pal.lineWidth * pointsToPixels * supersample
	for i, s := range data.Lines {
		pts := make([][2]float64, 0, len(s.Points))
		for _, p := range s.Points {
			x, y := tr.px(p.X, p.Y)
			pts = append(pts, [2]float64{x, y})
		}
		cv.polyline(pts, lineWidth, pal.cycle[i%len(pal.cycle)])
	}

	radius := pal.markerSize * pointsToPixels * supersample / 2
	for i, s := range data.Markers {
		c := pal.cycle[i%len(pal.cycle)]
		for _, p := range s.Points {
			x, y := tr.px(p.X, p.Y)
			cv.disc(x, y, radius, c, s.Alpha)
		}
	}
}

// drawCells fills one data unit square per cell, colored by cmap over the
// range of all cell values.
func drawCells(cv canvas, tr transform, cells [][]float64, cmap colormap) {
	if len(cells) == 0 {
		return
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range cells {
		for _, v := range row {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	n := float64(len(cells))
	for r, row := range cells {
		for c, v := range row {
			x0, y0 := tr.px(float64(c), n-float64(r))
			x1, y1 := tr.px(float64(c+1), n-float64(r+1))
			rect := image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
			cv.fillRect(rect, cmap.at((v-lo)/span), 1)
		}
	}
}

// boxHalfWidth and capHalfWidth are in data units along x.
const (
	boxHalfWidth = 0.25
	capHalfWidth = 0.125
)

// drawBoxes draws unfilled boxes with median, whiskers, caps and fliers.
func drawBoxes(cv canvas, tr transform, boxes []box, pal palette) {
	w := strokeWidth(1.0)
	radius := 3.0 * pointsToPixels * supersample

	for _, b := range boxes {
		left, q1 := tr.px(b.X-boxHalfWidth, b.Q1)
		right, q3 := tr.px(b.X+boxHalfWidth, b.Q3)
		mid, med := tr.px(b.X, b.Med)
		capL, lo := tr.px(b.X-capHalfWidth, b.Lo)
		capR, hi := tr.px(b.X+capHalfWidth, b.Hi)

		// whiskers and caps under the box
		cv.vline(mid, q1, lo, w, pal.whisker)
		cv.vline(mid, hi, q3, w, pal.whisker)
		cv.hline(capL, capR, lo, w, pal.caps)
		cv.hline(capL, capR, hi, w, pal.caps)

		cv.hline(left, right, q1, w, pal.boxEdge)
		cv.hline(left, right, q3, w, pal.boxEdge)
		cv.vline(left, q3, q1, w, pal.boxEdge)
		cv.vline(right, q3, q1, w, pal.boxEdge)

		cv.hline(left, right, med, w, pal.median)

		for _, v := range b.Fliers {
			_, y := tr.px(b.X, v)
			cv.ring(mid, y, radius, float64(w), pal.flier)
		}
	}
}

func drawFrame(cv canvas, area image.Rectangle, pal palette) {
	w := strokeWidth(pal.axesWidth)
	if pal.spineLeft {
		cv.fillRect(image.Rect(area.Min.X-w, area.Min.Y, area.Min.X, area.Max.Y+w), pal.edge, 1)
	}
	if pal.spineBottom {
		cv.fillRect(image.Rect(area.Min.X-w, area.Max.Y, area.Max.X, area.Max.Y+w), pal.edge, 1)
	}
	if pal.spineTop {
		cv.fillRect(image.Rect(area.Min.X-w, area.Min.Y-w, area.Max.X+w, area.Min.Y), pal.edge, 1)
	}
	if pal.spineRight {
		cv.fillRect(image.Rect(area.Max.X, area.Min.Y-w, area.Max.X+w, area.Max.Y+w), pal.edge, 1)
	}

	tickLen := int(math.Round(3.5*pointsToPixels)) * supersample
	for _, f := range gridFractions {
		x := area.Min.X + int(f*float64(area.Dx()))
		y := area.Max.Y - int(f*float64(area.Dy()))
		cv.fillRect(image.Rect(x-w/2, area.Max.Y+w, x-w/2+w, area.Max.Y+w+tickLen), pal.tick, 1)
		cv.fillRect(image.Rect(area.Min.X-w-tickLen, y-w/2, area.Min.X-w, y-w/2+w), pal.tick, 1)
	}
}

// strokeWidth converts a line width in points to whole canvas pixels.
func strokeWidth(points float64) int {
	return max(1, int(math.Round(points*pointsToPixels*supersample)))
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 0xff
	return c
}
