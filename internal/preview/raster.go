package preview

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// pointsToPixels converts typographic points to pixels at 100 dpi.
const pointsToPixels = 100.0 / 72.0

// canvas wraps an RGBA image with a clip rectangle for plot elements.
type canvas struct {
	img  *image.RGBA
	clip image.Rectangle
}

// blend composites c over the pixel at (x, y) with the given opacity.
func (cv canvas) blend(x, y int, c color.RGBA, alpha float64) {
	if !image.Pt(x, y).In(cv.clip) {
		return
	}
	a := alpha * float64(c.A) / 255
	if a <= 0 {
		return
	}
	if a > 1 {
		a = 1
	}

	i := cv.img.PixOffset(x, y)
	for k, v := range [3]uint8{c.R, c.G, c.B} {
		dst := float64(cv.img.Pix[i+k])
		cv.img.Pix[i+k] = uint8(dst + (float64(v)-dst)*a + 0.5)
	}
	cv.img.Pix[i+3] = 0xff
}

// fillRect blends c over every pixel of r.
func (cv canvas) fillRect(r image.Rectangle, c color.RGBA, alpha float64) {
	r = r.Intersect(cv.clip)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cv.blend(x, y, c, alpha)
		}
	}
}

// disc blends a filled circle centered on (cx, cy).
func (cv canvas) disc(cx, cy, radius float64, c color.RGBA, alpha float64) {
	r2 := radius * radius
	x0, x1 := int(math.Floor(cx-radius)), int(math.Ceil(cx+radius))
	y0, y1 := int(math.Floor(cy-radius)), int(math.Ceil(cy+radius))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r2 {
				cv.blend(x, y, c, alpha)
			}
		}
	}
}

// polyline draws connected segments of the given width. Opaque strokes
// only; overlapping stamps would darken translucent ones.
func (cv canvas) polyline(pts [][2]float64, width float64, c color.RGBA) {
	radius := math.Max(width/2, 0.5)
	for i := 1; i < len(pts); i++ {
		ax, ay := pts[i-1][0], pts[i-1][1]
		bx, by := pts[i][0], pts[i][1]
		steps := int(math.Ceil(math.Hypot(bx-ax, by-ay)*2)) + 1
		for s := 0; s <= steps; s++ {
			t := float64(s) / float64(steps)
			cv.disc(ax+(bx-ax)*t, ay+(by-ay)*t, radius, c, 1)
		}
	}
}

// hline fills a horizontal stroke of width w centered on y.
func (cv canvas) hline(x0, x1, y float64, w int, c color.RGBA) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	top := int(math.Round(y)) - w/2
	cv.fillRect(image.Rect(int(math.Round(x0))-w/2, top, int(math.Round(x1))-w/2+w, top+w), c, 1)
}

// vline fills a vertical stroke of width w centered on x.
func (cv canvas) vline(x, y0, y1 float64, w int, c color.RGBA) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	left := int(math.Round(x)) - w/2
	cv.fillRect(image.Rect(left, int(math.Round(y0))-w/2, left+w, int(math.Round(y1))-w/2+w), c, 1)
}

// ring blends a circle outline of the given stroke width centered on (cx, cy).
func (cv canvas) ring(cx, cy, radius, width float64, c color.RGBA) {
	outer := radius + width/2
	inner := math.Max(radius-width/2, 0)
	x0, x1 := int(math.Floor(cx-outer)), int(math.Ceil(cx+outer))
	y0, y1 := int(math.Floor(cy-outer)), int(math.Ceil(cy+outer))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d <= outer && d >= inner {
				cv.blend(x, y, c, 1)
			}
		}
	}
}

// drawText draws s with its baseline at y, horizontally centered on cx.
func drawText(img *image.RGBA, s string, cx, y int, c color.RGBA) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, s).Ceil()
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(cx-width/2, y),
	}
	d.DrawString(s)
}
