// Package raster is a software drawing surface backed by an RGBA image.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/litescript/ls-starfield/internal/render"
)

// Canvas implements surface.Surface and render.Context over an *image.RGBA.
// ClearRect paints the background color rather than transparency so the
// image can be shown or encoded directly.
type Canvas struct {
	img        *image.RGBA
	scale      float64
	background render.RGB

	styleW, styleH float64
}

// New creates an empty canvas. It has no backing store until Resize.
func New(background render.RGB) *Canvas {
	return &Canvas{scale: 1, background: background}
}

// Resize reallocates the backing store and resets the transform.
func (c *Canvas) Resize(backingW, backingH int, styleW, styleH float64) {
	backingW = max(backingW, 0)
	backingH = max(backingH, 0)
	c.img = image.NewRGBA(image.Rect(0, 0, backingW, backingH))
	c.styleW, c.styleH = styleW, styleH
	c.scale = 1
	c.fill(c.img.Rect, c.background)
}

// Context returns the canvas itself once it has a non-empty backing store.
func (c *Canvas) Context() (render.Context, bool) {
	if c.img == nil || c.img.Rect.Empty() {
		return nil, false
	}
	return c, true
}

// Image returns the backing store. It is replaced on Resize.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// StyleSize returns the logical size given at the last Resize.
func (c *Canvas) StyleSize() (w, h float64) {
	return c.styleW, c.styleH
}

// SetScale replaces the transform with a uniform scale.
func (c *Canvas) SetScale(s float64) {
	c.scale = s
}

// ClearRect paints a logical rectangle with the background color.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	r := image.Rect(
		int(math.Floor(x*c.scale)),
		int(math.Floor(y*c.scale)),
		int(math.Ceil((x+w)*c.scale)),
		int(math.Ceil((y+h)*c.scale)),
	)
	c.fill(r.Intersect(c.img.Rect), c.background)
}

// FillGlow composites a gradient disk with source-over blending, sampling
// each backing pixel at its center.
func (c *Canvas) FillGlow(g render.Glow) {
	if g.FillRadius <= 0 {
		return
	}
	s := c.scale
	cx, cy, fr := g.X*s, g.Y*s, g.FillRadius*s
	bounds := image.Rect(
		int(math.Floor(cx-fr)),
		int(math.Floor(cy-fr)),
		int(math.Ceil(cx+fr))+1,
		int(math.Ceil(cy+fr))+1,
	).Intersect(c.img.Rect)

	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			dx := float64(px) + 0.5 - cx
			dy := float64(py) + 0.5 - cy
			d := math.Hypot(dx, dy)
			if d > fr {
				continue
			}
			col, a := g.At(d / s)
			if a <= 0 {
				continue
			}
			c.blend(px, py, col, math.Min(a, 1))
		}
	}
}

func (c *Canvas) blend(x, y int, src render.RGB, a float64) {
	i := c.img.PixOffset(x, y)
	p := c.img.Pix[i : i+4 : i+4]
	inv := 1 - a
	p[0] = uint8(float64(src.R)*a + float64(p[0])*inv + 0.5)
	p[1] = uint8(float64(src.G)*a + float64(p[1])*inv + 0.5)
	p[2] = uint8(float64(src.B)*a + float64(p[2])*inv + 0.5)
	p[3] = uint8(a*255 + float64(p[3])*inv + 0.5)
}

func (c *Canvas) fill(r image.Rectangle, bg render.RGB) {
	col := color.RGBA{bg.R, bg.G, bg.B, 255}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.img.SetRGBA(x, y, col)
		}
	}
}
