// Package render turns a star field into per-frame drawing commands.
package render

import (
	"math"

	"github.com/litescript/ls-starfield/internal/starfield"
)

const (
	parallaxX = 30.0
	parallaxY = 20.0

	minRadius      = 0.2
	gradientScale  = 3.0
	fillScale      = 1.6
	midStopOffset  = 0.4
	midStopFalloff = 0.6
)

// Frame is the input for one render tick.
type Frame struct {
	Time     float64 // monotonic milliseconds
	Width    float64 // logical viewport
	Height   float64
	PointerX float64
	PointerY float64
}

// Sprite is the resolved draw position and intensity of one star in one frame.
type Sprite struct {
	X, Y   float64
	Alpha  float64
	Radius float64
}

// Renderer paints star fields. It keeps a reusable sprite buffer, so the
// slice returned by Render is only valid until the next call.
type Renderer struct {
	Color   RGB
	sprites []Sprite
}

// NewRenderer creates a renderer painting in the given color.
func NewRenderer(c RGB) *Renderer {
	return &Renderer{Color: c}
}

// PointerOffset normalizes the pointer against the viewport center into
// roughly [-1, 1]. An axis with a zero center yields 0.
func PointerOffset(w, h, px, py float64) (mx, my float64) {
	cx, cy := w/2, h/2
	if cx != 0 {
		mx = (px - cx) / cx
	}
	if cy != 0 {
		my = (py - cy) / cy
	}
	return mx, my
}

// Resolve computes the sprite for the star at ordinal index i.
func Resolve(s starfield.Star, i int, t, mx, my float64) Sprite {
	near := 1 - s.Depth
	px := s.X + mx*parallaxX*near
	py := s.Y + my*parallaxY*near

	fi := float64(i)
	jx := math.Sin(t*0.0008+fi) * (0.5 + s.Depth*0.8)
	jy := math.Cos(t*0.0007+fi*1.3) * (0.5 + s.Depth*0.5)

	twinkle := 0.6 + math.Sin(t*0.002+s.TwPhase)*0.4

	return Sprite{
		X:      px + jx,
		Y:      py + jy,
		Alpha:  clamp01(s.BaseAlpha * twinkle),
		Radius: math.Max(minRadius, s.Size),
	}
}

// Glow builds the soft glyph for a sprite.
func (sp Sprite) Glow(c RGB) Glow {
	return Glow{
		X:          sp.X,
		Y:          sp.Y,
		Radius:     sp.Radius * gradientScale,
		FillRadius: sp.Radius * fillScale,
		Stops: [3]Stop{
			{Offset: 0, Color: c, Alpha: sp.Alpha},
			{Offset: midStopOffset, Color: c, Alpha: sp.Alpha * midStopFalloff},
			{Offset: 1, Color: c, Alpha: 0},
		},
	}
}

// Render clears the viewport and paints every star. A nil ctx skips drawing
// but still resolves the frame's sprites.
func (r *Renderer) Render(ctx Context, f Frame, field starfield.Field) []Sprite {
	mx, my := PointerOffset(f.Width, f.Height, f.PointerX, f.PointerY)

	r.sprites = r.sprites[:0]
	for i, s := range field {
		r.sprites = append(r.sprites, Resolve(s, i, f.Time, mx, my))
	}

	if ctx == nil {
		return r.sprites
	}

	ctx.ClearRect(0, 0, f.Width, f.Height)
	for _, sp := range r.sprites {
		ctx.FillGlow(sp.Glow(r.Color))
	}
	return r.sprites
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
