package render

// Context is the subset of a 2D drawing context the renderer needs.
// Coordinates are logical pixels; the context applies its own scale.
type Context interface {
	// SetScale replaces the current transform with a uniform scale.
	SetScale(s float64)
	ClearRect(x, y, w, h float64)
	FillGlow(g Glow)
}

// Stop is a radial gradient color stop.
type Stop struct {
	Offset float64 // 0..1 along the gradient radius
	Color  RGB
	Alpha  float64
}

// Glow is a disk filled with a radial gradient centered on the disk.
type Glow struct {
	X, Y       float64
	Radius     float64 // gradient outer radius
	FillRadius float64 // disk radius
	Stops      [3]Stop
}

// At returns the gradient color and alpha at distance d from the center.
// Between stops alpha is interpolated linearly; past the last stop it holds.
func (g Glow) At(d float64) (RGB, float64) {
	if g.Radius <= 0 {
		return g.Stops[0].Color, 0
	}
	off := d / g.Radius
	first := g.Stops[0]
	if off <= first.Offset {
		return first.Color, first.Alpha
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if off <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color, b.Alpha
			}
			t := (off - a.Offset) / span
			return a.Color.Lerp(b.Color, t), a.Alpha + (b.Alpha-a.Alpha)*t
		}
	}
	last := g.Stops[len(g.Stops)-1]
	return last.Color, last.Alpha
}
