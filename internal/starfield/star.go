// Package starfield generates the particle population drawn by the renderer.
package starfield

// Star is a single particle. A field is regenerated wholesale on every resize;
// stars are never mutated after generation.
type Star struct {
	X, Y      float64 // logical-pixel position at generation time
	Size      float64 // base radius, >= MinSize
	BaseAlpha float64 // opacity before twinkle, may exceed 1 for near stars
	TwPhase   float64 // twinkle phase offset in [0, 2π)
	Depth     float64 // pseudo-distance in [0, 1), 0 = nearest
}

// Field is an ordered star population. The ordinal index seeds per-frame jitter.
type Field []Star
