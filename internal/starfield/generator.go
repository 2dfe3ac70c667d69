package starfield

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	// AreaPerStar is the logical-pixel area allotted to one star.
	AreaPerStar = 8000.0

	MinStars = 80
	MaxStars = 900

	MinSize   = 0.4
	sizeRange = 2.6

	minAlpha   = 0.25
	alphaRange = 0.85
)

// Rand is the uniform source the generator draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64 // uniform in [0, 1)
}

// Count returns the field size for a logical viewport:
// round(clamp(w*h/AreaPerStar, MinStars, MaxStars)).
func Count(w, h float64) int {
	n := w * h / AreaPerStar
	if math.IsNaN(n) || n < MinStars {
		n = MinStars
	} else if n > MaxStars {
		n = MaxStars
	}
	return int(math.Round(n))
}

// Generator produces star fields from an injected random source.
type Generator struct {
	rnd Rand
}

// NewGenerator creates a generator. A nil source falls back to a time-seeded PCG.
func NewGenerator(rnd Rand) *Generator {
	if rnd == nil {
		now := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(now, now>>17|1))
	}
	return &Generator{rnd: rnd}
}

// NewSource returns a reproducible PCG source for seed.
func NewSource(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSeeded creates a generator with a reproducible sequence.
func NewSeeded(seed uint64) *Generator {
	return &Generator{rnd: NewSource(seed)}
}

// Generate returns a fresh field for a w×h logical viewport.
// Per-star draw order: depth, size, x, y, alpha, phase.
func (g *Generator) Generate(w, h float64) Field {
	n := Count(w, h)
	w = math.Max(w, 0)
	h = math.Max(h, 0)

	field := make(Field, n)
	for i := range field {
		depth := g.rnd.Float64()
		near := 1 - depth

		s := g.rnd.Float64()
		size := MinSize + s*s*sizeRange*near

		x := g.rnd.Float64() * w
		y := g.rnd.Float64() * h

		alpha := minAlpha + g.rnd.Float64()*alphaRange*near
		phase := g.rnd.Float64() * 2 * math.Pi

		field[i] = Star{
			X:         x,
			Y:         y,
			Size:      size,
			BaseAlpha: alpha,
			TwPhase:   phase,
			Depth:     depth,
		}
	}
	return field
}
