// Package surface keeps a drawing surface's backing store aligned with the
// device pixel ratio and owns the star field sized to it.
package surface

import (
	"math"

	"github.com/litescript/ls-starfield/internal/render"
	"github.com/litescript/ls-starfield/internal/starfield"
)

// Viewport reports the host's logical size and pixel density.
type Viewport interface {
	Size() (w, h float64)
	DevicePixelRatio() float64
}

// Surface is a drawable element with a backing store.
type Surface interface {
	// Resize sets the backing-store pixel size and the displayed logical size.
	// Implementations reset their transform, as a canvas does.
	Resize(backingW, backingH int, styleW, styleH float64)
	// Context returns the 2D context, or false when none is available.
	Context() (render.Context, bool)
}

// State is the surface geometry after the last sync.
type State struct {
	Width, Height float64 // logical
	PixelRatio    float64
	BackingWidth  int
	BackingHeight int
}

// Manager sizes the surface and regenerates the field on every sync.
type Manager struct {
	viewport  Viewport
	surface   Surface
	generator *starfield.Generator

	state State
	field starfield.Field
	syncs int
}

// NewManager creates a manager. Nothing happens until Sync.
func NewManager(v Viewport, s Surface, g *starfield.Generator) *Manager {
	return &Manager{viewport: v, surface: s, generator: g}
}

// Sync runs the full resize sequence: read the viewport, size the backing
// store, apply the pixel-ratio scale and replace the star field.
func (m *Manager) Sync() {
	w, h := m.viewport.Size()
	w = math.Max(w, 0)
	h = math.Max(h, 0)

	dpr := m.viewport.DevicePixelRatio()
	if dpr <= 0 || math.IsNaN(dpr) {
		dpr = 1
	}

	m.state = State{
		Width:         w,
		Height:        h,
		PixelRatio:    dpr,
		BackingWidth:  int(math.Round(w * dpr)),
		BackingHeight: int(math.Round(h * dpr)),
	}

	m.surface.Resize(m.state.BackingWidth, m.state.BackingHeight, w, h)
	if ctx, ok := m.surface.Context(); ok {
		ctx.SetScale(dpr)
	}

	m.field = m.generator.Generate(w, h)
	m.syncs++
}

// State returns the current geometry.
func (m *Manager) State() State {
	return m.state
}

// Field returns the current star field. Callers must not modify it.
func (m *Manager) Field() starfield.Field {
	return m.field
}

// Context returns the surface's drawing context.
func (m *Manager) Context() (render.Context, bool) {
	return m.surface.Context()
}

// Release drops the star field.
func (m *Manager) Release() {
	m.field = nil
}
