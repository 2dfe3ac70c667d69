package engine_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-starfield/internal/engine"
	"github.com/litescript/ls-starfield/internal/host"
	"github.com/litescript/ls-starfield/internal/render"
)

// recordingSurface captures resizes and draw calls.
type recordingSurface struct {
	noContext bool

	backingW, backingH int
	styleW, styleH     float64
	resizes            int

	scale  float64
	clears int
	glows  []render.Glow
}

func (s *recordingSurface) Resize(bw, bh int, sw, sh float64) {
	s.backingW, s.backingH = bw, bh
	s.styleW, s.styleH = sw, sh
	s.scale = 1
	s.resizes++
}

func (s *recordingSurface) Context() (render.Context, bool) {
	if s.noContext {
		return nil, false
	}
	return s, true
}

func (s *recordingSurface) SetScale(v float64) { s.scale = v }

func (s *recordingSurface) ClearRect(_, _, _, _ float64) { s.clears++ }

func (s *recordingSurface) FillGlow(g render.Glow) { s.glows = append(s.glows, g) }

// stickyEvents keeps handlers after removal so tests can fire them late.
type stickyEvents struct {
	resize  []func()
	pointer []func(x, y float64)
	removed int
}

func (e *stickyEvents) OnResize(fn func()) func() {
	e.resize = append(e.resize, fn)
	return func() { e.removed++ }
}

func (e *stickyEvents) OnPointerMove(fn func(x, y float64)) func() {
	e.pointer = append(e.pointer, fn)
	return func() { e.removed++ }
}

type fixture struct {
	viewport *host.FixedViewport
	surface  *recordingSurface
	frames   *host.FrameQueue
	events   *host.Listeners
	engine   *engine.Engine
}

func newFixture(t *testing.T, w, h, ratio float64, seed uint64) *fixture {
	t.Helper()
	f := &fixture{
		viewport: &host.FixedViewport{W: w, H: h, Ratio: ratio},
		surface:  &recordingSurface{},
		frames:   &host.FrameQueue{},
		events:   host.NewListeners(),
	}
	e, err := engine.New(engine.Host{
		Viewport:  f.viewport,
		Surface:   f.surface,
		Scheduler: f.frames,
		Events:    f.events,
	}, engine.Options{Rand: rand.New(rand.NewPCG(seed, seed))})
	require.NoError(t, err)
	f.engine = e
	return f
}

func TestNew_RequiresHost(t *testing.T) {
	_, err := engine.New(engine.Host{}, engine.Options{})
	assert.ErrorIs(t, err, engine.ErrMissingHost)
}

func TestStart_InitializesSurfaceAndListeners(t *testing.T) {
	f := newFixture(t, 800, 600, 2, 1)
	assert.Equal(t, engine.PhaseIdle, f.engine.Phase())

	require.NoError(t, f.engine.Start())

	assert.Equal(t, engine.PhaseRunning, f.engine.Phase())
	assert.Len(t, f.engine.Field(), 80)
	assert.Equal(t, 1600, f.surface.backingW)
	assert.Equal(t, 1200, f.surface.backingH)
	assert.Equal(t, 800.0, f.surface.styleW)
	assert.Equal(t, 600.0, f.surface.styleH)
	assert.Equal(t, 2.0, f.surface.scale)
	assert.Equal(t, 2, f.events.Count())
	assert.True(t, f.frames.Pending())
	assert.Zero(t, f.engine.Frames(), "first frame is requested, not run")
}

func TestStart_Twice(t *testing.T) {
	f := newFixture(t, 800, 600, 1, 1)
	require.NoError(t, f.engine.Start())
	assert.ErrorIs(t, f.engine.Start(), engine.ErrAlreadyStarted)
}

func TestTick_DrawsAndReschedules(t *testing.T) {
	f := newFixture(t, 2000, 1500, 1, 1)
	require.NoError(t, f.engine.Start())

	for i := 1; i <= 3; i++ {
		require.Equal(t, 1, f.frames.Run(float64(i)*16.7))
		assert.True(t, f.frames.Pending(), "frame %d rescheduled", i)
	}

	assert.Equal(t, uint64(3), f.engine.Frames())
	assert.Equal(t, 3, f.surface.clears)
	assert.Len(t, f.surface.glows, 3*375)
	assert.Len(t, f.engine.Sprites(), 375)
}

func TestTick_NoContextSkipsDrawing(t *testing.T) {
	f := newFixture(t, 800, 600, 1, 1)
	f.surface.noContext = true
	require.NoError(t, f.engine.Start())

	f.frames.Run(16)

	assert.Zero(t, f.surface.clears)
	assert.Empty(t, f.surface.glows)
	assert.True(t, f.frames.Pending(), "loop keeps running without a context")
}

func TestResize_ReplacesField(t *testing.T) {
	f := newFixture(t, 800, 600, 1, 1)
	require.NoError(t, f.engine.Start())
	before := f.engine.Field()
	require.Len(t, before, 80)

	f.viewport.W, f.viewport.H = 2000, 1500
	f.events.Resize()

	after := f.engine.Field()
	require.Len(t, after, 375)
	assert.NotSame(t, &before[0], &after[0], "field storage must not be shared")
	assert.Equal(t, 2000.0, f.engine.Surface().Width)
	assert.Equal(t, 2, f.surface.resizes)

	// Same size still regenerates.
	f.events.Resize()
	again := f.engine.Field()
	assert.Len(t, again, 375)
	assert.NotSame(t, &after[0], &again[0])
}

func TestPointer_FeedsParallax(t *testing.T) {
	f := newFixture(t, 800, 600, 1, 1)
	require.NoError(t, f.engine.Start())

	f.frames.Run(0)
	centered := append([]render.Sprite(nil), f.engine.Sprites()...)

	f.events.Move(800, 300)
	x, y := f.engine.Pointer()
	assert.Equal(t, 800.0, x)
	assert.Equal(t, 300.0, y)

	f.frames.Run(0)
	moved := f.engine.Sprites()

	// Pointer at (0,0) before any move maps to offset (-1,-1); at (800,300)
	// it maps to (1,0). Every star shifts right.
	for i := range moved {
		assert.Greater(t, moved[i].X, centered[i].X)
	}
}

func TestDispose_CancelsAndUnregisters(t *testing.T) {
	f := newFixture(t, 800, 600, 1, 1)
	require.NoError(t, f.engine.Start())

	f.engine.Dispose()

	assert.Equal(t, engine.PhaseDisposed, f.engine.Phase())
	assert.False(t, f.frames.Pending())
	_, cancels := f.frames.Stats()
	assert.Equal(t, 1, cancels)
	assert.Zero(t, f.events.Count())
	assert.Nil(t, f.engine.Field())

	assert.Zero(t, f.frames.Run(100))
	assert.Zero(t, f.engine.Frames())

	f.engine.Dispose()
	_, cancels = f.frames.Stats()
	assert.Equal(t, 1, cancels, "second dispose is a no-op")

	assert.ErrorIs(t, f.engine.Start(), engine.ErrDisposed)
}

func TestDispose_IgnoresLateCallbacks(t *testing.T) {
	ev := &stickyEvents{}
	frames := &host.FrameQueue{}
	surf := &recordingSurface{}
	vp := &host.FixedViewport{W: 800, H: 600, Ratio: 1}

	e, err := engine.New(engine.Host{Viewport: vp, Surface: surf, Scheduler: frames, Events: ev}, engine.Options{})
	require.NoError(t, err)
	require.NoError(t, e.Start())

	e.Dispose()
	assert.Equal(t, 2, ev.removed)

	vp.W, vp.H = 4000, 4000
	for _, fn := range ev.resize {
		fn()
	}
	for _, fn := range ev.pointer {
		fn(10, 10)
	}

	assert.Equal(t, 1, surf.resizes, "no resize after dispose")
	x, y := e.Pointer()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestDispose_IgnoresLateFrame(t *testing.T) {
	spy := &spyScheduler{}
	e, err := engine.New(engine.Host{
		Viewport:  &host.FixedViewport{W: 800, H: 600, Ratio: 1},
		Surface:   &recordingSurface{},
		Scheduler: spy,
		Events:    host.NewListeners(),
	}, engine.Options{})
	require.NoError(t, err)
	require.NoError(t, e.Start())
	require.NotNil(t, spy.cb)

	e.Dispose()
	assert.Equal(t, []engine.FrameHandle{spy.handle}, spy.cancelled)

	// A host that fires a cancelled callback anyway must not draw.
	spy.cb(16)
	assert.Zero(t, e.Frames())
}

func TestStart_FailureReleasesAcquired(t *testing.T) {
	ev := &panickyEvents{Listeners: host.NewListeners()}
	frames := &host.FrameQueue{}
	e, err := engine.New(engine.Host{
		Viewport:  &host.FixedViewport{W: 800, H: 600, Ratio: 1},
		Surface:   &recordingSurface{},
		Scheduler: frames,
		Events:    ev,
	}, engine.Options{})
	require.NoError(t, err)

	assert.Panics(t, func() { _ = e.Start() })
	assert.Equal(t, engine.PhaseDisposed, e.Phase())
	assert.Zero(t, ev.Count(), "resize listener released")
	assert.False(t, frames.Pending())
}

func TestDeterminism(t *testing.T) {
	run := func() [][]render.Sprite {
		f := newFixture(t, 1280, 720, 1.5, 99)
		require.NoError(t, f.engine.Start())
		f.events.Move(300, 200)

		var out [][]render.Sprite
		for _, ts := range []float64{0, 16.6, 33.3, 1000, 5000.5} {
			f.frames.Run(ts)
			out = append(out, append([]render.Sprite(nil), f.engine.Sprites()...))
		}
		return out
	}

	assert.Equal(t, run(), run())
}

func TestDegenerateViewport(t *testing.T) {
	f := newFixture(t, 0, 0, 1, 1)
	require.NoError(t, f.engine.Start())
	f.events.Move(50, 50)

	assert.NotPanics(t, func() { f.frames.Run(16) })
	assert.Len(t, f.engine.Field(), 80)
	for _, sp := range f.engine.Sprites() {
		assert.False(t, math.IsNaN(sp.X) || math.IsNaN(sp.Y))
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", engine.PhaseIdle.String())
	assert.Equal(t, "running", engine.PhaseRunning.String())
	assert.Equal(t, "disposed", engine.PhaseDisposed.String())
	assert.Equal(t, "unknown", engine.Phase(42).String())
}

type spyScheduler struct {
	cb        func(float64)
	handle    engine.FrameHandle
	cancelled []engine.FrameHandle
}

func (s *spyScheduler) RequestFrame(cb func(float64)) engine.FrameHandle {
	s.handle++
	s.cb = cb
	return s.handle
}

func (s *spyScheduler) CancelFrame(h engine.FrameHandle) {
	s.cancelled = append(s.cancelled, h)
}

type panickyEvents struct {
	*host.Listeners
}

func (p *panickyEvents) OnPointerMove(func(x, y float64)) func() {
	panic("pointer events unavailable")
}
