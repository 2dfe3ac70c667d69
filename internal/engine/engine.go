// Package engine drives the starfield: it sizes the surface, tracks the
// pointer, and renders one frame per host refresh until disposed.
//
// All callbacks (frames, resize, pointer) must be delivered on a single
// goroutine. The engine takes no locks.
package engine

import (
	"errors"

	"github.com/google/uuid"

	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/pointer"
	"github.com/litescript/ls-starfield/internal/render"
	"github.com/litescript/ls-starfield/internal/starfield"
	"github.com/litescript/ls-starfield/internal/surface"
)

var (
	ErrAlreadyStarted = errors.New("engine already started")
	ErrDisposed       = errors.New("engine disposed")
	ErrMissingHost    = errors.New("engine requires a viewport, surface, scheduler and event source")
)

// FrameHandle identifies a pending frame request.
type FrameHandle uint64

// Scheduler delivers one callback per display refresh.
type Scheduler interface {
	// RequestFrame schedules cb for the next refresh. t is monotonic milliseconds.
	RequestFrame(cb func(t float64)) FrameHandle
	CancelFrame(h FrameHandle)
}

// Events is the host's window-scoped event source. Each registration returns
// a function that removes it.
type Events interface {
	OnResize(fn func()) (remove func())
	OnPointerMove(fn func(x, y float64)) (remove func())
}

// Phase is the engine lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInitializing
	PhaseRunning
	PhaseDisposed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInitializing:
		return "initializing"
	case PhaseRunning:
		return "running"
	case PhaseDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Options configures an engine. Zero values pick defaults.
type Options struct {
	Color  render.RGB
	Rand   starfield.Rand // nil = time-seeded
	Logger *logging.Logger
}

// Host bundles the collaborators supplied at mount time.
type Host struct {
	Viewport  surface.Viewport
	Surface   surface.Surface
	Scheduler Scheduler
	Events    Events
}

// Engine is one mounted starfield. Create one per surface.
type Engine struct {
	id  string
	log *logging.Logger

	scheduler Scheduler
	events    Events

	surface  *surface.Manager
	pointer  pointer.Tracker
	renderer *render.Renderer

	phase    Phase
	frame    FrameHandle
	pending  bool
	releases []func()
	frames   uint64
	sprites  []render.Sprite
}

// New creates an idle engine.
func New(h Host, opts Options) (*Engine, error) {
	if h.Viewport == nil || h.Surface == nil || h.Scheduler == nil || h.Events == nil {
		return nil, ErrMissingHost
	}

	color := opts.Color
	if color == (render.RGB{}) {
		color = render.White
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	id := uuid.NewString()

	return &Engine{
		id:        id,
		log:       log.With("engine", id[:8]),
		scheduler: h.Scheduler,
		events:    h.Events,
		surface:   surface.NewManager(h.Viewport, h.Surface, starfield.NewGenerator(opts.Rand)),
		renderer:  render.NewRenderer(color),
	}, nil
}

// Start sizes the surface, generates the field, registers listeners and
// requests the first frame. If any step fails, everything acquired so far
// is released and the engine is disposed.
func (e *Engine) Start() (err error) {
	switch e.phase {
	case PhaseInitializing, PhaseRunning:
		return ErrAlreadyStarted
	case PhaseDisposed:
		return ErrDisposed
	}

	e.setPhase(PhaseInitializing)
	started := false
	defer func() {
		if !started {
			e.teardown()
		}
	}()

	e.surface.Sync()
	st := e.surface.State()
	e.log.Debug("surface %vx%v @%vx, %d stars", st.Width, st.Height, st.PixelRatio, len(e.surface.Field()))

	e.acquire(e.events.OnResize(e.handleResize))
	e.acquire(e.events.OnPointerMove(e.handlePointer))
	e.requestFrame()

	e.setPhase(PhaseRunning)
	started = true
	return nil
}

// Dispose cancels the pending frame and removes all listeners. It is
// terminal and safe to call more than once.
func (e *Engine) Dispose() {
	if e.phase == PhaseDisposed {
		return
	}
	e.teardown()
}

// Phase returns the lifecycle state.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Frames returns the number of frames rendered.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// Sprites returns the resolved stars of the last frame. The slice is reused
// by the next frame.
func (e *Engine) Sprites() []render.Sprite {
	return e.sprites
}

// Surface returns the current surface geometry.
func (e *Engine) Surface() surface.State {
	return e.surface.State()
}

// Field returns the current star field.
func (e *Engine) Field() starfield.Field {
	return e.surface.Field()
}

// Pointer returns the last observed pointer position.
func (e *Engine) Pointer() (x, y float64) {
	return e.pointer.Position()
}

func (e *Engine) acquire(release func()) {
	if release != nil {
		e.releases = append(e.releases, release)
	}
}

func (e *Engine) teardown() {
	if e.pending {
		e.scheduler.CancelFrame(e.frame)
		e.pending = false
	}
	for i := len(e.releases) - 1; i >= 0; i-- {
		e.releases[i]()
	}
	e.releases = nil
	e.surface.Release()
	e.sprites = nil
	e.setPhase(PhaseDisposed)
}

func (e *Engine) setPhase(p Phase) {
	e.log.Debug("%s -> %s", e.phase, p)
	e.phase = p
}

func (e *Engine) requestFrame() {
	e.frame = e.scheduler.RequestFrame(e.tick)
	e.pending = true
}

func (e *Engine) tick(t float64) {
	if e.phase != PhaseRunning {
		return
	}
	e.pending = false

	st := e.surface.State()
	px, py := e.pointer.Position()
	frame := render.Frame{
		Time:     t,
		Width:    st.Width,
		Height:   st.Height,
		PointerX: px,
		PointerY: py,
	}

	var ctx render.Context
	if c, ok := e.surface.Context(); ok {
		ctx = c
	}
	e.sprites = e.renderer.Render(ctx, frame, e.surface.Field())
	e.frames++

	e.requestFrame()
}

func (e *Engine) handleResize() {
	if e.phase != PhaseRunning {
		return
	}
	e.surface.Sync()
	st := e.surface.State()
	e.log.Debug("resize %vx%v, %d stars", st.Width, st.Height, len(e.surface.Field()))
}

func (e *Engine) handlePointer(x, y float64) {
	if e.phase != PhaseRunning {
		return
	}
	e.pointer.Move(x, y)
}
