package host

import (
	"fmt"
	"time"

	"github.com/litescript/ls-starfield/internal/cells"
	"github.com/litescript/ls-starfield/internal/engine"
	"github.com/litescript/ls-starfield/internal/raster"
	"github.com/litescript/ls-starfield/internal/render"
)

// TerminalConfig sizes the logical pixel grid behind each terminal cell.
type TerminalConfig struct {
	CellW, CellH float64
	Ratio        float64
	Background   render.RGB
}

// Terminal hosts an engine on a character grid. The engine draws into a
// raster canvas which is sampled into half-block cells after each frame.
// The engine starts on the first Resize, when the grid size is known.
type Terminal struct {
	Viewport *CellViewport
	Events   *Listeners
	Frames   *FrameQueue
	Canvas   *raster.Canvas
	Engine   *engine.Engine

	grid  cells.Grid
	epoch time.Time
}

// NewTerminal creates an idle terminal host.
func NewTerminal(cfg TerminalConfig, opts engine.Options) (*Terminal, error) {
	t := &Terminal{
		Viewport: &CellViewport{CellW: cfg.CellW, CellH: cfg.CellH, Ratio: cfg.Ratio},
		Events:   NewListeners(),
		Frames:   &FrameQueue{},
		Canvas:   raster.New(cfg.Background),
		epoch:    time.Now(),
	}

	e, err := engine.New(engine.Host{
		Viewport:  t.Viewport,
		Surface:   t.Canvas,
		Scheduler: t.Frames,
		Events:    t.Events,
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	t.Engine = e
	return t, nil
}

// Resize updates the grid and either starts the engine or notifies it. The
// grid takes the new size at once, cleared to the background, so a view
// rendered before the next frame never has the old dimensions.
func (t *Terminal) Resize(cols, rows int) error {
	t.Viewport.Cols = max(cols, 0)
	t.Viewport.Rows = max(rows, 0)

	switch t.Engine.Phase() {
	case engine.PhaseIdle:
		if err := t.Engine.Start(); err != nil {
			return fmt.Errorf("start engine: %w", err)
		}
	case engine.PhaseDisposed:
		return engine.ErrDisposed
	default:
		t.Events.Resize()
	}
	t.grid.Sample(t.Canvas.Image(), t.Viewport.Cols, t.Viewport.Rows)
	return nil
}

// PointerCell reports the pointer over a cell.
func (t *Terminal) PointerCell(col, row int) {
	t.Events.Move(t.Viewport.CellCenter(col, row))
}

// Frame runs pending frames at now and resamples the grid. It reports
// whether anything ran.
func (t *Terminal) Frame(now time.Time) bool {
	ms := float64(now.Sub(t.epoch)) / float64(time.Millisecond)
	if t.Frames.Run(ms) == 0 {
		return false
	}
	t.grid.Sample(t.Canvas.Image(), t.Viewport.Cols, t.Viewport.Rows)
	return true
}

// Grid returns the cells sampled after the last frame.
func (t *Terminal) Grid() *cells.Grid {
	return &t.grid
}

// Close disposes the engine.
func (t *Terminal) Close() {
	t.Engine.Dispose()
}
