// Package tcellhost runs the starfield directly on a tcell screen.
package tcellhost

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/litescript/ls-starfield/internal/cells"
	"github.com/litescript/ls-starfield/internal/host"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/render"
)

// Runner owns a tcell screen and feeds the terminal host from a single loop.
type Runner struct {
	screen   tcell.Screen
	term     *host.Terminal
	interval time.Duration
	log      *logging.Logger
}

// New creates a runner. A nil screen opens the real terminal on Run.
func New(screen tcell.Screen, term *host.Terminal, interval time.Duration, log *logging.Logger) *Runner {
	if log == nil {
		log = logging.Discard()
	}
	return &Runner{screen: screen, term: term, interval: interval, log: log}
}

// Run blocks until the user quits or ctx is done. Events are read on a
// helper goroutine and handled, together with frame ticks, on this one.
func (r *Runner) Run(ctx context.Context) error {
	if r.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		r.screen = s
	}
	if err := r.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer r.screen.Fini()
	defer r.term.Close()

	r.screen.EnableMouse(tcell.MouseMotionEvents)
	r.screen.HideCursor()

	eventCh := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventCh <- ev:
			case <-quit:
				return
			}
		}
	}()

	cols, rows := r.screen.Size()
	if err := r.term.Resize(cols, rows); err != nil {
		return err
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventCh:
			done, err := r.handle(ev)
			if err != nil || done {
				return err
			}
		case now := <-ticker.C:
			if r.term.Frame(now) {
				r.draw()
			}
		}
	}
}

// handle applies one event. It reports true when the loop should stop.
func (r *Runner) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return true, nil
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		r.screen.Sync()
		if err := r.term.Resize(cols, rows); err != nil {
			return true, err
		}
		r.log.Debug("resize %dx%d cells", cols, rows)
	case *tcell.EventMouse:
		x, y := ev.Position()
		r.term.PointerCell(x, y)
	}
	return false, nil
}

func (r *Runner) draw() {
	g := r.term.Grid()
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			c := g.At(col, row)
			r.screen.SetContent(col, row, cells.HalfBlock, nil, cellStyle(c))
		}
	}
	r.screen.Show()
}

func cellStyle(c cells.Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(rgb(c.Top)).
		Background(rgb(c.Bottom))
}

func rgb(c render.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
