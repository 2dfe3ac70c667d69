// Package ebitenhost runs the starfield in a desktop window.
package ebitenhost

import (
	"context"
	"fmt"
	"image/color"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/litescript/ls-starfield/internal/engine"
	"github.com/litescript/ls-starfield/internal/host"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/render"
)

// glowRings is the number of concentric disks approximating a gradient.
const glowRings = 6

// Config holds window settings.
type Config struct {
	Width, Height int
	Title         string
	Ratio         float64 // 0 = monitor scale factor
	Background    render.RGB
}

// Game adapts ebiten's Update/Draw/Layout loop to the engine. Ebiten calls
// all three on one goroutine. Layout reports size changes, Update forwards
// them with pointer movement, and Draw runs the pending frame.
type Game struct {
	cfg    Config
	events *host.Listeners
	frames *host.FrameQueue
	engine *engine.Engine
	log    *logging.Logger

	outsideW, outsideH int
	sizeChanged        bool
	backingW, backingH int
	scale              float64

	cursorX, cursorY int
	cursorSeen       bool

	screen *ebiten.Image
	epoch  time.Time
	quit   atomic.Bool
}

// New creates a game with an idle engine.
func New(cfg Config, opts engine.Options) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		events: host.NewListeners(),
		frames: &host.FrameQueue{},
		log:    opts.Logger,
		scale:  1,
		epoch:  time.Now(),
	}
	if g.log == nil {
		g.log = logging.Discard()
	}

	e, err := engine.New(engine.Host{
		Viewport:  g,
		Surface:   g,
		Scheduler: g.frames,
		Events:    g.events,
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	g.engine = e
	return g, nil
}

// Size implements surface.Viewport.
func (g *Game) Size() (w, h float64) {
	return float64(g.outsideW), float64(g.outsideH)
}

// DevicePixelRatio implements surface.Viewport.
func (g *Game) DevicePixelRatio() float64 {
	if g.cfg.Ratio > 0 {
		return g.cfg.Ratio
	}
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

// Resize implements surface.Surface. The backing size becomes the screen
// size returned from Layout.
func (g *Game) Resize(backingW, backingH int, _, _ float64) {
	g.backingW, g.backingH = backingW, backingH
	g.scale = 1
}

// Context implements surface.Surface. Draw calls outside Draw are dropped.
func (g *Game) Context() (render.Context, bool) {
	return g, true
}

// SetScale implements render.Context.
func (g *Game) SetScale(s float64) {
	g.scale = s
}

// ClearRect implements render.Context.
func (g *Game) ClearRect(x, y, w, h float64) {
	if g.screen == nil {
		return
	}
	s := g.scale
	bg := g.cfg.Background
	vector.DrawFilledRect(g.screen, float32(x*s), float32(y*s), float32(w*s), float32(h*s),
		color.RGBA{bg.R, bg.G, bg.B, 255}, false)
}

// FillGlow implements render.Context.
func (g *Game) FillGlow(gl render.Glow) {
	if g.screen == nil {
		return
	}
	s := g.scale
	for _, r := range rings(gl) {
		vector.DrawFilledCircle(g.screen, float32(gl.X*s), float32(gl.Y*s), float32(r.radius*s),
			color.NRGBA{r.color.R, r.color.G, r.color.B, uint8(r.alpha*255 + 0.5)}, true)
	}
}

type ring struct {
	radius float64
	color  render.RGB
	alpha  float64
}

// rings splits a glow into disks drawn outermost first. Each disk's alpha is
// chosen so that the composite over the disks beneath it matches the
// gradient at the middle of its band.
func rings(gl render.Glow) []ring {
	out := make([]ring, 0, glowRings)
	step := gl.FillRadius / glowRings
	prev := 0.0
	for k := 0; k < glowRings && prev < 1; k++ {
		outer := gl.FillRadius - float64(k)*step
		col, a := gl.At(outer - step/2)
		if a <= prev {
			continue
		}
		out = append(out, ring{
			radius: outer,
			color:  col,
			alpha:  (a - prev) / (1 - prev),
		})
		prev = a
	}
	return out
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.outsideW || outsideHeight != g.outsideH {
		g.outsideW, g.outsideH = outsideWidth, outsideHeight
		g.sizeChanged = true
	}
	if g.backingW > 0 && g.backingH > 0 {
		return g.backingW, g.backingH
	}
	return outsideWidth, outsideHeight
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	quit := g.quit.Load() ||
		ebiten.IsKeyPressed(ebiten.KeyEscape) ||
		ebiten.IsKeyPressed(ebiten.KeyQ)
	x, y := ebiten.CursorPosition()
	return g.step(x, y, quit)
}

// step applies one Update's worth of input.
func (g *Game) step(cursorX, cursorY int, quit bool) error {
	if quit {
		g.engine.Dispose()
		return ebiten.Termination
	}

	if g.sizeChanged {
		g.sizeChanged = false
		if g.engine.Phase() == engine.PhaseIdle {
			if err := g.engine.Start(); err != nil {
				return fmt.Errorf("start engine: %w", err)
			}
		} else {
			g.events.Resize()
		}
		g.log.Debug("window %dx%d, backing %dx%d", g.outsideW, g.outsideH, g.backingW, g.backingH)
	}

	if !g.cursorSeen || cursorX != g.cursorX || cursorY != g.cursorY {
		g.cursorX, g.cursorY, g.cursorSeen = cursorX, cursorY, true
		if g.scale > 0 {
			g.events.Move(float64(cursorX)/g.scale, float64(cursorY)/g.scale)
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.screen = screen
	defer func() { g.screen = nil }()
	g.frames.Run(float64(time.Since(g.epoch)) / float64(time.Millisecond))
}

// Engine returns the hosted engine.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// Run opens the window and blocks until it closes or ctx is done.
func Run(ctx context.Context, g *Game) error {
	defer g.engine.Dispose()

	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	stop := context.AfterFunc(ctx, func() { g.quit.Store(true) })
	defer stop()

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
