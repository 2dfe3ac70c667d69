package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-starfield/internal/engine"
	"github.com/litescript/ls-starfield/internal/host"
	"github.com/litescript/ls-starfield/internal/raster"
	"github.com/litescript/ls-starfield/internal/render"
	"github.com/litescript/ls-starfield/internal/validate"
)

// CLI flags for headless snapshots
//
//nolint:gochecknoglobals // Cobra flag bindings.
var (
	snapWidth    float64
	snapHeight   float64
	snapRatio    float64
	snapFrames   int
	snapStep     float64
	snapPointer  []float64
	snapOutput   string
	errTTYOutput = errors.New("refusing to write PNG to a terminal; use --out FILE")

	snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "Render frames headless and write the last one as PNG",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
)

//nolint:gochecknoinits // Cobra command wiring.
func init() {
	f := snapshotCmd.Flags()
	f.Float64Var(&snapWidth, "width", 1280, "Logical viewport width")
	f.Float64Var(&snapHeight, "height", 720, "Logical viewport height")
	f.Float64Var(&snapRatio, "ratio", 1, "Device pixel ratio (default: config pixel_ratio, else 1)")
	f.IntVar(&snapFrames, "frames", 1, "Number of frames to render")
	f.Float64Var(&snapStep, "step", 1000.0/60, "Milliseconds between frames")
	f.Float64SliceVar(&snapPointer, "pointer", nil, "Pointer position as x,y (default: none)")
	f.StringVarP(&snapOutput, "out", "o", "starfield.png", "Output file (- for stdout)")
}

// snapshotParams is a headless render request.
type snapshotParams struct {
	Width, Height float64
	Ratio         float64
	Frames        int
	Step          float64
	Pointer       []float64
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	if snapOutput == "-" && term.IsTerminal(int(os.Stdout.Fd())) {
		return errTTYOutput
	}

	opts, err := s.engineOptions()
	if err != nil {
		return err
	}
	bg, err := s.cfg.BackgroundColor()
	if err != nil {
		return err
	}

	ratio := snapRatio
	if !cmd.Flags().Changed("ratio") {
		ratio = s.cfg.Ratio(snapRatio)
	}

	canvas, err := renderSnapshot(snapshotParams{
		Width:   snapWidth,
		Height:  snapHeight,
		Ratio:   ratio,
		Frames:  snapFrames,
		Step:    snapStep,
		Pointer: snapPointer,
	}, bg, opts)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if snapOutput != "-" {
		f, err := os.Create(snapOutput)
		if err != nil {
			return fmt.Errorf("create snapshot file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := canvas.WritePNG(w); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	s.log.Info("wrote %s (%dx%d px)", snapOutput, canvas.Image().Bounds().Dx(), canvas.Image().Bounds().Dy())
	return nil
}

// renderSnapshot drives an engine through p.Frames manual ticks.
func renderSnapshot(p snapshotParams, bg render.RGB, opts engine.Options) (*raster.Canvas, error) {
	if err := validate.Var(p.Frames, "gte=1"); err != nil {
		return nil, fmt.Errorf("invalid frames %d: %w", p.Frames, err)
	}
	if err := validate.Var(p.Ratio, "pixel_ratio"); err != nil {
		return nil, fmt.Errorf("invalid ratio %g: %w", p.Ratio, err)
	}
	if p.Pointer != nil && len(p.Pointer) != 2 {
		return nil, fmt.Errorf("pointer needs x,y, got %v", p.Pointer)
	}

	canvas := raster.New(bg)
	events := host.NewListeners()
	frames := &host.FrameQueue{}
	e, err := engine.New(engine.Host{
		Viewport:  &host.FixedViewport{W: p.Width, H: p.Height, Ratio: p.Ratio},
		Surface:   canvas,
		Scheduler: frames,
		Events:    events,
	}, opts)
	if err != nil {
		return nil, err
	}
	if err := e.Start(); err != nil {
		return nil, err
	}
	defer e.Dispose()

	if p.Pointer != nil {
		events.Move(p.Pointer[0], p.Pointer[1])
	}
	for i := 0; i < p.Frames; i++ {
		frames.Run(float64(i) * p.Step)
	}
	return canvas, nil
}
