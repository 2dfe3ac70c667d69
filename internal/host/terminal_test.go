package host

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-starfield/internal/engine"
	"github.com/litescript/ls-starfield/internal/render"
)

func newTestTerminal(t *testing.T) *Terminal {
	t.Helper()
	term, err := NewTerminal(TerminalConfig{CellW: 8, CellH: 16, Ratio: 1, Background: render.RGB{B: 20}}, engine.Options{})
	require.NoError(t, err)
	return term
}

func TestTerminal_StartsOnFirstResize(t *testing.T) {
	term := newTestTerminal(t)
	assert.Equal(t, engine.PhaseIdle, term.Engine.Phase())

	require.NoError(t, term.Resize(100, 30))
	assert.Equal(t, engine.PhaseRunning, term.Engine.Phase())
	assert.Equal(t, 800, term.Canvas.Image().Bounds().Dx())
	assert.Equal(t, 480, term.Canvas.Image().Bounds().Dy())
	assert.True(t, term.Frames.Pending())

	require.NoError(t, term.Resize(250, 60))
	assert.Equal(t, 2000.0, term.Engine.Surface().Width)
	assert.Len(t, term.Engine.Field(), 240) // 2000*960/8000
}

func TestTerminal_ResizeReshapesGridBeforeFrame(t *testing.T) {
	term := newTestTerminal(t)
	require.NoError(t, term.Resize(40, 12))
	require.True(t, term.Frame(time.Now()))

	require.NoError(t, term.Resize(40, 9))
	g := term.Grid()
	assert.Equal(t, 40, g.Cols)
	assert.Equal(t, 9, g.Rows)
	assert.Len(t, g.Cells, 40*9)
}

func TestTerminal_FrameSamplesGrid(t *testing.T) {
	term := newTestTerminal(t)
	assert.False(t, term.Frame(time.Now()), "no frame before start")

	require.NoError(t, term.Resize(40, 12))
	require.True(t, term.Frame(time.Now()))

	g := term.Grid()
	assert.Equal(t, 40, g.Cols)
	assert.Equal(t, 12, g.Rows)
	assert.Equal(t, uint64(1), term.Engine.Frames())
}

func TestTerminal_PointerUsesCellCenter(t *testing.T) {
	term := newTestTerminal(t)
	require.NoError(t, term.Resize(40, 12))

	term.PointerCell(2, 3)
	x, y := term.Engine.Pointer()
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 56.0, y)
}

func TestTerminal_Close(t *testing.T) {
	term := newTestTerminal(t)
	require.NoError(t, term.Resize(40, 12))
	term.Close()

	assert.Equal(t, engine.PhaseDisposed, term.Engine.Phase())
	assert.Zero(t, term.Events.Count())
	assert.False(t, term.Frame(time.Now()))
	assert.ErrorIs(t, term.Resize(10, 10), engine.ErrDisposed)
}
