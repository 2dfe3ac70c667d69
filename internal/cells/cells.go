// Package cells converts raster frames into terminal half-block cells.
package cells

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/litescript/ls-starfield/internal/render"
)

// HalfBlock is drawn with Top as foreground and Bottom as background.
const HalfBlock = '▀'

// Cell is one terminal cell covering two vertical samples.
type Cell struct {
	Top, Bottom render.RGB
}

// Grid is a row-major cell buffer.
type Grid struct {
	Cols, Rows int
	Cells      []Cell

	scratch *image.RGBA
}

// At returns the cell at (col, row).
func (g *Grid) At(col, row int) Cell {
	return g.Cells[row*g.Cols+col]
}

// Sample downsamples src into a cols×rows grid using bilinear filtering.
// The grid's buffers are reused across calls of the same size.
func (g *Grid) Sample(src image.Image, cols, rows int) {
	if cols <= 0 || rows <= 0 || src == nil || src.Bounds().Empty() {
		g.Cols, g.Rows, g.Cells = 0, 0, g.Cells[:0]
		return
	}

	target := image.Rect(0, 0, cols, rows*2)
	if g.scratch == nil || g.scratch.Rect != target {
		g.scratch = image.NewRGBA(target)
	}
	xdraw.BiLinear.Scale(g.scratch, target, src, src.Bounds(), xdraw.Src, nil)

	g.Cols, g.Rows = cols, rows
	if cap(g.Cells) < cols*rows {
		g.Cells = make([]Cell, cols*rows)
	}
	g.Cells = g.Cells[:cols*rows]

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := g.scratch.RGBAAt(col, row*2)
			bottom := g.scratch.RGBAAt(col, row*2+1)
			g.Cells[row*cols+col] = Cell{
				Top:    render.RGB{R: top.R, G: top.G, B: top.B},
				Bottom: render.RGB{R: bottom.R, G: bottom.G, B: bottom.B},
			}
		}
	}
}
