package host

// FixedViewport is a viewport with explicit logical size.
type FixedViewport struct {
	W, H  float64
	Ratio float64
}

func (v *FixedViewport) Size() (w, h float64) {
	return v.W, v.H
}

func (v *FixedViewport) DevicePixelRatio() float64 {
	return v.Ratio
}

// CellViewport maps a terminal grid onto logical pixels. Each cell covers
// CellW×CellH logical pixels.
type CellViewport struct {
	Cols, Rows   int
	CellW, CellH float64
	Ratio        float64
}

// Size returns the logical size of the grid.
func (v *CellViewport) Size() (w, h float64) {
	return float64(v.Cols) * v.CellW, float64(v.Rows) * v.CellH
}

// DevicePixelRatio returns the configured ratio.
func (v *CellViewport) DevicePixelRatio() float64 {
	return v.Ratio
}

// CellCenter returns the logical position of the center of a cell.
func (v *CellViewport) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * v.CellW, (float64(row) + 0.5) * v.CellH
}
