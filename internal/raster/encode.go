package raster

import (
	"errors"
	"fmt"
	"image/png"
	"io"
)

// ErrEmpty is returned when encoding a canvas with no backing store.
var ErrEmpty = errors.New("canvas has no backing store")

// WritePNG encodes the backing store.
func (c *Canvas) WritePNG(w io.Writer) error {
	if c.img == nil || c.img.Rect.Empty() {
		return ErrEmpty
	}
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
