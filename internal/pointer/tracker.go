// Package pointer records the last observed pointer position.
package pointer

// Tracker holds the latest pointer coordinates in logical pixels.
// The zero value reports (0, 0) until the first move.
type Tracker struct {
	x, y float64
}

// Move records a new position. No smoothing is applied.
func (t *Tracker) Move(x, y float64) {
	t.x = x
	t.y = y
}

// Position returns the last observed position.
func (t *Tracker) Position() (x, y float64) {
	return t.x, t.y
}
