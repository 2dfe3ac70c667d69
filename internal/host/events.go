package host

import "sort"

// Listeners is an engine.Events registry. Dispatch runs listeners in
// registration order.
type Listeners struct {
	next    int
	resize  map[int]func()
	pointer map[int]func(x, y float64)
}

// NewListeners creates an empty registry.
func NewListeners() *Listeners {
	return &Listeners{
		resize:  make(map[int]func()),
		pointer: make(map[int]func(x, y float64)),
	}
}

// OnResize registers fn for resize events.
func (l *Listeners) OnResize(fn func()) (remove func()) {
	id := l.id()
	l.resize[id] = fn
	return func() { delete(l.resize, id) }
}

// OnPointerMove registers fn for pointer movement.
func (l *Listeners) OnPointerMove(fn func(x, y float64)) (remove func()) {
	id := l.id()
	l.pointer[id] = fn
	return func() { delete(l.pointer, id) }
}

// Resize notifies resize listeners.
func (l *Listeners) Resize() {
	for _, id := range sortedKeys(l.resize) {
		if fn, ok := l.resize[id]; ok {
			fn()
		}
	}
}

// Move notifies pointer listeners.
func (l *Listeners) Move(x, y float64) {
	for _, id := range sortedKeys(l.pointer) {
		if fn, ok := l.pointer[id]; ok {
			fn(x, y)
		}
	}
}

// Count returns the number of registered listeners of both kinds.
func (l *Listeners) Count() int {
	return len(l.resize) + len(l.pointer)
}

func (l *Listeners) id() int {
	l.next++
	return l.next
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
