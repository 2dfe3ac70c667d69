package host

import "github.com/litescript/ls-starfield/internal/engine"

type frameRequest struct {
	handle engine.FrameHandle
	cb     func(t float64)
}

// FrameQueue is an engine.Scheduler that runs callbacks when the frontend
// calls Run. Callbacks requested during Run wait for the next Run.
type FrameQueue struct {
	next     engine.FrameHandle
	pending  []frameRequest
	requests int
	cancels  int
}

// RequestFrame queues cb for the next Run.
func (q *FrameQueue) RequestFrame(cb func(t float64)) engine.FrameHandle {
	q.next++
	q.pending = append(q.pending, frameRequest{handle: q.next, cb: cb})
	q.requests++
	return q.next
}

// CancelFrame drops a queued callback. Unknown handles are ignored.
func (q *FrameQueue) CancelFrame(h engine.FrameHandle) {
	for i, r := range q.pending {
		if r.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			q.cancels++
			return
		}
	}
}

// Run invokes every callback queued before the call and returns how many ran.
func (q *FrameQueue) Run(t float64) int {
	batch := q.pending
	q.pending = nil
	for _, r := range batch {
		r.cb(t)
	}
	return len(batch)
}

// Pending reports whether a frame is waiting.
func (q *FrameQueue) Pending() bool {
	return len(q.pending) > 0
}

// Stats returns request and cancel counts.
func (q *FrameQueue) Stats() (requests, cancels int) {
	return q.requests, q.cancels
}
