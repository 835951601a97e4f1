// Package frame provides a cooperative per-frame callback queue.
//
// The host pumps the queue once per display refresh with Flush. Callbacks
// requested during a flush run on the next one, so a callback that
// re-requests itself yields back to the host after every frame.
package frame

// ID identifies a pending frame callback. The zero ID is never issued.
type ID uint64

// Scheduler registers and cancels frame callbacks.
type Scheduler interface {
	RequestFrame(fn func()) ID
	CancelFrame(id ID)
}

type entry struct {
	id ID
	fn func()
}

// Queue is a single-threaded Scheduler. It is not safe for concurrent use;
// all calls belong on the UI thread.
type Queue struct {
	last    ID
	pending []entry

	// live holds IDs of the batch being flushed that are still allowed to run.
	live map[ID]struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// RequestFrame schedules fn for the next Flush.
func (q *Queue) RequestFrame(fn func()) ID {
	q.last++
	q.pending = append(q.pending, entry{id: q.last, fn: fn})
	return q.last
}

// CancelFrame removes a pending callback. It takes effect immediately, even
// for a callback later in the batch currently being flushed. Unknown or
// already-run IDs are ignored.
func (q *Queue) CancelFrame(id ID) {
	for i, e := range q.pending {
		if e.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			break
		}
	}
	delete(q.live, id)
}

// Flush runs every callback that was pending when Flush was called and
// returns how many ran.
func (q *Queue) Flush() int {
	batch := q.pending
	if len(batch) == 0 {
		return 0
	}
	q.pending = nil
	q.live = make(map[ID]struct{}, len(batch))
	for _, e := range batch {
		q.live[e.id] = struct{}{}
	}

	ran := 0
	for _, e := range batch {
		if _, ok := q.live[e.id]; !ok {
			continue
		}
		delete(q.live, e.id)
		e.fn()
		ran++
	}
	q.live = nil
	return ran
}

// Pending returns the number of callbacks waiting for the next Flush.
func (q *Queue) Pending() int {
	return len(q.pending)
}
