package frameasync

import "sync"

// TaskID identifies a task among the tasks that an [Executor] currently
// holds. Ids of completed tasks may be reused.
type TaskID uint64

// A Waker is given to a [Future] when polled. Calling its Wake method asks
// the [Executor] to poll the task again.
//
// Wake only posts the task's id to the executor's wake queue, which the
// executor drains during [Executor.Step]. It is safe to call Wake at any
// time, any number of times, and from any goroutine. Waking a task that is
// not waiting, or that no longer exists, does nothing.
//
// The zero Waker is valid; its Wake method does nothing.
// Wakers are comparable.
type Waker struct {
	q  *wakequeue
	id TaskID
}

// Wake wakes the task that w belongs to.
func (w Waker) Wake() {
	if w.q != nil {
		w.q.push(w.id)
	}
}

// TaskID returns the id of the task that w belongs to.
func (w Waker) TaskID() TaskID {
	return w.id
}

type wakequeue struct {
	mu     sync.Mutex
	ids    []TaskID
	closed bool
}

func (q *wakequeue) push(id TaskID) {
	q.mu.Lock()
	if !q.closed {
		q.ids = append(q.ids, id)
	}
	q.mu.Unlock()
}

// swap hands out the queued ids and takes buf as the new backing storage.
func (q *wakequeue) swap(buf []TaskID) []TaskID {
	q.mu.Lock()
	ids := q.ids
	q.ids = buf[:0]
	q.mu.Unlock()
	return ids
}

func (q *wakequeue) close() {
	q.mu.Lock()
	q.closed = true
	q.ids = nil
	q.mu.Unlock()
}
