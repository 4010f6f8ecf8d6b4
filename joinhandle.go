package frameasync

const (
	cellEmpty = iota
	cellFilled
	cellTaken
)

// A JoinHandle is a [Future] that completes with the output of a spawned
// task.
//
// A JoinHandle remembers only the latest [Waker] it was polled with, so it
// should have at most one awaiter at a time. Once it has completed, it must
// not be polled again.
//
// Dropping a JoinHandle does not stop the task. Spawned tasks are detached
// and always run to completion; only the ability to observe the output is
// lost.
type JoinHandle[T any] struct {
	value  T
	state  uint8
	waiter Waker
}

// Poll implements the [Future] interface.
func (h *JoinHandle[T]) Poll(cx *Context) Poll[T] {
	switch h.state {
	case cellFilled:
		v := h.value
		var zero T
		h.value = zero
		h.state = cellTaken
		h.waiter = Waker{}
		return Ready(v)
	case cellTaken:
		panic("frameasync: JoinHandle polled after completion")
	}
	h.waiter = cx.Waker()
	return Pending[T]()
}

// Done reports whether the task has completed.
func (h *JoinHandle[T]) Done() bool {
	return h.state != cellEmpty
}

func (h *JoinHandle[T]) fill(v T) {
	if h.state != cellEmpty {
		panic("frameasync: internal error: JoinHandle filled twice")
	}
	h.value = v
	h.state = cellFilled
	w := h.waiter
	h.waiter = Waker{}
	w.Wake()
}
