package frameasync

// A task drives a spawned [Future] to completion.
//
// A task is either in the ready queue, being polled, or in the wait table.
// It is discarded when its future completes.
type task struct {
	id      TaskID
	job     job
	aliases []TaskID // ids this task had before being renamed
}

// job is a spawned future together with the JoinHandle it reports to.
type job interface {
	// run polls the future once and reports whether it completed.
	run(cx *Context) bool
	drop()
}

type spawned[T any] struct {
	f Future[T]
	h *JoinHandle[T]
}

func (s *spawned[T]) run(cx *Context) bool {
	v, ok := s.f.Poll(cx).Value()
	if !ok {
		return false
	}
	s.f = nil
	s.h.fill(v)
	return true
}

func (s *spawned[T]) drop() {
	if s.f != nil {
		drop(s.f)
		s.f = nil
	}
}
