package frameasync

// A Signal wakes every task awaiting it whenever it is notified.
//
// A Signal must only be used by the tasks of one [Executor], or by its host
// between steps. The zero value is ready to use.
type Signal struct {
	waiters []Waker
	gen     uint64
}

// Wait returns a future that completes once s is notified after the future
// is first polled. Notifications that happen before that are missed.
func (s *Signal) Wait() *SignalFuture {
	return &SignalFuture{s: s}
}

// Notify wakes every task awaiting s.
func (s *Signal) Notify() {
	s.gen++
	waiters := s.waiters
	s.waiters = nil
	for _, w := range waiters {
		w.Wake()
	}
}

// SignalFuture is the future returned by [Signal.Wait].
type SignalFuture struct {
	s          *Signal
	gen        uint64
	slot       int
	registered bool
}

// Poll implements the [Future] interface.
func (f *SignalFuture) Poll(cx *Context) Poll[struct{}] {
	s := f.s

	if !f.registered {
		f.registered = true
		f.gen = s.gen
		f.slot = len(s.waiters)
		s.waiters = append(s.waiters, cx.Waker())
		return Pending[struct{}]()
	}

	if s.gen != f.gen {
		return Ready(struct{}{})
	}

	s.waiters[f.slot] = cx.Waker()

	return Pending[struct{}]()
}
