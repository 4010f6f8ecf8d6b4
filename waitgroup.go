package frameasync

// A WaitGroup is a [Signal] with a counter.
//
// Calling the Add or Done method of a WaitGroup updates the counter and,
// when the counter becomes zero, wakes any task awaiting the WaitGroup.
//
// A WaitGroup must only be used by the tasks of one [Executor], or by its
// host between steps.
type WaitGroup struct {
	sig Signal
	n   int
}

// Add adds delta, which may be negative, to the [WaitGroup] counter.
// If the counter becomes zero, Add wakes any task awaiting wg.
// If the counter is negative, Add panics.
func (wg *WaitGroup) Add(delta int) {
	if wg.n >= 0 {
		wg.n += delta
	}
	if wg.n < 0 {
		panic("frameasync(WaitGroup): negative counter")
	}
	if wg.n == 0 && delta != 0 {
		wg.sig.Notify()
	}
}

// Done decrements the [WaitGroup] counter by one.
func (wg *WaitGroup) Done() {
	wg.Add(-1)
}

// Wait returns a future that completes once the [WaitGroup] counter is
// zero.
func (wg *WaitGroup) Wait() Future[struct{}] {
	return &waitGroupFuture{wg: wg}
}

type waitGroupFuture struct {
	wg *WaitGroup
	f  *SignalFuture
}

func (f *waitGroupFuture) Poll(cx *Context) Poll[struct{}] {
	for f.wg.n != 0 {
		if f.f == nil {
			f.f = f.wg.sig.Wait()
		}
		if !f.f.Poll(cx).IsReady() {
			return Pending[struct{}]()
		}
		f.f = nil
	}
	return Ready(struct{}{})
}
