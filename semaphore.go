package frameasync

import "slices"

// Semaphore provides a way to bound access to a resource among tasks.
// The callers can request access with a given weight.
//
// Waiters are served in FIFO order: a request that does not fit holds up
// every request made after it, even ones that would fit.
//
// A Semaphore must only be used by the tasks of one [Executor], or by its
// host between steps.
type Semaphore struct {
	size    int64
	cur     int64
	waiters []*semaWaiter
}

type semaWaiter struct {
	n        int64
	waker    Waker
	acquired bool
}

// NewSemaphore creates a new weighted semaphore with the given maximum
// combined weight.
func NewSemaphore(n int64) *Semaphore {
	return &Semaphore{size: n}
}

// Acquire returns a future that completes once a weight of n is acquired
// from s.
//
// The returned future implements [Dropper]. Dropping it cancels the
// request, or gives the weight back if it was acquired but never observed.
// A request for more than the size of s never completes.
func (s *Semaphore) Acquire(n int64) *AcquireFuture {
	if n < 0 {
		panic("frameasync(Semaphore): negative weight")
	}
	return &AcquireFuture{s: s, n: n}
}

// TryAcquire acquires a weight of n from s without blocking.
// It reports whether it succeeded; on failure s is left unchanged.
func (s *Semaphore) TryAcquire(n int64) bool {
	if n < 0 {
		panic("frameasync(Semaphore): negative weight")
	}
	if len(s.waiters) != 0 || s.size-s.cur < n {
		return false
	}
	s.cur += n
	return true
}

// Release releases the semaphore with a weight of n.
func (s *Semaphore) Release(n int64) {
	if n < 0 {
		panic("frameasync(Semaphore): negative weight")
	}
	if s.cur >= 0 {
		s.cur -= n
	}
	if s.cur < 0 {
		panic("frameasync(Semaphore): released more than held")
	}
	s.notifyWaiters()
}

func (s *Semaphore) notifyWaiters() {
	i := 0
	for ; i < len(s.waiters); i++ {
		w := s.waiters[i]
		if s.size-s.cur < w.n {
			break
		}
		s.cur += w.n
		w.acquired = true
		w.waker.Wake()
	}
	s.waiters = slices.Delete(s.waiters, 0, i)
}

func (s *Semaphore) removeWaiter(w *semaWaiter) {
	if i := slices.Index(s.waiters, w); i != -1 {
		s.waiters = slices.Delete(s.waiters, i, i+1)
		if i == 0 {
			s.notifyWaiters()
		}
	}
}

// AcquireFuture is the future returned by [Semaphore.Acquire].
type AcquireFuture struct {
	s     *Semaphore
	n     int64
	w     *semaWaiter
	taken bool
}

// Poll implements the [Future] interface.
func (f *AcquireFuture) Poll(cx *Context) Poll[struct{}] {
	switch {
	case f.taken:
		return Ready(struct{}{})
	case f.w != nil:
		if f.w.acquired {
			f.taken = true
			f.w = nil
			return Ready(struct{}{})
		}
		f.w.waker = cx.Waker()
		return Pending[struct{}]()
	}

	s := f.s

	if s.TryAcquire(f.n) {
		f.taken = true
		return Ready(struct{}{})
	}

	if f.n > s.size {
		return Pending[struct{}]() // Impossible to succeed.
	}

	f.w = &semaWaiter{n: f.n, waker: cx.Waker()}
	s.waiters = append(s.waiters, f.w)

	return Pending[struct{}]()
}

// Drop implements the [Dropper] interface.
func (f *AcquireFuture) Drop() {
	w := f.w
	if w == nil {
		return
	}
	f.w = nil
	if w.acquired {
		f.s.Release(f.n)
		return
	}
	f.s.removeWaiter(w)
}
