package frameasync

import "time"

// Delay returns a future that completes once e's virtual time has advanced
// by at least d from now. The deadline is fixed when Delay is called, not
// when the future is first polled.
//
// Virtual time only advances in [Executor.Step], so a delay completes in
// the first step that reaches or passes its deadline, late by less than one
// step's dt. A delay that is already due completes on its first poll.
func (e *Executor) Delay(d time.Duration) *DelayFuture {
	return e.DelayUntil(e.now + d)
}

// DelayUntil returns a future that completes once e's virtual time reaches
// t.
func (e *Executor) DelayUntil(t time.Duration) *DelayFuture {
	e.mustBeOpen()
	return &DelayFuture{e: e, deadline: t}
}

// DelayFuture is the future returned by [Executor.Delay] and
// [Executor.DelayUntil].
type DelayFuture struct {
	e        *Executor
	deadline time.Duration
	waker    Waker
	armed    bool
}

// Deadline returns the virtual time at which f completes.
func (f *DelayFuture) Deadline() time.Duration {
	return f.deadline
}

// Poll implements the [Future] interface.
func (f *DelayFuture) Poll(cx *Context) Poll[struct{}] {
	e := f.e
	e.mustBeOpen()

	if f.deadline <= e.now {
		return Ready(struct{}{})
	}

	if w := cx.Waker(); !f.armed || f.waker != w {
		f.armed = true
		f.waker = w
		e.timers.Push(timer{when: f.deadline, waker: w})
	}

	return Pending[struct{}]()
}
