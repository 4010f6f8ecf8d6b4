package frameasync

// NextFrame returns a future that completes at the start of the next
// [Executor.Step] after the one it is first polled in.
//
// Awaiting NextFrame N times in a row takes N+1 steps to get through,
// counting the step that first polls the task.
func (e *Executor) NextFrame() *NextFrameFuture {
	e.mustBeOpen()
	return &NextFrameFuture{e: e}
}

// NextFrameFuture is the future returned by [Executor.NextFrame].
type NextFrameFuture struct {
	e          *Executor
	frame      uint64
	slot       int
	registered bool
}

// Poll implements the [Future] interface.
func (f *NextFrameFuture) Poll(cx *Context) Poll[struct{}] {
	e := f.e
	e.mustBeOpen()

	if !f.registered {
		f.registered = true
		f.frame = e.frame
		f.slot = len(e.nextFrame)
		e.nextFrame = append(e.nextFrame, cx.Waker())
		return Pending[struct{}]()
	}

	if e.frame != f.frame {
		return Ready(struct{}{})
	}

	e.nextFrame[f.slot] = cx.Waker()

	return Pending[struct{}]()
}
