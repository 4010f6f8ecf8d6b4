package frameasync

import "iter"

// A Coroutine runs the body of an [Async] future.
//
// The body runs on its own stack, but never in parallel with anything else:
// control passes to the body when the future is polled, and back to the
// poller when the body awaits a future that is not ready, or returns.
type Coroutine struct {
	cx    *Context
	yield func(struct{}) bool
}

// Context returns the [Context] of the poll in progress.
func (co *Coroutine) Context() *Context {
	if co.cx == nil {
		panic("frameasync: coroutine is not being polled")
	}
	return co.cx
}

// Executor returns the [Executor] polling co.
func (co *Coroutine) Executor() *Executor {
	return co.Context().Executor()
}

// unwind is what Await panics with to unwind a dropped body.
type unwind struct{}

// Async returns a [Future] that runs body, and completes with what body
// returns. Inside body, [Await] suspends until a future completes.
//
//	h := frameasync.Spawn(e, frameasync.Async(func(co *frameasync.Coroutine) int {
//		frameasync.Await(co, e.Delay(time.Second))
//		return 42
//	}))
//
// The returned future implements [Dropper]. Dropping it before completion
// unwinds body: the pending Await panics, running body's deferred calls,
// and the panic is absorbed. Body must not recover it.
//
// Caveat: body runs on a goroutine (which is stackful) handed over through
// [iter.Pull]. The goroutine leaks if the future neither completes nor is
// dropped; [Executor.Close] drops every unfinished task.
func Async[T any](body func(co *Coroutine) T) Future[T] {
	if body == nil {
		panic("frameasync: Async(nil)")
	}
	return &asyncFuture[T]{body: body}
}

type asyncFuture[T any] struct {
	body    func(co *Coroutine) T
	co      Coroutine
	next    func() (struct{}, bool)
	stop    func()
	value   T
	done    bool
	dropped bool
}

func (f *asyncFuture[T]) Poll(cx *Context) Poll[T] {
	switch {
	case f.done:
		return Ready(f.value)
	case f.dropped:
		panic("frameasync: future polled after being dropped")
	}

	if f.next == nil {
		f.next, f.stop = iter.Pull(f.run)
	}

	f.co.cx = cx
	_, yielded := f.next()
	f.co.cx = nil

	if yielded {
		return Pending[T]()
	}

	f.done = true
	f.next, f.stop = nil, nil

	return Ready(f.value)
}

func (f *asyncFuture[T]) run(yield func(struct{}) bool) {
	f.co.yield = yield
	defer func() {
		if !f.dropped {
			return
		}
		if v := recover(); v != nil {
			if _, ok := v.(unwind); !ok {
				panic(v)
			}
		}
	}()
	f.value = f.body(&f.co)
}

func (f *asyncFuture[T]) Drop() {
	if f.done || f.dropped {
		return
	}
	f.dropped = true
	if stop := f.stop; stop != nil {
		f.next, f.stop = nil, nil
		stop()
	}
}

// Await polls f and, if f is not ready, suspends the body of the [Async]
// future that co runs until f's waker is woken, then polls f again.
// Await returns f's output.
//
// Await must only be called from within that body.
func Await[T any](co *Coroutine, f Future[T]) T {
	for {
		if v, ok := f.Poll(co.Context()).Value(); ok {
			return v
		}
		if !co.yield(struct{}{}) {
			drop(f)
			panic(unwind{})
		}
	}
}
