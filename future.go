package frameasync

// Poll is the result of polling a [Future]: either a value, or nothing yet.
type Poll[T any] struct {
	value T
	ready bool
}

// Ready returns a [Poll] that carries v.
func Ready[T any](v T) Poll[T] {
	return Poll[T]{value: v, ready: true}
}

// Pending returns a [Poll] that carries nothing.
func Pending[T any]() Poll[T] {
	return Poll[T]{}
}

// IsReady reports whether p carries a value.
func (p Poll[T]) IsReady() bool {
	return p.ready
}

// Value returns the value that p carries and true, or the zero value and
// false if p is pending.
func (p Poll[T]) Value() (T, bool) {
	return p.value, p.ready
}

// A Future represents a computation that may not have finished yet.
//
// Futures are inert. An [Executor] polls a future when the task driving it
// is ready to make progress. If Poll returns a pending [Poll], the future
// must have arranged for cx.Waker() to be woken some time later, otherwise
// the task driving it sleeps forever.
//
// Poll must never block. A future may be polled again before it wakes the
// waker it was given (for example, when it is one branch of a [Select]);
// such spurious polls must be harmless.
//
// Once a future has returned a ready [Poll], it should not be polled again.
type Future[T any] interface {
	Poll(cx *Context) Poll[T]
}

// A FutureFunc is a func(*Context) Poll[T] that implements the [Future]
// interface.
type FutureFunc[T any] func(cx *Context) Poll[T]

// Poll implements the [Future] interface.
func (f FutureFunc[T]) Poll(cx *Context) Poll[T] { return f(cx) }

// A Dropper is a [Future] that holds on to something that must be released
// when the future is abandoned before completion.
//
// [Select] drops the branches that lose, and [Executor.Close] drops every
// task that has not yet completed.
type Dropper interface {
	Drop()
}

func drop(v any) {
	if d, ok := v.(Dropper); ok {
		d.Drop()
	}
}

// Context is what a [Future] is given when polled.
type Context struct {
	executor *Executor
	waker    Waker
}

// Waker returns the [Waker] of the task that is being polled.
func (cx *Context) Waker() Waker {
	return cx.waker
}

// Executor returns the [Executor] that is polling.
func (cx *Context) Executor() *Executor {
	return cx.executor
}

// Map returns a [Future] that completes with fn(v) when f completes with v.
func Map[T, U any](f Future[T], fn func(v T) U) Future[U] {
	return &mapFuture[T, U]{f: f, fn: fn}
}

type mapFuture[T, U any] struct {
	f  Future[T]
	fn func(v T) U
}

func (m *mapFuture[T, U]) Poll(cx *Context) Poll[U] {
	if v, ok := m.f.Poll(cx).Value(); ok {
		return Ready(m.fn(v))
	}
	return Pending[U]()
}

func (m *mapFuture[T, U]) Drop() {
	drop(m.f)
}
