package frameasync

import "errors"

var (
	// ErrClosed is the value the package panics with when an [Executor], or
	// a future derived from it, is used after [Executor.Close].
	ErrClosed = errors.New("frameasync: executor closed")

	// ErrNoExecutor is the value [FromContext] panics with when the context
	// carries no [Executor].
	ErrNoExecutor = errors.New("frameasync: no executor in context")
)
