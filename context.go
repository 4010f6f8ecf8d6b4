package frameasync

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx that carries e.
//
// This is for hosts that would rather not pass an [Executor] around
// explicitly. Inside a task, [Context.Executor] is usually handier.
func NewContext(ctx context.Context, e *Executor) context.Context {
	return context.WithValue(ctx, contextKey{}, e)
}

// FromContext returns the [Executor] that ctx carries.
// It panics with [ErrNoExecutor] if there is none.
func FromContext(ctx context.Context) *Executor {
	e, _ := ctx.Value(contextKey{}).(*Executor)
	if e == nil {
		panic(ErrNoExecutor)
	}
	return e
}
