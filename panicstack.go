package frameasync

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

// panicstack collects panics raised by tasks during one step.
type panicstack []panicitem

type panicitem struct {
	task  TaskID
	value any
	stack []byte
}

func (ps *panicstack) Try(id TaskID, f func()) (ok bool) {
	defer func() {
		if !ok {
			v := recover()
			if v == nil {
				panic("frameasync: frameasync does not support runtime.Goexit()")
			}
			*ps = append(*ps, panicitem{id, v, debug.Stack()})
		}
	}()
	f()
	return true
}

// Repanic empties ps and, if it held anything, panics with a *PanicError
// that carries all of it.
func (ps *panicstack) Repanic() {
	if items := *ps; len(items) != 0 {
		*ps = nil
		panic(&PanicError{items: items})
	}
}

// PanicError is the value [Executor.Step] panics with when one or more
// tasks panicked during that step.
//
// Tasks that panic are discarded; their [JoinHandle]s never complete.
// Other tasks are unaffected.
type PanicError struct {
	items []panicitem
	errs  atomic.Pointer[[]error]
}

// Tasks returns the ids of the tasks that panicked, in the order they did.
func (pe *PanicError) Tasks() []TaskID {
	ids := make([]TaskID, len(pe.items))
	for i, p := range pe.items {
		ids[i] = p.task
	}
	return ids
}

// Values returns the values the tasks panicked with, in the order they did.
func (pe *PanicError) Values() []any {
	values := make([]any, len(pe.items))
	for i, p := range pe.items {
		values[i] = p.value
	}
	return values
}

func (pe *PanicError) Error() string {
	var b strings.Builder
	b.WriteString("frameasync: tasks panicked as follows:")
	for i, p := range pe.items {
		fmt.Fprintf(&b, "\n(%d/%d) task %d panic: %v", i+1, len(pe.items), p.task, p.value)
		if p.stack != nil {
			b.WriteString("\n\n")
			b.Write(p.stack)
		}
	}
	return b.String()
}

// Unwrap returns the panic values that are errors.
func (pe *PanicError) Unwrap() []error {
	if p := pe.errs.Load(); p != nil {
		return *p
	}
	var errs []error
	for _, p := range pe.items {
		if err, ok := p.value.(error); ok {
			errs = append(errs, err)
		}
	}
	pe.errs.Store(&errs)
	return errs
}
