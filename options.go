package frameasync

import (
	"time"

	"github.com/joeycumines/logiface"
)

// Option configures an [Executor] created by [New].
type Option interface {
	apply(e *Executor)
}

type optionFunc func(e *Executor)

func (f optionFunc) apply(e *Executor) { f(e) }

// WithLogger sets the logger an [Executor] reports to.
// Spawns, completions, timer firings and id regenerations are logged at
// debug level; task panics are logged at error level.
// A nil logger disables logging, which is the default.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return optionFunc(func(e *Executor) {
		e.logger = logger
	})
}

// WithTaskIDs replaces the generator that task ids are drawn from.
// The default generator counts up from 1.
//
// An id that is zero, or that is held by another task in the ready queue
// or the wait table, is discarded and another one is drawn, so next must
// eventually return a fresh id.
func WithTaskIDs(next func() TaskID) Option {
	return optionFunc(func(e *Executor) {
		e.ids = next
	})
}

// WithStartTime sets the virtual time an [Executor] starts at.
func WithStartTime(t time.Duration) Option {
	return optionFunc(func(e *Executor) {
		e.now = t
	})
}
