package main

import (
	"context"
	"errors"
	"time"

	"github.com/b97tsk/frameasync"
	"github.com/joeycumines/logiface"
)

var errFrameLimit = errors.New("frame limit reached")

// step calls e.Step, turning a panic raised by tasks into an error.
func step(e *frameasync.Executor, dt time.Duration) (r frameasync.StepResult, err error) {
	defer func() {
		if v := recover(); v != nil {
			pe, ok := v.(*frameasync.PanicError)
			if !ok {
				panic(v)
			}
			err = pe
		}
	}()
	return e.Step(dt), nil
}

type frameLoop struct {
	e      *frameasync.Executor
	period time.Duration
	limit  uint64
	fixed  bool
	logger *logiface.Logger[logiface.Event]
}

// run steps l.e once per tick until no task is left waiting, the frame
// limit is reached, a task panics, or ctx is done.
//
// Unless l.fixed is set, each step is passed the wall-clock time elapsed
// since the previous one, so a late frame makes up for lost time.
func (l *frameLoop) run(ctx context.Context) error {
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := l.period
			if !l.fixed {
				dt = now.Sub(last)
			}
			last = now

			r, err := step(l.e, dt)
			if err != nil {
				return err
			}

			l.logger.Trace().
				Uint64(`frame`, l.e.Frame()).
				Dur(`dt`, dt).
				Int(`tasks`, l.e.Len()).
				Log(`frame stepped`)

			if r == frameasync.Completed {
				return nil
			}
			if l.limit != 0 && l.e.Frame() >= l.limit {
				return errFrameLimit
			}
		}
	}
}
