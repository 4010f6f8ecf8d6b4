package main

import (
	"context"
	"sync"
	"time"

	"github.com/b97tsk/frameasync"
	"github.com/joeycumines/logiface"
)

// A doorbell is a future that completes once rung, from any goroutine.
type doorbell struct {
	mu    sync.Mutex
	rung  bool
	waker frameasync.Waker
}

func (d *doorbell) Poll(cx *frameasync.Context) frameasync.Poll[struct{}] {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.rung {
		return frameasync.Ready(struct{}{})
	}
	d.waker = cx.Waker()
	return frameasync.Pending[struct{}]()
}

func (d *doorbell) Ring() {
	d.mu.Lock()
	d.rung = true
	w := d.waker
	d.mu.Unlock()
	w.Wake()
}

// ringAfter rings d after wall-clock duration t, unless ctx is done first.
func (d *doorbell) ringAfter(ctx context.Context, t time.Duration) error {
	timer := time.NewTimer(t)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
		d.Ring()
	}
	return nil
}

// scene returns the demo's top-level task, which runs on the executor that
// ctx carries.
//
// It loads, has cfg.Actors actors blink cfg.Blinks times each, and then
// waits for either bell or cfg.Timeout, whichever comes first.
func scene(ctx context.Context, cfg sceneConfig, bell *doorbell, logger *logiface.Logger[logiface.Event]) frameasync.Future[string] {
	e := frameasync.FromContext(ctx)

	return frameasync.Async(func(co *frameasync.Coroutine) string {
		loader := frameasync.Spawn(e, frameasync.Async(func(co *frameasync.Coroutine) int {
			frameasync.Await(co, e.Delay(cfg.LoadTime))
			return cfg.Actors
		}))

		logger.Info().
			Uint64(`frame`, e.Frame()).
			Log(`loading`)

		n := frameasync.Await(co, loader)

		logger.Info().
			Uint64(`frame`, e.Frame()).
			Dur(`now`, e.Now()).
			Int(`actors`, n).
			Log(`loaded`)

		actors := make([]frameasync.Future[int], n)
		for i := range actors {
			actors[i] = frameasync.Spawn(e, actor(e, i, cfg, logger))
		}

		total := 0
		for _, blinks := range frameasync.Await(co, frameasync.Join(actors...)) {
			total += blinks
		}

		logger.Info().
			Uint64(`frame`, e.Frame()).
			Int(`blinks`, total).
			Log(`actors done`)

		s := frameasync.Await(co, frameasync.Select(
			frameasync.Map[struct{}](bell, func(struct{}) string { return `doorbell` }),
			frameasync.Map[struct{}](e.Delay(cfg.Timeout), func(struct{}) string { return `timeout` }),
		))

		logger.Info().
			Uint64(`frame`, e.Frame()).
			Dur(`now`, e.Now()).
			Str(`by`, s.Value).
			Log(`scene finished`)

		return s.Value
	})
}

// actor blinks cfg.Blinks times, cfg.Interval apart, starting a frame
// later for each index so that actors fall out of step.
func actor(e *frameasync.Executor, index int, cfg sceneConfig, logger *logiface.Logger[logiface.Event]) frameasync.Future[int] {
	return frameasync.Async(func(co *frameasync.Coroutine) int {
		for range index {
			frameasync.Await(co, e.NextFrame())
		}
		for i := range cfg.Blinks {
			logger.Debug().
				Int(`actor`, index).
				Int(`blink`, i).
				Uint64(`frame`, e.Frame()).
				Log(`blink`)
			frameasync.Await(co, e.Delay(cfg.Interval))
		}
		return cfg.Blinks
	})
}
