package frameasync_test

import (
	"testing"

	"github.com/b97tsk/frameasync"
)

func TestSemaphore(t *testing.T) {
	t.Run("Bug-1", func(t *testing.T) {
		e := frameasync.New()

		sema := frameasync.NewSemaphore(1)

		frameasync.Spawn(e, frameasync.Select(
			frameasync.Async(func(co *frameasync.Coroutine) struct{} {
				frameasync.Await(co, sema.Acquire(1))
				frameasync.Await(co, sema.Acquire(1))
				return struct{}{}
			}),
			frameasync.Async(func(co *frameasync.Coroutine) struct{} {
				sema.Release(1)
				return struct{}{}
			}),
		))

		e.Step(0)

		if !sema.TryAcquire(1) {
			t.Fatal("TryAcquire did not succeed when there are no waiters.")
		}
	})
	t.Run("Bug-2", func(t *testing.T) {
		e := frameasync.New()

		sema := frameasync.NewSemaphore(10)

		var sig frameasync.Signal

		frameasync.Spawn(e, frameasync.Select(
			sig.Wait(),
			frameasync.Async(func(co *frameasync.Coroutine) struct{} {
				frameasync.Await(co, sema.Acquire(1))
				frameasync.Await(co, sema.Acquire(10))
				return struct{}{}
			}),
		))

		e.Step(0)

		if sema.TryAcquire(1) {
			t.Fatal("TryAcquire should not succeed when there are waiters.")
		}

		sig.Notify()
		e.Step(0)

		if !sema.TryAcquire(1) {
			t.Fatal("TryAcquire did not succeed when there are no waiters.")
		}
	})
	t.Run("OverRelease", func(t *testing.T) {
		sema := frameasync.NewSemaphore(1)

		defer func() {
			if recover() == nil {
				t.Fatal("releasing more than held did not panic")
			}
		}()

		sema.Release(1)
	})
}
