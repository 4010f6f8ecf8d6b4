package frameasync_test

import (
	"slices"
	"testing"

	"github.com/b97tsk/frameasync"
)

func TestSignal(t *testing.T) {
	t.Run("Broadcast", func(t *testing.T) {
		e := frameasync.New()

		var sig frameasync.Signal
		var woken []int

		for i := range 3 {
			frameasync.Spawn(e, frameasync.Async(func(co *frameasync.Coroutine) struct{} {
				frameasync.Await(co, sig.Wait())
				woken = append(woken, i)
				return struct{}{}
			}))
		}

		if e.Step(0) != frameasync.RemainTasks {
			t.Fatal("tasks completed before Notify")
		}

		sig.Notify()

		if e.Step(0) != frameasync.Completed {
			t.Fatal("tasks did not complete after Notify")
		}
		if !slices.Equal(woken, []int{0, 1, 2}) {
			t.Fatalf("woken %v, want [0 1 2]", woken)
		}
	})
	t.Run("Missed", func(t *testing.T) {
		e := frameasync.New()

		var sig frameasync.Signal

		f := sig.Wait()
		sig.Notify() // Before f is polled, so f misses it.
		frameasync.Spawn[struct{}](e, f)

		if e.Step(0) != frameasync.RemainTasks {
			t.Fatal("missed notification completed the future")
		}

		frameasync.SpawnFunc(e, func(cx *frameasync.Context) frameasync.Poll[struct{}] {
			sig.Notify()
			return frameasync.Ready(struct{}{})
		})

		if e.Step(0) != frameasync.Completed {
			t.Fatal("notification from a task was not serviced within the step")
		}
	})
}

func TestWaitGroup(t *testing.T) {
	e := frameasync.New()

	var wg frameasync.WaitGroup

	h := frameasync.Spawn(e, wg.Wait())

	if e.Step(0) != frameasync.Completed || !h.Done() {
		t.Fatal("waiting on a zero counter did not complete at once")
	}

	wg.Add(2)
	h = frameasync.Spawn(e, wg.Wait())
	e.Step(0)
	wg.Done()
	e.Step(0)

	if h.Done() {
		t.Fatal("completed with a non-zero counter")
	}

	wg.Done()
	e.Step(0)

	if !h.Done() {
		t.Fatal("did not complete after the counter became zero")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("negative counter did not panic")
		}
	}()

	wg.Done()
}
