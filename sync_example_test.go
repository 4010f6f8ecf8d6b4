package frameasync_test

import (
	"fmt"
	"time"

	"github.com/b97tsk/frameasync"
)

func ExampleWaitGroup() {
	e := frameasync.New()

	var myState struct {
		wg     frameasync.WaitGroup
		v1, v2 int
	}

	myState.wg.Add(2)

	frameasync.Spawn(e, frameasync.Async(func(co *frameasync.Coroutine) struct{} {
		frameasync.Await(co, e.Delay(500*time.Millisecond)) // Heavy work #1 here.
		myState.v1 = 15
		myState.wg.Done()
		return struct{}{}
	}))

	frameasync.Spawn(e, frameasync.Async(func(co *frameasync.Coroutine) struct{} {
		frameasync.Await(co, e.Delay(300*time.Millisecond)) // Heavy work #2 here.
		myState.v2 = 27
		myState.wg.Done()
		return struct{}{}
	}))

	frameasync.Spawn(e, frameasync.Async(func(co *frameasync.Coroutine) struct{} {
		frameasync.Await(co, myState.wg.Wait())
		fmt.Println("v1 + v2 =", myState.v1+myState.v2, "at", e.Now())
		return struct{}{}
	}))

	for e.Step(100*time.Millisecond) != frameasync.Completed {
	}

	// Output:
	// v1 + v2 = 42 at 600ms
}

func ExampleSemaphore() {
	e := frameasync.New()

	sema := frameasync.NewSemaphore(2) // At most 2 at a time.

	for i := range 4 {
		frameasync.Spawn(e, frameasync.Async(func(co *frameasync.Coroutine) struct{} {
			frameasync.Await(co, sema.Acquire(1))
			defer sema.Release(1)
			fmt.Println("start", i, "at", e.Now())
			frameasync.Await(co, e.Delay(100*time.Millisecond))
			fmt.Println("done", i, "at", e.Now())
			return struct{}{}
		}))
	}

	for e.Step(50*time.Millisecond) != frameasync.Completed {
	}

	// Output:
	// start 0 at 50ms
	// start 1 at 50ms
	// done 0 at 150ms
	// done 1 at 150ms
	// start 2 at 150ms
	// start 3 at 150ms
	// done 2 at 250ms
	// done 3 at 250ms
}
