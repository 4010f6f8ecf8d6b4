package frameasync_test

import (
	"fmt"
	"time"

	"github.com/b97tsk/frameasync"
)

func Example() {
	// Create an executor.
	e := frameasync.New()

	// Spawn a task that blinks three times, once every 50ms.
	frameasync.Spawn(e, frameasync.Async(func(co *frameasync.Coroutine) struct{} {
		for i := range 3 {
			fmt.Printf("blink %d at %v\n", i, e.Now())
			frameasync.Await(co, e.Delay(50*time.Millisecond))
		}
		return struct{}{}
	}))

	// Drive the executor at 20 frames per second, as a render loop would.
	for e.Step(50*time.Millisecond) != frameasync.Completed {
		fmt.Println("render frame", e.Frame())
	}

	fmt.Println("done at", e.Now())

	// Output:
	// blink 0 at 50ms
	// render frame 1
	// blink 1 at 100ms
	// render frame 2
	// blink 2 at 150ms
	// render frame 3
	// done at 200ms
}

func ExampleSpawn() {
	e := frameasync.New()

	h := frameasync.Spawn(e, frameasync.Async(func(co *frameasync.Coroutine) string {
		frameasync.Await(co, e.NextFrame())
		return "loaded"
	}))

	frameasync.Spawn(e, frameasync.Async(func(co *frameasync.Coroutine) struct{} {
		fmt.Println("waiting in frame", e.Frame())
		fmt.Println(frameasync.Await(co, h), "in frame", e.Frame())
		return struct{}{}
	}))

	for e.Step(time.Second/60) != frameasync.Completed {
	}

	// Output:
	// waiting in frame 1
	// loaded in frame 2
}

func ExampleExecutor_NextFrame() {
	e := frameasync.New()

	frameasync.Spawn(e, frameasync.Async(func(co *frameasync.Coroutine) struct{} {
		for range 3 {
			fmt.Println("frame", e.Frame())
			frameasync.Await(co, e.NextFrame())
		}
		return struct{}{}
	}))

	steps := 0
	for {
		steps++
		if e.Step(time.Second/60) == frameasync.Completed {
			break
		}
	}

	fmt.Println("steps:", steps)

	// Output:
	// frame 1
	// frame 2
	// frame 3
	// steps: 4
}

func ExampleSelect() {
	e := frameasync.New()

	timeout := frameasync.Map(e.Delay(100*time.Millisecond), func(struct{}) string {
		return "timed out"
	})
	answer := frameasync.Async(func(co *frameasync.Coroutine) string {
		defer fmt.Println("answer dropped")
		frameasync.Await(co, e.Delay(time.Second))
		return "answered"
	})

	h := frameasync.Spawn(e, frameasync.Select(timeout, answer))

	frameasync.Spawn(e, frameasync.Async(func(co *frameasync.Coroutine) struct{} {
		s := frameasync.Await(co, h)
		fmt.Println(s.Index, s.Value, "at", e.Now())
		return struct{}{}
	}))

	for e.Step(50*time.Millisecond) != frameasync.Completed {
	}

	// Output:
	// answer dropped
	// 0 timed out at 100ms
}

func ExampleJoin() {
	e := frameasync.New()

	after := func(d time.Duration, v int) frameasync.Future[int] {
		return frameasync.Map(e.Delay(d), func(struct{}) int { return v })
	}

	frameasync.Spawn(e, frameasync.Async(func(co *frameasync.Coroutine) struct{} {
		out := frameasync.Await(co, frameasync.Join(
			after(30*time.Millisecond, 1),
			after(10*time.Millisecond, 2),
			after(20*time.Millisecond, 3),
		))
		fmt.Println(out, "at", e.Now())
		return struct{}{}
	}))

	for e.Step(10*time.Millisecond) != frameasync.Completed {
	}

	// Output:
	// [1 2 3] at 40ms
}
