// Package frameasync is a frame-synchronized async runtime for interactive,
// real-time application logic, such as game scripting.
//
// Go already does a great job at running code in parallel. What it does not
// do is run code in lockstep with something else, like a render loop.
// This package implements a single-threaded [Executor] that only makes
// progress when its host tells it to, one frame at a time, against its own
// virtual clock. Given the same sequence of frame times and deterministic
// task logic, it always does the same thing in the same order.
//
// # Futures and Tasks
//
// A [Future] is a computation that may not have finished yet. Polling it
// either yields its output or arranges for a [Waker] to be woken when it is
// worth polling again.
//
// [Spawn] turns a future into a task and returns a [JoinHandle], itself a
// future, that completes with the task's output. Tasks are detached: they
// run to completion whether or not anyone keeps their handles.
//
// # Driving an Executor
//
// The host calls [Executor.Step] once per frame, passing the time elapsed
// since the previous frame. A step advances virtual time, wakes tasks
// waiting for the next frame, fires due timers, and then polls ready tasks
// until every one of them has either completed or suspended.
//
//	e := frameasync.New()
//	frameasync.Spawn(e, scene)
//	for e.Step(dt) != frameasync.Completed {
//		render()
//	}
//
// # Suspension Points
//
// Tasks suspend when they await [Executor.NextFrame], [Executor.Delay],
// a [JoinHandle], or any future built on top of these.
// There is no preemption. A task that never suspends keeps
// [Executor.Step] from returning.
//
// # Writing Tasks
//
// Futures can be written by hand, as state machines, but [Async] lets one
// write them as plain sequential functions instead:
//
//	frameasync.Spawn(e, frameasync.Async(func(co *frameasync.Coroutine) struct{} {
//		for range 3 {
//			blink()
//			frameasync.Await(co, e.Delay(500*time.Millisecond))
//		}
//		return struct{}{}
//	}))
//
// [Select] and [Join] combine futures into one. They are conveniences built
// on the same primitives as everything else; the executor knows nothing
// about them. So are [Signal], [WaitGroup] and [Semaphore], which let tasks
// coordinate with one another.
//
// # Panic Propagation
//
// If a task panics, the executor discards it and carries on with other
// tasks. When the step ends, [Executor.Step] panics with a [*PanicError]
// that holds every panic raised during that step.
package frameasync
