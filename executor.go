package frameasync

import (
	"slices"
	"time"

	"github.com/eapache/queue"
	"github.com/joeycumines/logiface"
)

// StepResult is what [Executor.Step] returns.
type StepResult int

const (
	// RemainTasks means some tasks are still waiting after the step.
	RemainTasks StepResult = iota
	// Completed means no task is waiting after the step.
	Completed
)

func (r StepResult) String() string {
	switch r {
	case RemainTasks:
		return "RemainTasks"
	case Completed:
		return "Completed"
	default:
		return "StepResult(?)"
	}
}

// An Executor is a frame-synchronized, single-threaded task runner.
//
// Tasks are spawned with [Spawn]. Nothing runs until the host calls the Step
// method, normally once per rendered frame. Step advances the executor's
// virtual clock, wakes tasks awaiting the next frame or a due timer, and
// then polls every ready task until it either completes or suspends.
//
// Tasks are polled in FIFO order. Within one step, tasks awaiting the next
// frame are woken first, then tasks whose timers are due (earliest first,
// ties in the order they were armed), then tasks woken by their [Waker]s.
// Given deterministic task logic, the poll order is deterministic.
//
// There is no preemption: a task that never suspends keeps Step from
// returning.
//
// Timers are kept in a sorted queue, so arming one costs time linear in
// the number of armed timers. This suits scripts with tens or hundreds of
// pending delays; hosts that arm thousands at once pay for each insert.
//
// The zero value is ready to use. An Executor must not be copied after
// first use. Except for [Waker.Wake], nothing about an Executor, nor any
// future derived from it, is safe for concurrent use.
type Executor struct {
	ready      *queue.Queue // of *task
	queued     map[TaskID]struct{}
	waiting    map[TaskID]*task
	renamed    map[TaskID][]*task // old id -> tasks renamed away from it
	wakes      wakequeue
	woken      []TaskID
	nextFrame  []Waker
	spareFrame []Waker
	timers     priorityqueue[timer]
	now        time.Duration
	frame      uint64
	ids        func() TaskID
	seq        TaskID
	logger     *logiface.Logger[logiface.Event]
	ps         panicstack
	stats      Stats
	stepping   bool
	closed     bool
}

// Stats is a snapshot of an [Executor]'s counters.
type Stats struct {
	Frames    uint64        // Steps taken.
	Now       time.Duration // Virtual time.
	Spawned   uint64        // Tasks spawned.
	Completed uint64        // Tasks completed.
	Panicked  uint64        // Tasks discarded because they panicked.
	Polls     uint64        // Task polls.
	Renamed   uint64        // Task ids regenerated on collision.
	Fired     uint64        // Timers fired.
	Ready     int           // Tasks in the ready queue.
	Waiting   int           // Tasks in the wait table.
	Timers    int           // Armed timers.
}

// New creates an [Executor].
func New(opts ...Option) *Executor {
	e := new(Executor)
	for _, opt := range opts {
		if opt != nil {
			opt.apply(e)
		}
	}
	e.init()
	return e
}

func (e *Executor) init() {
	if e.closed {
		panic(ErrClosed)
	}
	if e.ready != nil {
		return
	}
	e.ready = queue.New()
	e.queued = make(map[TaskID]struct{})
	e.waiting = make(map[TaskID]*task)
	e.renamed = make(map[TaskID][]*task)
	if e.ids == nil {
		e.ids = func() TaskID {
			e.seq++
			return e.seq
		}
	}
}

// Spawn creates a task that drives f to completion and appends it to
// e's ready queue.
//
// Spawn runs nothing by itself; the task is first polled by the next
// [Executor.Step] that gets to it. If Spawn is called from inside a task
// while a step is in progress, the new task is polled within the same step.
//
// The returned [JoinHandle] completes with f's output. The task runs to
// completion whether or not the handle is kept.
func Spawn[T any](e *Executor, f Future[T]) *JoinHandle[T] {
	e.init()
	h := new(JoinHandle[T])
	t := &task{id: e.newID(), job: &spawned[T]{f: f, h: h}}
	e.enqueue(t)
	e.stats.Spawned++
	e.logSpawn(t.id)
	return h
}

// SpawnFunc is like [Spawn] but takes a poll function.
func SpawnFunc[T any](e *Executor, poll func(cx *Context) Poll[T]) *JoinHandle[T] {
	return Spawn[T](e, FutureFunc[T](poll))
}

// Step advances e by one frame:
//
//  1. Virtual time advances by dt.
//  2. Every task awaiting the next frame is woken.
//  3. Every timer due at or before the new virtual time fires.
//  4. Ready tasks are polled, in FIFO order, until none remain and no
//     further wake-ups have been posted.
//
// Step returns [Completed] if no task is left waiting, otherwise
// [RemainTasks].
//
// If any task panics, it is discarded and Step carries on with the other
// tasks; when done, Step panics with a [*PanicError].
//
// Step must not be called from inside a task.
func (e *Executor) Step(dt time.Duration) StepResult {
	e.init()

	if e.stepping {
		panic("frameasync: Step called reentrantly")
	}

	e.stepping = true
	defer func() { e.stepping = false }()

	e.now += dt
	e.frame++
	e.stats.Frames++

	e.fireNextFrame()
	e.fireTimers()

	for {
		e.drainWakes()
		if e.ready.Length() == 0 {
			break
		}
		t := e.ready.Remove().(*task)
		delete(e.queued, t.id)
		e.runTask(t)
	}

	e.ps.Repanic()

	if len(e.waiting) == 0 {
		return Completed
	}
	return RemainTasks
}

func (e *Executor) runTask(t *task) {
	cx := &Context{executor: e, waker: Waker{q: &e.wakes, id: t.id}}

	var done bool

	e.stats.Polls++

	if !e.ps.Try(t.id, func() { done = t.job.run(cx) }) {
		e.stats.Panicked++
		e.logPanic(e.ps[len(e.ps)-1])
		e.discard(t)
		return
	}

	if done {
		e.stats.Completed++
		e.logComplete(t.id)
		e.discard(t)
		return
	}

	if e.inUse(t.id) {
		old := t.id
		t.id = e.newID()
		t.aliases = append(t.aliases, old)
		e.renamed[old] = append(e.renamed[old], t)
		e.stats.Renamed++
		e.logRenamed(old, t.id)
	}

	e.waiting[t.id] = t
}

func (e *Executor) discard(t *task) {
	for _, id := range t.aliases {
		ts := slices.DeleteFunc(e.renamed[id], func(u *task) bool { return u == t })
		if len(ts) == 0 {
			delete(e.renamed, id)
		} else {
			e.renamed[id] = ts
		}
	}
	t.aliases = nil
	t.job = nil
}

func (e *Executor) fireNextFrame() {
	wakers := e.nextFrame
	e.nextFrame = e.spareFrame[:0]
	for _, w := range wakers {
		e.wakeNow(w)
	}
	clear(wakers)
	e.spareFrame = wakers[:0]
}

func (e *Executor) fireTimers() {
	for !e.timers.Empty() && e.timers.Peek().when <= e.now {
		t := e.timers.Pop()
		e.stats.Fired++
		e.logTimer(t)
		e.wakeNow(t.waker)
	}
}

// wakeNow wakes a task of e directly, skipping the wake queue, so that
// frame and timer wake-ups are ordered before anything posted to it.
func (e *Executor) wakeNow(w Waker) {
	if w.q != &e.wakes {
		w.Wake()
		return
	}
	e.wake(w.id)
}

func (e *Executor) drainWakes() {
	ids := e.wakes.swap(e.woken)
	for _, id := range ids {
		e.wake(id)
	}
	clear(ids)
	e.woken = ids[:0]
}

func (e *Executor) wake(id TaskID) {
	if t, ok := e.waiting[id]; ok {
		e.resume(t)
	}
	for _, t := range e.renamed[id] {
		if e.waiting[t.id] == t {
			e.resume(t)
		}
	}
}

func (e *Executor) resume(t *task) {
	delete(e.waiting, t.id)
	e.enqueue(t)
}

func (e *Executor) enqueue(t *task) {
	e.ready.Add(t)
	e.queued[t.id] = struct{}{}
}

func (e *Executor) inUse(id TaskID) bool {
	if _, ok := e.waiting[id]; ok {
		return true
	}
	_, ok := e.queued[id]
	return ok
}

func (e *Executor) newID() TaskID {
	for {
		if id := e.ids(); id != 0 && !e.inUse(id) {
			return id
		}
	}
}

// Now returns e's virtual time: the sum of every dt passed to
// [Executor.Step], plus the start time (see [WithStartTime]).
func (e *Executor) Now() time.Duration {
	return e.now
}

// Frame returns the number of times [Executor.Step] has been called.
func (e *Executor) Frame() uint64 {
	return e.frame
}

// Len returns the number of tasks that have not yet completed.
// While a step is in progress, the task being polled is not counted.
func (e *Executor) Len() int {
	if e.ready == nil {
		return 0
	}
	return e.ready.Length() + len(e.waiting)
}

// Stats returns a snapshot of e's counters.
func (e *Executor) Stats() Stats {
	s := e.stats
	s.Now = e.now
	s.Waiting = len(e.waiting)
	s.Timers = e.timers.Len()
	if e.ready != nil {
		s.Ready = e.ready.Length()
	}
	return s
}

// Close drops every task that has not completed, together with all armed
// timers and next-frame subscriptions. Futures that implement [Dropper]
// are dropped.
//
// After Close, using e or any future derived from it panics with
// [ErrClosed]; waking its tasks does nothing. Close is idempotent, but
// must not be called from inside a task.
func (e *Executor) Close() {
	if e.closed {
		return
	}
	if e.stepping {
		panic("frameasync: Close called from inside a task")
	}

	e.closed = true
	e.wakes.close()

	var tasks []*task
	if e.ready != nil {
		for e.ready.Length() != 0 {
			tasks = append(tasks, e.ready.Remove().(*task))
		}
	}
	for _, t := range e.waiting {
		tasks = append(tasks, t)
	}

	e.ready = nil
	e.queued = nil
	e.waiting = nil
	e.renamed = nil
	e.nextFrame = nil
	e.spareFrame = nil
	e.timers.Clear()

	for _, t := range tasks {
		t.job.drop()
		t.job = nil
	}
}

func (e *Executor) mustBeOpen() {
	if e.closed {
		panic(ErrClosed)
	}
}
