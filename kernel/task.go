package kernel

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"
)

// NotifyIndexes is the number of notification words each task carries.
const NotifyIndexes = 4

// Task is the kernel-side record of one unit of execution. A handle stays
// valid for the task's whole lifetime and is required to address its
// notification words.
type Task struct {
	name string
	prio atomic.Int32

	mu    sync.Mutex
	words [NotifyIndexes]notifyWord

	// curWait points at the waiter of the blocking call currently in
	// flight on this task, if any. AbortWait cancels through it.
	curWait atomic.Pointer[waiter]
}

var (
	tasksMu sync.Mutex
	tasks   = make(map[int64]*Task)
)

// Register binds a kernel task record to the calling goroutine and returns
// its handle. The goroutine must call Unregister before exiting.
func Register(name string, priority int) *Task {
	t := &Task{name: name}
	t.prio.Store(int32(priority))

	id := goid.Get()
	tasksMu.Lock()
	if _, dup := tasks[id]; dup {
		tasksMu.Unlock()
		Fatalf("goroutine already runs task %q", name)
	}
	tasks[id] = t
	tasksMu.Unlock()
	return t
}

// Unregister detaches the calling goroutine from its task record.
func Unregister() {
	id := goid.Get()
	tasksMu.Lock()
	delete(tasks, id)
	tasksMu.Unlock()
}

// Current returns the task bound to the calling goroutine, or nil when the
// caller is not a registered task.
func Current() *Task {
	id := goid.Get()
	tasksMu.Lock()
	t := tasks[id]
	tasksMu.Unlock()
	return t
}

// currentPriority is the priority the scheduler would preempt right now: the
// calling task's priority, or 0 when no task is bound to this goroutine.
func currentPriority() int {
	if t := Current(); t != nil {
		return t.Priority()
	}
	return 0
}

// Name returns the task name.
func (t *Task) Name() string { return t.name }

// Priority returns the task priority.
func (t *Task) Priority() int { return int(t.prio.Load()) }

// SetPriority changes the task priority. It affects future wake ordering
// only, not waits already in progress.
func (t *Task) SetPriority(p int) { t.prio.Store(int32(p)) }

// AbortWait forces the task out of a blocking wait, if it is in one. The
// interrupted call returns exactly as if its timeout expired. Reports whether
// a wait was aborted.
func (t *Task) AbortWait() bool {
	w := t.curWait.Load()
	if w == nil {
		return false
	}
	return w.cancel()
}

func (t *Task) beginWait(w *waiter) { t.curWait.Store(w) }
func (t *Task) endWait()            { t.curWait.Store(nil) }

// blockOn parks the calling task on w until signalled or past the deadline.
// The task pointer may be nil for non-task goroutines (tests); AbortWait is
// then unavailable but the wait still works.
func blockOn(t *Task, w *waiter, deadline time.Time, bounded bool) bool {
	if t != nil {
		t.beginWait(w)
		defer t.endWait()
	}
	return w.await(deadline, bounded)
}
