// Package task wraps the kernel's task registry in a collaborator lifecycle:
// a Runnable is given its own goroutine, registered with the kernel so
// queues and notifications know its priority, optionally set up, run, and
// unregistered when Run returns.
//
// The package also layers the four typed notification views over a task's
// raw 32-bit notification words. Views carry no state beyond the task handle
// and word index; constructing one is free and never allocates kernel
// resources.
package task

import (
	"time"

	"quark/kernel"
	"quark/ticks"
)

// Runnable is the body of a task. Run is called exactly once, on the task's
// own goroutine, and the task ends when it returns.
type Runnable interface {
	Run()
}

// SetupHook is implemented by Runnables that need one-time initialization on
// the task goroutine before Run. The assertion is resolved once, at start.
type SetupHook interface {
	Setup()
}

// DefaultPriority is used when Create is given no WithPriority option.
const DefaultPriority = 1

// Option configures Create.
type Option func(*options)

type options struct {
	priority int
}

// WithPriority sets the task's priority. Higher values wake first when
// several tasks contend for the same queue or notification.
func WithPriority(p int) Option {
	return func(o *options) { o.priority = p }
}

// Task is a running collaborator. The zero value is invalid; use Create.
type Task struct {
	name  string
	kt    *kernel.Task
	ready chan struct{}
	done  chan struct{}
}

// Create starts r as a named task. The returned handle is valid immediately;
// operations that need the kernel registration wait for it internally.
func Create(r Runnable, name string, opts ...Option) *Task {
	o := options{priority: DefaultPriority}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Task{
		name:  name,
		ready: make(chan struct{}),
		done:  make(chan struct{}),
	}
	go t.run(r, o.priority)
	return t
}

func (t *Task) run(r Runnable, priority int) {
	defer close(t.done)

	t.kt = kernel.Register(t.name, priority)
	defer kernel.Unregister()
	close(t.ready)

	if s, ok := r.(SetupHook); ok {
		s.Setup()
	}
	r.Run()
}

// Name returns the task name.
func (t *Task) Name() string { return t.name }

// Kernel returns the kernel-side handle, for building notification views and
// feeding introspection. It blocks until the task goroutine has registered.
func (t *Task) Kernel() *kernel.Task {
	<-t.ready
	return t.kt
}

// Done is closed when Run has returned and the task is unregistered.
func (t *Task) Done() <-chan struct{} { return t.done }

// Priority returns the task's current priority.
func (t *Task) Priority() int { return t.Kernel().Priority() }

// SetPriority changes the task's priority for future wake ordering.
func (t *Task) SetPriority(p int) { t.Kernel().SetPriority(p) }

// AbortWait kicks the task out of a blocking queue or notification wait.
// The interrupted call returns as if it timed out.
func (t *Task) AbortWait() bool { return t.Kernel().AbortWait() }

// SleepFor suspends the calling task for d, rounded to the kernel tick.
func SleepFor(d time.Duration) {
	time.Sleep(ticks.Duration(ticks.ToTicks(d)))
}

// ControlFlow tells Every whether to keep looping.
type ControlFlow uint8

const (
	// Continue runs the body again next period.
	Continue ControlFlow = iota
	// Break leaves the loop.
	Break
)

// Every runs fn at a fixed cadence until it returns Break. The cadence is
// anchored to the start time, so a slow body does not drift the schedule.
func Every(period time.Duration, fn func() ControlFlow) {
	tk := time.NewTicker(period)
	defer tk.Stop()
	for {
		if fn() == Break {
			return
		}
		<-tk.C
	}
}
