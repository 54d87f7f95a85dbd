package task

import (
	"quark/kernel"
	"quark/task/isr"
)

// Binary views a notification word as a binary semaphore: Set marks the
// event, Get consumes it. Repeated Sets before a Get collapse into one.
type Binary struct {
	view
}

// NewBinary binds a binary view to word index of t.
func NewBinary(t *kernel.Task, index int) Binary {
	return Binary{view{t: t, index: index}}
}

// Set marks the event, waking the owner if it is waiting on this index.
func (b Binary) Set() {
	b.t.Notify(b.index, 1, kernel.NotifyOverwrite)
}

// Get waits up to timeout for the event and consumes it.
func (b Binary) Get(timeout kernel.Ticks) bool {
	_, ok := b.t.NotifyTake(b.index, false, timeout)
	return ok
}

// AwaitGet blocks until the event arrives and consumes it.
func (b Binary) AwaitGet() {
	if !b.Get(kernel.Forever) {
		kernel.Fatalf("task %q: unbounded binary wait failed", b.t.Name())
	}
}

// CurrentValue reports whether the event is marked, without consuming it.
func (b Binary) CurrentValue() bool {
	return b.t.NotifyValueClear(b.index, 0) != 0
}

// ForISR derives the interrupt-context setter for this view.
func (b Binary) ForISR() isr.Binary {
	return isr.NewBinary(b.t, b.index)
}
