package task

import (
	"quark/kernel"
	"quark/task/isr"
)

// Counting views a notification word as a counting semaphore: every Give is
// one unit, Take consumes one, Fetch reads the count without consuming it.
type Counting struct {
	view
}

// NewCounting binds a counting view to word index of t.
func NewCounting(t *kernel.Task, index int) Counting {
	return Counting{view{t: t, index: index}}
}

// Give adds one unit, waking the owner if it is waiting on this index.
func (c Counting) Give() {
	c.t.NotifyGive(c.index)
}

// Take waits up to timeout for at least one unit, consumes exactly one, and
// returns the pre-decrement count.
func (c Counting) Take(timeout kernel.Ticks) (uint32, bool) {
	return c.t.NotifyTake(c.index, true, timeout)
}

// AwaitTake blocks until a unit is available, consumes one, and returns the
// pre-decrement count.
func (c Counting) AwaitTake() uint32 {
	n, ok := c.Take(kernel.Forever)
	if !ok {
		kernel.Fatalf("task %q: unbounded counting take failed", c.t.Name())
	}
	return n
}

// Fetch waits up to timeout for a notified count and returns it without
// decrementing. Only the pending mark is consumed; a following Take still
// observes the same count.
func (c Counting) Fetch(timeout kernel.Ticks) (uint32, bool) {
	return c.t.NotifyWait(c.index, 0, 0, timeout)
}

// AwaitFetch blocks until a count is notified and returns it without
// decrementing.
func (c Counting) AwaitFetch() uint32 {
	n, ok := c.Fetch(kernel.Forever)
	if !ok {
		kernel.Fatalf("task %q: unbounded counting fetch failed", c.t.Name())
	}
	return n
}

// CurrentValue returns the count without consuming it.
func (c Counting) CurrentValue() uint32 {
	return c.t.NotifyValueClear(c.index, 0)
}

// ConsumeValue returns the count and zeroes it in one step.
func (c Counting) ConsumeValue() uint32 {
	return c.t.NotifyValueClear(c.index, ^uint32(0))
}

// ForISR derives the interrupt-context giver for this view.
func (c Counting) ForISR() isr.Counting {
	return isr.NewCounting(c.t, c.index)
}
