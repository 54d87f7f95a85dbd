// Package isr holds the interrupt-context half of the notification views.
// Handlers only ever produce notifications, so each view here is a setter
// returning the wake flag; the consuming waits live in the task package.
package isr

import (
	"quark/codec"
	"quark/kernel"
)

// Binary marks a binary event from a handler.
type Binary struct {
	t     *kernel.Task
	index int
}

// NewBinary binds an interrupt-context binary setter to word index of t.
func NewBinary(t *kernel.Task, index int) Binary {
	return Binary{t: t, index: index}
}

// Set marks the event. The result is the wake flag.
func (b Binary) Set() (woken bool) {
	return b.t.NotifyFromISR(b.index, 1, kernel.NotifyOverwrite)
}

// Counting gives counting-semaphore units from a handler.
type Counting struct {
	t     *kernel.Task
	index int
}

// NewCounting binds an interrupt-context giver to word index of t.
func NewCounting(t *kernel.Task, index int) Counting {
	return Counting{t: t, index: index}
}

// Give adds one unit. The result is the wake flag.
func (c Counting) Give() (woken bool) {
	return c.t.NotifyFromISR(c.index, 0, kernel.NotifyIncrement)
}

// State overwrites a scalar state cell from a handler.
type State[T any] struct {
	t     *kernel.Task
	index int
}

// NewState binds an interrupt-context setter to word index of t. T carries
// the same inline, 32-bit constraint the task-context view enforces.
func NewState[T any](t *kernel.Task, index int) State[T] {
	if !codec.Fits32[T]() {
		kernel.Fatalf("task %q: state type %T does not fit a notification word", t.Name(), *new(T))
	}
	return State[T]{t: t, index: index}
}

// Set overwrites the cell with v. The result is the wake flag.
func (s State[T]) Set(v T) (woken bool) {
	return s.t.NotifyFromISR(s.index, codec.Word32(v), kernel.NotifyOverwrite)
}
