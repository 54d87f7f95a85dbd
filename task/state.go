package task

import (
	"quark/codec"
	"quark/kernel"
	"quark/task/isr"
)

// State views a notification word as a last-value cell of T: Set overwrites,
// Get waits for the next write and returns the value. Intermediate values
// between waits are lost, only the latest survives.
//
// T must be an inline type of at most 32 bits. NewState checks that once
// and fails fast, so Set and Get stay unconditional.
type State[T any] struct {
	view
}

// NewState binds a scalar state view to word index of t.
func NewState[T any](t *kernel.Task, index int) State[T] {
	if !codec.Fits32[T]() {
		kernel.Fatalf("task %q: state type %T does not fit a notification word", t.Name(), *new(T))
	}
	return State[T]{view{t: t, index: index}}
}

// Set overwrites the cell with v, waking the owner if it is waiting.
func (s State[T]) Set(v T) {
	s.t.Notify(s.index, codec.Word32(v), kernel.NotifyOverwrite)
}

// Get waits up to timeout for a write and returns the latest value. The
// value stays in the cell; only the pending mark is consumed.
func (s State[T]) Get(timeout kernel.Ticks) (T, bool) {
	word, ok := s.t.NotifyWait(s.index, 0, 0, timeout)
	if !ok {
		var zero T
		return zero, false
	}
	return codec.FromWord32[T](word), true
}

// AwaitGet blocks until a write arrives and returns the latest value.
func (s State[T]) AwaitGet() T {
	v, ok := s.Get(kernel.Forever)
	if !ok {
		kernel.Fatalf("task %q: unbounded state wait failed", s.t.Name())
	}
	return v
}

// CurrentValue returns the cell's value without waiting or consuming the
// pending mark.
func (s State[T]) CurrentValue() T {
	return codec.FromWord32[T](s.t.NotifyValueClear(s.index, 0))
}

// ForISR derives the interrupt-context setter for this view.
func (s State[T]) ForISR() isr.State[T] {
	return isr.NewState[T](s.t, s.index)
}
