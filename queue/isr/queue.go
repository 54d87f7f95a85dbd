// Package isr is the interrupt-context face of a typed queue. Every
// operation completes without blocking and reports, alongside its own
// result, whether it readied a task whose priority exceeds the interrupted
// task's; the handler passes that flag to kernel.YieldFromISR on exit.
//
// Only Inline element types exist here. The task-context constructor
// enforces that, so this package can assume the codec never touches an
// arena.
package isr

import (
	"quark/codec"
	"quark/kernel"
)

// Queue is the interrupt-context view. Built by the task-context queue's
// ForISR; the two views share one kernel queue.
type Queue[T any] struct {
	h *kernel.Queue
	c codec.Codec[T]
}

// Wrap binds an interrupt-context view to a kernel queue. Callers go
// through the task-context ForISR, which has already vetted the codec.
func Wrap[T any](h *kernel.Queue, c codec.Codec[T]) *Queue[T] {
	return &Queue[T]{h: h, c: c}
}

// Send appends item if space is available. ok is false when the queue is
// full; woken reports a higher-priority task readied by the send.
func (q *Queue[T]) Send(item T) (woken, ok bool) {
	slot := make([]byte, q.c.SlotSize())
	q.c.Encode(item, slot)
	return q.h.SendFromISR(slot, false)
}

// SendToFront is Send at the head of the queue.
func (q *Queue[T]) SendToFront(item T) (woken, ok bool) {
	slot := make([]byte, q.c.SlotSize())
	q.c.Encode(item, slot)
	return q.h.SendFromISR(slot, true)
}

// Overwrite writes item, replacing the newest queued item when full. It
// cannot fail; inline encodes always succeed and a full queue is replaced
// in place.
func (q *Queue[T]) Overwrite(item T) (woken bool) {
	slot := make([]byte, q.c.SlotSize())
	q.c.Encode(item, slot)
	_, woken = q.h.OverwriteFromISR(slot, nil)
	return woken
}

// Receive pops the oldest item if one is queued.
func (q *Queue[T]) Receive() (item T, woken, ok bool) {
	slot := make([]byte, q.c.SlotSize())
	woken, ok = q.h.ReceiveFromISR(slot)
	if !ok {
		return item, false, false
	}
	return q.c.Decode(slot), woken, true
}

// Peek returns the oldest item without removing it.
func (q *Queue[T]) Peek() (item T, ok bool) {
	slot := make([]byte, q.c.SlotSize())
	if !q.h.PeekFromISR(slot) {
		return item, false
	}
	return q.c.DecodePeek(slot), true
}

// MessagesWaiting reports how many items are queued.
func (q *Queue[T]) MessagesWaiting() int { return q.h.MessagesWaiting() }

// IsEmpty reports whether nothing is queued.
func (q *Queue[T]) IsEmpty() bool { return q.h.MessagesWaiting() == 0 }

// IsFull reports whether no space remains.
func (q *Queue[T]) IsFull() bool { return q.h.SpacesAvailable() == 0 }
