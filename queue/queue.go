// Package queue is the typed, task-context face of the kernel's untyped
// queues. A Queue[T] owns its codec: the element type is classified once at
// Create, the kernel slot size follows from that, and every send encodes into
// a stack slot before the kernel copies it. Boxed elements ride through the
// kernel as arena handles, and ownership of the handle moves with the slot,
// so exactly one receive (or teardown) releases each successful send.
//
// Await forms are assertion-style: they block forever and treat failure as a
// programming error, mirroring how collaborator loops use their one queue.
package queue

import (
	"quark/codec"
	"quark/kernel"
	"quark/queue/isr"
)

// Queue is a typed bounded FIFO. The zero value is invalid; use Create.
// Operating a destroyed or zero Queue is fatal.
type Queue[T any] struct {
	h *kernel.Queue
	c codec.Codec[T]
}

// Create makes a queue holding up to length items of T.
func Create[T any](length int) *Queue[T] {
	return CreateNamed[T]("", length)
}

// CreateNamed is Create with a name for kernel introspection. Stats for
// unnamed queues still appear, keyed by an autogenerated name.
func CreateNamed[T any](name string, length int) *Queue[T] {
	c := codec.For[T]()
	return &Queue[T]{
		h: kernel.NewQueueNamed(name, length, c.SlotSize()),
		c: c,
	}
}

// Destroy releases the queue. Items still queued are dropped; boxed items
// are released from the arena first so nothing leaks. Destroying a queue
// that tasks are blocked on is a programming error.
func (q *Queue[T]) Destroy() {
	q.drainReleasing()
	q.h.Destroy()
	q.h = nil
}

// drainReleasing pops and releases every queued boxed handle. Inline queues
// have nothing to release, so the kernel drop alone is enough.
func (q *Queue[T]) drainReleasing() {
	if q.c.Class() != codec.Boxed {
		return
	}
	slot := make([]byte, q.c.SlotSize())
	for q.h.Receive(slot, kernel.NoWait) {
		q.c.Release(slot)
	}
}

// Send appends item, waiting up to timeout for space. It reports false on
// timeout or, for boxed T, when the arena refuses the item; either way the
// queue is unchanged and nothing is leaked.
func (q *Queue[T]) Send(item T, timeout kernel.Ticks) bool {
	return q.send(item, timeout, false)
}

// SendToFront is Send but the item lands at the head, so it is received
// before anything already queued.
func (q *Queue[T]) SendToFront(item T, timeout kernel.Ticks) bool {
	return q.send(item, timeout, true)
}

// AwaitSend is Send with an unbounded wait. Failure still being possible
// (a boxed arena refusing the item) is treated as fatal.
func (q *Queue[T]) AwaitSend(item T) {
	if !q.send(item, kernel.Forever, false) {
		kernel.Fatalf("queue %q: unbounded send failed", q.h.Name())
	}
}

// AwaitSendToFront is SendToFront with an unbounded wait.
func (q *Queue[T]) AwaitSendToFront(item T) {
	if !q.send(item, kernel.Forever, true) {
		kernel.Fatalf("queue %q: unbounded send failed", q.h.Name())
	}
}

func (q *Queue[T]) send(item T, timeout kernel.Ticks, front bool) bool {
	slot := make([]byte, q.c.SlotSize())
	if !q.c.Encode(item, slot) {
		return false
	}
	var ok bool
	if front {
		ok = q.h.SendToFront(slot, timeout)
	} else {
		ok = q.h.Send(slot, timeout)
	}
	if !ok {
		// The kernel never saw the slot, so the encode is unwound here.
		q.c.Release(slot)
	}
	return ok
}

// Overwrite writes item, replacing the newest queued item if the queue is
// full. It never blocks. The replaced item, if boxed, is released. False
// means the arena refused the item; the queue keeps its previous content.
func (q *Queue[T]) Overwrite(item T) bool {
	slot := make([]byte, q.c.SlotSize())
	if !q.c.Encode(item, slot) {
		return false
	}
	displaced := make([]byte, q.c.SlotSize())
	if q.h.Overwrite(slot, displaced) {
		q.c.Release(displaced)
	}
	return true
}

// Receive pops the oldest item, waiting up to timeout for one to arrive.
func (q *Queue[T]) Receive(timeout kernel.Ticks) (T, bool) {
	slot := make([]byte, q.c.SlotSize())
	if !q.h.Receive(slot, timeout) {
		var zero T
		return zero, false
	}
	return q.c.Decode(slot), true
}

// AwaitReceive blocks until an item arrives.
func (q *Queue[T]) AwaitReceive() T {
	item, ok := q.Receive(kernel.Forever)
	if !ok {
		kernel.Fatalf("queue %q: unbounded receive failed", q.h.Name())
	}
	return item
}

// Peek returns the oldest item without removing it. A boxed item stays
// owned by the queue; the caller gets the value, not the handle.
func (q *Queue[T]) Peek(timeout kernel.Ticks) (T, bool) {
	slot := make([]byte, q.c.SlotSize())
	if !q.h.Peek(slot, timeout) {
		var zero T
		return zero, false
	}
	return q.c.DecodePeek(slot), true
}

// AwaitPeek blocks until an item is visible.
func (q *Queue[T]) AwaitPeek() T {
	item, ok := q.Peek(kernel.Forever)
	if !ok {
		kernel.Fatalf("queue %q: unbounded peek failed", q.h.Name())
	}
	return item
}

// Reset empties the queue. Boxed items are released, tasks blocked sending
// are woken to retry against the now-empty queue.
func (q *Queue[T]) Reset() {
	q.drainReleasing()
	q.h.Reset()
}

// MessagesWaiting reports how many items are queued.
func (q *Queue[T]) MessagesWaiting() int { return q.h.MessagesWaiting() }

// SpacesAvailable reports how many more items fit.
func (q *Queue[T]) SpacesAvailable() int { return q.h.SpacesAvailable() }

// IsEmpty reports whether nothing is queued.
func (q *Queue[T]) IsEmpty() bool { return q.h.MessagesWaiting() == 0 }

// IsFull reports whether no space remains.
func (q *Queue[T]) IsFull() bool { return q.h.SpacesAvailable() == 0 }

// Name returns the queue's kernel name.
func (q *Queue[T]) Name() string { return q.h.Name() }

// RawHandle exposes the kernel queue, for wiring into code that works on
// untyped handles (introspection, the timer daemon). Misusing it to bypass
// the codec corrupts boxed accounting.
func (q *Queue[T]) RawHandle() *kernel.Queue { return q.h }

// ForISR derives the interrupt-context view of this queue. Fatal for boxed
// T: handlers may not touch the arena.
func (q *Queue[T]) ForISR() *isr.Queue[T] {
	if q.c.Class() == codec.Boxed {
		kernel.Fatalf("queue %q: boxed element type %T has no interrupt-context view", q.h.Name(), *new(T))
	}
	return isr.Wrap(q.h, q.c)
}
