package kernel

import "sync"

// Queue is the kernel's bounded, copy-based FIFO. Slots are untyped byte
// ranges of a fixed element size; capacity*elemSize bytes are reserved for the
// queue's whole lifetime. Typed access lives in the queue package, which
// encodes items into slots before they reach the kernel.
//
// All mutual exclusion for queue operations happens inside the queue's own
// critical section; callers take no locks of their own.
type Queue struct {
	mu sync.Mutex

	name     string
	elemSize int
	capacity int
	buf      []byte
	head     int
	count    int

	sendq waitq
	recvq waitq

	destroyed bool
}

const (
	posBack = iota
	posFront
)

// NewQueue reserves storage for capacity elements of elemSize bytes each.
func NewQueue(capacity, elemSize int) *Queue {
	return NewQueueNamed("", capacity, elemSize)
}

// NewQueueNamed is NewQueue with a name for kernel introspection.
func NewQueueNamed(name string, capacity, elemSize int) *Queue {
	if capacity <= 0 || elemSize <= 0 {
		Fatalf("queue %q: invalid geometry (capacity=%d elemSize=%d)", name, capacity, elemSize)
	}
	q := &Queue{
		name:     name,
		elemSize: elemSize,
		capacity: capacity,
		buf:      make([]byte, capacity*elemSize),
	}
	registerQueue(q)
	return q
}

// Capacity returns the maximum number of elements the queue can hold.
func (q *Queue) Capacity() int { return q.capacity }

// ElemSize returns the fixed slot size in bytes.
func (q *Queue) ElemSize() int { return q.elemSize }

// Name returns the queue's introspection name, possibly empty.
func (q *Queue) Name() string { return q.name }

func (q *Queue) checkValid() {
	if q == nil {
		Fatalf("operation on an uncreated queue")
	}
	if q.destroyed {
		Fatalf("operation on destroyed queue %q", q.name)
	}
}

func (q *Queue) slotAt(i int) []byte {
	off := ((q.head + i) % q.capacity) * q.elemSize
	return q.buf[off : off+q.elemSize]
}

// insert copies slot into the buffer. Back insertion is FIFO, front insertion
// is LIFO-at-head. Caller holds q.mu and has verified there is space.
func (q *Queue) insert(slot []byte, pos int) {
	if pos == posFront {
		q.head = (q.head - 1 + q.capacity) % q.capacity
		copy(q.slotAt(0), slot)
	} else {
		copy(q.slotAt(q.count), slot)
	}
	q.count++
}

func (q *Queue) removeFront(slot []byte) {
	copy(slot, q.slotAt(0))
	q.head = (q.head + 1) % q.capacity
	q.count--
}

// Send copies slot to the back of the queue, waiting up to timeout ticks for
// space. It reports whether the item was enqueued.
func (q *Queue) Send(slot []byte, timeout Ticks) bool {
	return q.genericSend(slot, posBack, timeout)
}

// SendToFront copies slot to the front of the queue, waiting up to timeout
// ticks for space.
func (q *Queue) SendToFront(slot []byte, timeout Ticks) bool {
	return q.genericSend(slot, posFront, timeout)
}

func (q *Queue) genericSend(slot []byte, pos int, timeout Ticks) bool {
	q.checkValid()
	if len(slot) != q.elemSize {
		Fatalf("queue %q: slot size %d, element size %d", q.name, len(slot), q.elemSize)
	}
	deadline, bounded := deadlineFor(timeout)
	t := Current()

	for {
		q.mu.Lock()
		q.checkValid()
		if q.count < q.capacity {
			q.insert(slot, pos)
			ready := q.recvq.popReady()
			q.mu.Unlock()
			if ready != nil {
				ready.signal()
			}
			return true
		}
		if timeout == NoWait {
			q.mu.Unlock()
			return false
		}

		w := newWaiter(currentPriority())
		q.sendq.add(w)
		q.mu.Unlock()

		woken := blockOn(t, w, deadline, bounded)

		q.mu.Lock()
		q.sendq.remove(w)
		q.mu.Unlock()
		if !woken {
			return false
		}
	}
}

// Overwrite writes slot even when the queue is full, replacing the most
// recently enqueued element. Intended for capacity-1 queues. It never waits
// and never fails; when an element was displaced, its previous content is
// copied into displaced (if non-nil) and the second result is true.
func (q *Queue) Overwrite(slot []byte, displaced []byte) bool {
	q.checkValid()
	q.mu.Lock()
	q.checkValid()
	var replaced bool
	if q.count < q.capacity {
		q.insert(slot, posBack)
	} else {
		last := q.slotAt(q.count - 1)
		if displaced != nil {
			copy(displaced, last)
		}
		copy(last, slot)
		replaced = true
	}
	ready := q.recvq.popReady()
	q.mu.Unlock()
	if ready != nil {
		ready.signal()
	}
	return replaced
}

// Receive pops the front element into slot, waiting up to timeout ticks for
// one to arrive.
func (q *Queue) Receive(slot []byte, timeout Ticks) bool {
	return q.genericReceive(slot, true, timeout)
}

// Peek copies the front element into slot without popping it, waiting up to
// timeout ticks.
func (q *Queue) Peek(slot []byte, timeout Ticks) bool {
	return q.genericReceive(slot, false, timeout)
}

func (q *Queue) genericReceive(slot []byte, pop bool, timeout Ticks) bool {
	q.checkValid()
	if len(slot) != q.elemSize {
		Fatalf("queue %q: slot size %d, element size %d", q.name, len(slot), q.elemSize)
	}
	deadline, bounded := deadlineFor(timeout)
	t := Current()

	for {
		q.mu.Lock()
		q.checkValid()
		if q.count > 0 {
			var ready *waiter
			if pop {
				q.removeFront(slot)
				ready = q.sendq.popReady()
			} else {
				copy(slot, q.slotAt(0))
				// The element stays; hand the wake on to the next
				// receiver so a peeker never swallows it.
				ready = q.recvq.popReady()
			}
			q.mu.Unlock()
			if ready != nil {
				ready.signal()
			}
			return true
		}
		if timeout == NoWait {
			q.mu.Unlock()
			return false
		}

		w := newWaiter(currentPriority())
		q.recvq.add(w)
		q.mu.Unlock()

		woken := blockOn(t, w, deadline, bounded)

		q.mu.Lock()
		q.recvq.remove(w)
		q.mu.Unlock()
		if !woken {
			return false
		}
	}
}

// MessagesWaiting returns the number of queued elements.
func (q *Queue) MessagesWaiting() int {
	q.checkValid()
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// SpacesAvailable returns the number of free slots.
func (q *Queue) SpacesAvailable() int {
	q.checkValid()
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.capacity - q.count
}

// Reset drops all queued elements and wakes blocked senders.
func (q *Queue) Reset() {
	q.checkValid()
	q.mu.Lock()
	q.head = 0
	q.count = 0
	var ready []*waiter
	for {
		w := q.sendq.popReady()
		if w == nil {
			break
		}
		ready = append(ready, w)
	}
	q.mu.Unlock()
	for _, w := range ready {
		w.signal()
	}
}

// Destroy releases the queue. Any further operation is a contract violation.
// Destroying a queue while tasks are blocked on it is itself a violation and
// will surface as a fatal assertion in those tasks.
func (q *Queue) Destroy() {
	q.checkValid()
	q.mu.Lock()
	q.destroyed = true
	q.buf = nil
	q.mu.Unlock()
	unregisterQueue(q)
}
