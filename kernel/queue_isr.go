package kernel

// Interrupt-context queue operations. These never wait: each completes
// immediately or reports failure. The woken result is the wake flag: true when
// the operation unblocked a task of higher priority than the one the interrupt
// preempted, meaning the handler must request a context switch before
// returning (see YieldFromISR).

// SendFromISR copies slot to the back (or front) of the queue without waiting.
func (q *Queue) SendFromISR(slot []byte, front bool) (woken, ok bool) {
	q.checkValid()
	if len(slot) != q.elemSize {
		Fatalf("queue %q: slot size %d, element size %d", q.name, len(slot), q.elemSize)
	}
	pos := posBack
	if front {
		pos = posFront
	}

	q.mu.Lock()
	if q.count >= q.capacity {
		q.mu.Unlock()
		return false, false
	}
	q.insert(slot, pos)
	ready := q.recvq.popReady()
	q.mu.Unlock()

	return wakeFromISR(ready), true
}

// OverwriteFromISR is the interrupt-context Overwrite: infallible, intended
// for capacity-1 queues. Displaced content, if any, is copied into displaced.
func (q *Queue) OverwriteFromISR(slot []byte, displaced []byte) (replaced, woken bool) {
	q.checkValid()
	q.mu.Lock()
	q.checkValid()
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

	return replaced, wakeFromISR(ready)
}

// ReceiveFromISR pops the front element without waiting.
func (q *Queue) ReceiveFromISR(slot []byte) (woken, ok bool) {
	q.checkValid()
	q.mu.Lock()
	if q.count == 0 {
		q.mu.Unlock()
		return false, false
	}
	q.removeFront(slot)
	ready := q.sendq.popReady()
	q.mu.Unlock()

	return wakeFromISR(ready), true
}

// PeekFromISR copies the front element without popping or waiting.
func (q *Queue) PeekFromISR(slot []byte) bool {
	q.checkValid()
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == 0 {
		return false
	}
	copy(slot, q.slotAt(0))
	return true
}

// wakeFromISR signals a readied waiter and computes the wake flag against the
// priority of the preempted task.
func wakeFromISR(ready *waiter) bool {
	if ready == nil {
		return false
	}
	woken := ready.prio > currentPriority()
	ready.signal()
	return woken
}
