package kernel

import "math"

// Each task owns NotifyIndexes notification words: one 32-bit value plus a
// pending flag per index. A word's bit layout belongs to exactly one semantic
// use for the program's lifetime; the task package layers binary, counting,
// scalar and grouped views on top.
//
// Only the owning task consumes a word. Notifiers may be any task or an
// interrupt handler.

type notifyWord struct {
	value   uint32
	pending bool
	waiter  *waiter
}

// NotifyAction selects how a notification updates the word.
type NotifyAction uint8

const (
	// NotifyOverwrite replaces the word with the given value.
	NotifyOverwrite NotifyAction = iota
	// NotifyIncrement adds one to the word; the given value is ignored.
	NotifyIncrement
	// NotifySetBits ORs the given value into the word.
	NotifySetBits
)

func (t *Task) checkIndex(index int) {
	if t == nil {
		Fatalf("notification on a nil task handle")
	}
	if index < 0 || index >= NotifyIndexes {
		Fatalf("task %q: notification index %d out of range", t.name, index)
	}
}

// notifyLocked applies the action, marks the word pending and releases the
// owner if it is waiting on this index. Returns the readied waiter, if any.
func (t *Task) notifyLocked(index int, value uint32, action NotifyAction) *waiter {
	wd := &t.words[index]
	switch action {
	case NotifyOverwrite:
		wd.value = value
	case NotifyIncrement:
		wd.value++
	case NotifySetBits:
		wd.value |= value
	default:
		Fatalf("task %q: unknown notify action %d", t.name, action)
	}
	wd.pending = true

	w := wd.waiter
	if w == nil || !w.claim() {
		return nil
	}
	wd.waiter = nil
	return w
}

// Notify updates the notification word at index and marks it pending.
func (t *Task) Notify(index int, value uint32, action NotifyAction) {
	t.checkIndex(index)
	t.mu.Lock()
	ready := t.notifyLocked(index, value, action)
	t.mu.Unlock()
	if ready != nil {
		ready.signal()
	}
}

// NotifyFromISR is Notify for interrupt context. The result is the wake flag.
func (t *Task) NotifyFromISR(index int, value uint32, action NotifyAction) bool {
	t.checkIndex(index)
	t.mu.Lock()
	ready := t.notifyLocked(index, value, action)
	t.mu.Unlock()
	if ready == nil {
		return false
	}
	woken := t.Priority() > currentPriority()
	ready.signal()
	return woken
}

// NotifyGive increments the word at index, the counting-semaphore give.
func (t *Task) NotifyGive(index int) {
	t.Notify(index, 0, NotifyIncrement)
}

// NotifyWait blocks until the word at index is pending or the timeout
// expires. On success it consumes the pending state and returns the word's
// value as written by the notifier; bits in clearOnExit are then cleared from
// the stored word. On entry to a wait (word not yet pending), bits in
// clearOnEntry are cleared first.
func (t *Task) NotifyWait(index int, clearOnEntry, clearOnExit uint32, timeout Ticks) (uint32, bool) {
	t.checkIndex(index)
	deadline, bounded := deadlineFor(timeout)
	cur := Current()
	entered := false

	for {
		t.mu.Lock()
		wd := &t.words[index]
		if wd.pending {
			wd.pending = false
			value := wd.value
			wd.value &^= clearOnExit
			t.mu.Unlock()
			return value, true
		}
		if timeout == NoWait {
			t.mu.Unlock()
			return 0, false
		}
		if !entered {
			wd.value &^= clearOnEntry
			entered = true
		}
		w := newWaiter(t.Priority())
		wd.waiter = w
		t.mu.Unlock()

		woken := blockOn(cur, w, deadline, bounded)

		t.mu.Lock()
		if wd.waiter == w {
			wd.waiter = nil
		}
		t.mu.Unlock()
		if !woken {
			return 0, false
		}
	}
}

// NotifyTake blocks until the word at index is non-zero or the timeout
// expires, then returns the pre-decrement value. With decrement the word is
// decremented, otherwise it is zeroed — the counting-semaphore take.
func (t *Task) NotifyTake(index int, decrement bool, timeout Ticks) (uint32, bool) {
	t.checkIndex(index)
	deadline, bounded := deadlineFor(timeout)
	cur := Current()

	for {
		t.mu.Lock()
		wd := &t.words[index]
		if wd.value > 0 {
			value := wd.value
			if decrement {
				wd.value--
			} else {
				wd.value = 0
			}
			wd.pending = false
			t.mu.Unlock()
			return value, true
		}
		if timeout == NoWait {
			t.mu.Unlock()
			return 0, false
		}
		w := newWaiter(t.Priority())
		wd.waiter = w
		t.mu.Unlock()

		woken := blockOn(cur, w, deadline, bounded)

		t.mu.Lock()
		if wd.waiter == w {
			wd.waiter = nil
		}
		t.mu.Unlock()
		if !woken {
			return 0, false
		}
	}
}

// NotifyValueClear returns the word at index and clears the bits in mask.
// It never touches the pending state.
func (t *Task) NotifyValueClear(index int, mask uint32) uint32 {
	t.checkIndex(index)
	t.mu.Lock()
	defer t.mu.Unlock()
	wd := &t.words[index]
	value := wd.value
	wd.value &^= mask
	return value
}

// NotifyStateClear marks the word at index not pending and reports whether it
// was pending.
func (t *Task) NotifyStateClear(index int) bool {
	t.checkIndex(index)
	t.mu.Lock()
	defer t.mu.Unlock()
	wd := &t.words[index]
	was := wd.pending
	wd.pending = false
	return was
}

// NotifyClearAll zeroes the word at index and clears its pending state.
func (t *Task) NotifyClearAll(index int) {
	t.NotifyStateClear(index)
	t.NotifyValueClear(index, math.MaxUint32)
}
