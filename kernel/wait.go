package kernel

import (
	"sync/atomic"
	"time"
)

const (
	waitPending int32 = iota
	waitWoken
	waitCancelled
)

// waiter parks one blocked operation. Wakers claim it with a state CAS before
// signalling, so a wake and a timeout racing on the same waiter resolve to
// exactly one outcome.
type waiter struct {
	prio  int
	state atomic.Int32
	ch    chan struct{}
}

func newWaiter(prio int) *waiter {
	return &waiter{prio: prio, ch: make(chan struct{}, 1)}
}

// claim marks the waiter as woken. It returns false if the waiter already
// timed out or was aborted.
func (w *waiter) claim() bool {
	return w.state.CompareAndSwap(waitPending, waitWoken)
}

func (w *waiter) signal() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// cancel forces the waiter out early. The blocked call observes this exactly
// as a timeout.
func (w *waiter) cancel() bool {
	if !w.state.CompareAndSwap(waitPending, waitCancelled) {
		return false
	}
	w.signal()
	return true
}

// await parks until woken, cancelled, or past the deadline. It returns true
// only for a genuine wake.
func (w *waiter) await(deadline time.Time, bounded bool) bool {
	if !bounded {
		<-w.ch
		return w.state.Load() == waitWoken
	}

	d := time.Until(deadline)
	if d <= 0 {
		if w.state.CompareAndSwap(waitPending, waitCancelled) {
			return false
		}
		<-w.ch
		return w.state.Load() == waitWoken
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-w.ch:
		return w.state.Load() == waitWoken
	case <-t.C:
		if w.state.CompareAndSwap(waitPending, waitCancelled) {
			return false
		}
		// A waker claimed us between the timer firing and the CAS.
		<-w.ch
		return w.state.Load() == waitWoken
	}
}

// waitq is a priority-ordered list of waiters. Highest priority first, FIFO
// within equal priorities, matching the wake order of the kernel's queues.
type waitq struct {
	list []*waiter
}

func (q *waitq) add(w *waiter) {
	i := len(q.list)
	for i > 0 && q.list[i-1].prio < w.prio {
		i--
	}
	q.list = append(q.list, nil)
	copy(q.list[i+1:], q.list[i:])
	q.list[i] = w
}

func (q *waitq) remove(w *waiter) {
	for i, cand := range q.list {
		if cand == w {
			q.list = append(q.list[:i], q.list[i+1:]...)
			return
		}
	}
}

// popReady removes and returns the first waiter that can still be woken.
func (q *waitq) popReady() *waiter {
	for len(q.list) > 0 {
		w := q.list[0]
		q.list = q.list[1:]
		if w.claim() {
			return w
		}
	}
	return nil
}

func (q *waitq) len() int { return len(q.list) }
