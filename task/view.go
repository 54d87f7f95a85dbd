package task

import "quark/kernel"

// view is the part every notification view shares: the owning task's kernel
// handle and the word index the view claims. One index carries one view kind
// for the program's lifetime; the kernel does not police mixing, the program
// layout does.
type view struct {
	t     *kernel.Task
	index int
}

// Clear zeroes the word and drops its pending state.
func (v view) Clear() { v.t.NotifyClearAll(v.index) }

// ClearState drops the pending state without touching the value. Reports
// whether a notification was pending.
func (v view) ClearState() bool { return v.t.NotifyStateClear(v.index) }

// Task returns the owning task's kernel handle.
func (v view) Task() *kernel.Task { return v.t }

// Index returns the notification word index the view is bound to.
func (v view) Index() int { return v.index }
