package timer

import (
	"quark/queue/isr"
)

// ISRTimer is the interrupt-context command surface of a Timer. Commands
// are posted to the daemon's queue without waiting; ok is false when the
// queue is full, woken is the wake flag for the handler's exit.
type ISRTimer struct {
	t    *Timer
	cmds *isr.Queue[command]
}

func (i ISRTimer) post(o op) (woken, ok bool) {
	return i.cmds.Send(command{op: o, id: i.t.id})
}

// Start arms the timer from a handler.
func (i ISRTimer) Start() (woken, ok bool) { return i.post(opStart) }

// Stop disarms the timer from a handler.
func (i ISRTimer) Stop() (woken, ok bool) { return i.post(opStop) }

// Reset re-arms the timer for a full period from a handler.
func (i ISRTimer) Reset() (woken, ok bool) { return i.post(opReset) }
