package app

import (
	"fmt"
	"time"

	"quark/kernel"
)

// Event is what travels on the demo's main queue. It is an interface on
// purpose: the queue's element type then takes the boxed path, items ride
// the kernel as arena handles.
type Event interface {
	event()
	fmt.Stringer
}

// ChangeTimeout tells the blinker to blink at a new cadence.
type ChangeTimeout struct {
	Timeout time.Duration
}

func (ChangeTimeout) event() {}

func (e ChangeTimeout) String() string {
	return fmt.Sprintf("change-timeout(%v)", e.Timeout)
}

// Report carries a free-form message for the blinker to log.
type Report struct {
	Message string
}

func (Report) event() {}

func (e Report) String() string {
	return fmt.Sprintf("report(%q)", e.Message)
}

// press is the button interrupt's record: a timestamp, nothing else. It is
// inline, so the interrupt handler may queue it.
type press struct {
	At kernel.Ticks
}
