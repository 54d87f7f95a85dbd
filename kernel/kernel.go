package kernel

import (
	"time"
)

// Ticks counts scheduler ticks. The kernel runs a 1ms timebase, matching
// TickRateHz.
type Ticks uint32

const (
	// TickRateHz is the kernel tick frequency.
	TickRateHz = 1000

	// TickDuration is the wall-clock length of one tick on the host port.
	TickDuration = time.Second / TickRateHz

	// NoWait makes a blocking operation complete or fail immediately.
	NoWait Ticks = 0

	// Forever blocks unboundedly.
	Forever Ticks = ^Ticks(0)
)

var epoch = time.Now()

// Now returns the number of ticks elapsed since the kernel package was
// initialized. The host port derives ticks from wall-clock time instead of
// running a ticker goroutine.
func Now() Ticks {
	return Ticks(time.Since(epoch) / TickDuration)
}

// deadlineFor translates a tick timeout into an absolute host deadline.
// The second result is false for an unbounded wait.
func deadlineFor(timeout Ticks) (time.Time, bool) {
	if timeout == Forever {
		return time.Time{}, false
	}
	return time.Now().Add(time.Duration(timeout) * TickDuration), true
}
