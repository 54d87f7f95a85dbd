// Package ticks converts between wall-clock durations and the kernel's native
// tick count. Every user-facing timeout parameter in this module goes through
// ToTicks: the duration is rounded to the closest representable tick, and
// anything too large to represent saturates to Forever instead of overflowing.
package ticks

import (
	"math"
	"time"

	"quark/kernel"
)

// Forever marks a wait with no bound. Any duration at or above it converts to
// kernel.Forever.
const Forever = time.Duration(math.MaxInt64)

// NoWait makes an operation complete or fail without blocking.
const NoWait = time.Duration(0)

// ToTicks converts an arbitrary duration to kernel ticks. Durations at or
// below zero convert to kernel.NoWait; durations at or above Forever, or too
// large for the tick counter, convert to kernel.Forever.
func ToTicks(d time.Duration) kernel.Ticks {
	if d <= 0 {
		return kernel.NoWait
	}
	if d >= Forever {
		return kernel.Forever
	}
	t := (d + kernel.TickDuration/2) / kernel.TickDuration
	if t >= time.Duration(kernel.Forever) {
		return kernel.Forever
	}
	return kernel.Ticks(t)
}

// Duration converts a tick count back to a wall-clock duration. Forever maps
// to the Forever sentinel.
func Duration(t kernel.Ticks) time.Duration {
	if t == kernel.Forever {
		return Forever
	}
	return time.Duration(t) * kernel.TickDuration
}

// Now returns the ticks elapsed since the scheduler started.
func Now() kernel.Ticks {
	return kernel.Now()
}
