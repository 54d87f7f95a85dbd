// Package hal is the only contact point between the demo application and
// the outside world: a small board abstraction with a strip of LEDs and a
// user button. On the host the board is simulated and optionally shown in a
// window; under tinygo it maps to real pins.
package hal

import "errors"

// LED is a single output pin.
type LED interface {
	High()
	Low()
	Toggle()
	IsOn() bool
}

// Board is a panel of LEDs plus one user button. The button does not appear
// here as an input: each platform delivers presses through the callback
// given to its runner, so the application can treat them as interrupts.
type Board interface {
	NumLEDs() int
	LED(i int) LED
}

var ErrNotImplemented = errors.New("not implemented")
