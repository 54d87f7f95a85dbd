//go:build tinygo

package hal

import "machine"

// Default wiring for a Pico 2 (RP2350): LED strip on GP2.. plus the
// on-board LED as LED0, user button on GP16 to ground.
var (
	stripPins = []machine.Pin{machine.GP2, machine.GP3, machine.GP4, machine.GP5}
	buttonPin = machine.GP16
)

// TinyBoard is the on-hardware board: the strip maps to real output pins
// and the button raises a pin-change interrupt.
type TinyBoard struct {
	leds []*pinLED
}

// NewTinyBoard configures up to numLEDs pins as the strip. LED0 is always
// the on-board LED.
func NewTinyBoard(numLEDs int) *TinyBoard {
	if numLEDs <= 0 {
		numLEDs = 1
	}

	b := &TinyBoard{}
	pins := append([]machine.Pin{machine.LED}, stripPins...)
	if numLEDs > len(pins) {
		numLEDs = len(pins)
	}
	for _, p := range pins[:numLEDs] {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		b.leds = append(b.leds, &pinLED{pin: p})
	}
	return b
}

// NumLEDs returns the LED count.
func (b *TinyBoard) NumLEDs() int { return len(b.leds) }

// LED returns LED i, or an inert LED for out-of-range indexes.
func (b *TinyBoard) LED(i int) LED {
	if i < 0 || i >= len(b.leds) {
		return noLED{}
	}
	return b.leds[i]
}

// OnButton arms the button pin and calls fn on the falling edge. fn runs in
// interrupt context; it must only use the module's FromISR surfaces.
func (b *TinyBoard) OnButton(fn func()) {
	buttonPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	buttonPin.SetInterrupt(machine.PinFalling, func(machine.Pin) { fn() })
}

type pinLED struct {
	pin machine.Pin
	on  bool
}

func (l *pinLED) High() {
	l.pin.High()
	l.on = true
}

func (l *pinLED) Low() {
	l.pin.Low()
	l.on = false
}

func (l *pinLED) Toggle() {
	if l.on {
		l.Low()
	} else {
		l.High()
	}
}

func (l *pinLED) IsOn() bool { return l.on }

type noLED struct{}

func (noLED) High()      {}
func (noLED) Low()       {}
func (noLED) Toggle()    {}
func (noLED) IsOn() bool { return false }
