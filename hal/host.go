//go:build !tinygo

package hal

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// HostBoard simulates a board on a development machine. LED levels live in
// memory; transitions are logged and, when a window is open, drawn.
type HostBoard struct {
	logger *zap.Logger
	leds   []*hostLED
	gpio   GPIO
}

// NewHostBoard makes a simulated board with numLEDs LEDs. A nil logger
// silences transition logging.
func NewHostBoard(numLEDs int, logger *zap.Logger) *HostBoard {
	if numLEDs <= 0 {
		numLEDs = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &HostBoard{logger: logger}
	pins := make([]GPIOPin, 0, numLEDs)
	for i := 0; i < numLEDs; i++ {
		led := &hostLED{name: fmt.Sprintf("LED%d", i), logger: logger}
		b.leds = append(b.leds, led)
		pins = append(pins, newLEDPin(led.name, led))
	}
	b.gpio = newVirtualGPIO(pins)
	return b
}

// NumLEDs returns the LED count.
func (b *HostBoard) NumLEDs() int { return len(b.leds) }

// LED returns LED i. Out-of-range indexes return a no-op LED so demo code
// indexed by configuration cannot crash the board.
func (b *HostBoard) LED(i int) LED {
	if i < 0 || i >= len(b.leds) {
		return nullLED{}
	}
	return b.leds[i]
}

// GPIO exposes the LED strip as generic pins, for code that drives outputs
// by pin id instead of through the LED interface.
func (b *HostBoard) GPIO() GPIO { return b.gpio }

// levels snapshots every LED, for the window and the headless ticker.
func (b *HostBoard) levels() []bool {
	out := make([]bool, len(b.leds))
	for i, l := range b.leds {
		out[i] = l.IsOn()
	}
	return out
}

type hostLED struct {
	mu     sync.Mutex
	name   string
	on     bool
	logger *zap.Logger
}

func (l *hostLED) High()   { l.set(true) }
func (l *hostLED) Low()    { l.set(false) }
func (l *hostLED) Toggle() {
	l.mu.Lock()
	on := !l.on
	l.on = on
	l.mu.Unlock()
	l.logger.Debug("led", zap.String("name", l.name), zap.Bool("on", on))
}

func (l *hostLED) IsOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

func (l *hostLED) set(on bool) {
	l.mu.Lock()
	changed := l.on != on
	l.on = on
	l.mu.Unlock()
	if changed {
		l.logger.Debug("led", zap.String("name", l.name), zap.Bool("on", on))
	}
}

type nullLED struct{}

func (nullLED) High()      {}
func (nullLED) Low()       {}
func (nullLED) Toggle()    {}
func (nullLED) IsOn() bool { return false }
