package app

import (
	"time"

	"go.uber.org/zap"

	"quark/kernel"
	"quark/queue"
	"quark/task"
	"quark/ticks"
)

// Blinky flips its panel group every time the event queue stays quiet for
// its current timeout. Events interrupt the cadence: ChangeTimeout replaces
// it, Report is logged and the blink skipped. The panel task owns the
// actual LEDs; blinky only publishes its state into the grouped word.
type Blinky struct {
	events  *queue.Queue[Event]
	group   uint
	panel   func() task.GroupState[LEDState]
	timeout time.Duration
	logger  *zap.Logger

	on      bool
	toggles uint64
}

func (b *Blinky) Setup() {
	b.logger.Info("blinky up", zap.Duration("timeout", b.timeout))
}

func (b *Blinky) Run() {
	panel := b.panel()
	for {
		ev, ok := b.events.Receive(ticks.ToTicks(b.timeout))
		if !ok {
			b.on = !b.on
			b.toggles++
			panel.Set(b.group, ledStateOf(b.on))
			continue
		}

		switch e := ev.(type) {
		case ChangeTimeout:
			b.logger.Info("blink cadence changed",
				zap.Duration("from", b.timeout),
				zap.Duration("to", e.Timeout))
			b.timeout = e.Timeout
		case Report:
			b.logger.Info("report",
				zap.String("message", e.Message),
				zap.Uint64("toggles", b.toggles))
		default:
			kernel.Fatalf("blinky: unknown event %s", ev)
		}
	}
}

func ledStateOf(on bool) LEDState {
	if on {
		return LEDOn
	}
	return LEDOff
}
