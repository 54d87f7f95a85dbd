package app

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"quark/kernel"
	"quark/queue"
	"quark/task"
	"quark/ticks"
)

// Messenger periodically feeds the event queue: mostly random cadence
// changes, occasionally a report. It also drains the button press queue the
// interrupt handler fills and turns each press into a report.
type Messenger struct {
	events  *queue.Queue[Event]
	presses *queue.Queue[press]
	period  time.Duration
	logger  *zap.Logger

	sent uint64
}

func (m *Messenger) Run() {
	task.Every(m.period, func() task.ControlFlow {
		m.drainPresses()
		m.send(m.randomEvent())
		return task.Continue
	})
}

func (m *Messenger) drainPresses() {
	for {
		p, ok := m.presses.Receive(kernel.NoWait)
		if !ok {
			return
		}
		m.send(Report{Message: fmt.Sprintf("button pressed at tick %d", p.At)})
	}
}

func (m *Messenger) send(ev Event) {
	// A slow consumer is not worth blocking the cadence for; drop and log.
	if !m.events.Send(ev, ticks.ToTicks(100*time.Millisecond)) {
		m.logger.Warn("event dropped", zap.Stringer("event", ev))
		return
	}
	m.sent++
	m.logger.Debug("event sent", zap.Stringer("event", ev), zap.Uint64("total", m.sent))
}

func (m *Messenger) randomEvent() Event {
	if rand.Intn(4) == 0 {
		return Report{Message: fmt.Sprintf("messenger alive, %d events sent", m.sent)}
	}
	return ChangeTimeout{Timeout: time.Duration(200+rand.Intn(1800)) * time.Millisecond}
}
