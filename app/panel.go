package app

import (
	"go.uber.org/zap"

	"quark/hal"
	"quark/kernel"
	"quark/task"
)

// LEDState is one LED's value in the panel's grouped notification word.
type LEDState uint8

const (
	LEDOff LEDState = iota
	LEDOn
)

// panelNotifyIndex is the notification word the panel task dedicates to its
// grouped LED state.
const panelNotifyIndex = 0

// Panel owns the grouped notification word that mirrors the LED strip.
// Producers set their group; the panel wakes on each write and drives the
// board. Only the newest word matters, so a burst of writes between wakes
// collapses instead of queueing.
type Panel struct {
	board  hal.Board
	groups uint
	logger *zap.Logger
}

func (p *Panel) Run() {
	g := task.NewGroupState[LEDState](kernel.Current(), panelNotifyIndex, 2, p.groups)
	for {
		states := g.AwaitGet()
		for i, s := range states {
			led := p.board.LED(i)
			if s == LEDOn {
				led.High()
			} else {
				led.Low()
			}
		}
		p.logger.Debug("panel refreshed", zap.Int("groups", len(states)))
	}
}

// view builds a producer-side handle to the panel task's grouped word.
func (p *Panel) view(t *kernel.Task) task.GroupState[LEDState] {
	return task.NewGroupState[LEDState](t, panelNotifyIndex, 2, p.groups)
}
