// Package app is the demo application: a blinker and a messenger talking
// over one boxed event queue, an LED panel task mirroring a grouped
// notification word, a heartbeat timer and a button interrupt. It exists to
// exercise every communication surface the module offers on a real board or
// in a host window.
package app

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"quark/hal"
	"quark/kernel"
	"quark/queue"
	"quark/task"
	"quark/ticks"
	"quark/timer"
)

// ButtonISR is the interrupt the board's button raises.
const ButtonISR = "board-button"

// Config tunes the demo. Zero values take the defaults below.
type Config struct {
	BlinkTimeout    time.Duration
	MessengerPeriod time.Duration
	Heartbeat       time.Duration
}

func (c *Config) fillDefaults() {
	if c.BlinkTimeout <= 0 {
		c.BlinkTimeout = 500 * time.Millisecond
	}
	if c.MessengerPeriod <= 0 {
		c.MessengerPeriod = 10 * time.Second
	}
	if c.Heartbeat <= 0 {
		c.Heartbeat = time.Second
	}
}

// eventQueueLength matches the burst the messenger can produce before the
// blinker catches up.
const eventQueueLength = 5

// System is the running demo. Its tasks run until the process exits.
type System struct {
	board  hal.Board
	logger *zap.Logger

	events  *queue.Queue[Event]
	presses *queue.Queue[press]

	panel     *Panel
	panelTask *task.Task
	heartbeat *timer.Timer
	hbOn      bool
}

// New wires and starts the demo on board. A nil logger silences it.
func New(board hal.Board, cfg Config, logger *zap.Logger) *System {
	cfg.fillDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	kernel.SetLogger(logger.Named("kernel"))

	groups := uint(board.NumLEDs())
	if groups < 2 {
		groups = 2
	}

	s := &System{
		board:   board,
		logger:  logger,
		events:  queue.CreateNamed[Event]("events", eventQueueLength),
		presses: queue.CreateNamed[press]("button-presses", 1),
	}

	s.panel = &Panel{board: board, groups: groups, logger: logger.Named("panel")}
	s.panelTask = task.Create(s.panel, "panel", task.WithPriority(3))
	panelView := func() task.GroupState[LEDState] {
		return s.panel.view(s.panelTask.Kernel())
	}

	task.Create(&Blinky{
		events:  s.events,
		group:   0,
		panel:   panelView,
		timeout: cfg.BlinkTimeout,
		logger:  logger.Named("blinky"),
	}, "blinky", task.WithPriority(2))

	task.Create(&Messenger{
		events:  s.events,
		presses: s.presses,
		period:  cfg.MessengerPeriod,
		logger:  logger.Named("messenger"),
	}, "messenger", task.WithPriority(1))

	// The press queue holds one slot: a new press replaces an unconsumed
	// one, the messenger only ever cares about the latest.
	pressQueue := s.presses.ForISR()
	kernel.RegisterISR(ButtonISR, func(*kernel.ISR) {
		woken := pressQueue.Overwrite(press{At: ticks.Now()})
		kernel.YieldFromISR(woken)
	}, nil)

	hbGroup := groups - 1
	s.heartbeat = timer.Create("heartbeat", cfg.Heartbeat, timer.Repeating, func(*timer.Timer) {
		s.hbOn = !s.hbOn
		panelView().Set(hbGroup, ledStateOf(s.hbOn))
	})
	s.heartbeat.AwaitStart()

	logger.Info("demo up",
		zap.Duration("blink_timeout", cfg.BlinkTimeout),
		zap.Duration("messenger_period", cfg.MessengerPeriod),
		zap.Duration("heartbeat", cfg.Heartbeat))
	return s
}

// PressButton simulates the board button, raising the interrupt the way the
// hardware edge would.
func (s *System) PressButton() {
	kernel.Trigger(ButtonISR)
}

// Status is a one-look summary for the window overlay.
func (s *System) Status() string {
	snap := kernel.Stats()
	var sb strings.Builder
	fmt.Fprintf(&sb, "tick %d", snap.Ticks)
	for _, q := range snap.Queues {
		fmt.Fprintf(&sb, "\n%s %d/%d", q.Name, q.Waiting, q.Capacity)
	}
	return sb.String()
}
