package app

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"quark/hal"
	"quark/kernel"
	"quark/queue"
	"quark/task"
	"quark/ticks"
)

func panelOn(t *testing.T, groups uint) (*task.Task, func() task.GroupState[LEDState]) {
	t.Helper()
	p := &Panel{board: hal.NewHostBoard(int(groups), nil), groups: groups, logger: zap.NewNop()}
	pt := task.Create(p, "panel-under-test", task.WithPriority(3))
	return pt, func() task.GroupState[LEDState] { return p.view(pt.Kernel()) }
}

func zapNop() *zap.Logger { return zap.NewNop() }

func TestBlinkyTogglesOnQuietQueue(t *testing.T) {
	events := queue.CreateNamed[Event]("blinky-quiet-events", eventQueueLength)
	_, view := panelOn(t, 2)

	task.Create(&Blinky{
		events:  events,
		group:   0,
		panel:   view,
		timeout: 20 * time.Millisecond,
		logger:  zapNop(),
	}, "blinky-under-test", task.WithPriority(2))

	deadline := time.Now().Add(2 * time.Second)
	var flips int
	last := view().CurrentValues()[0]
	for time.Now().Before(deadline) && flips < 3 {
		time.Sleep(5 * time.Millisecond)
		if cur := view().CurrentValues()[0]; cur != last {
			last = cur
			flips++
		}
	}
	if flips < 3 {
		t.Fatalf("observed %d blink flips, want >= 3", flips)
	}
}

func TestBlinkyStopsBlinkingAfterChangeTimeout(t *testing.T) {
	events := queue.CreateNamed[Event]("blinky-slow-events", eventQueueLength)
	_, view := panelOn(t, 2)

	task.Create(&Blinky{
		events:  events,
		group:   0,
		panel:   view,
		timeout: 10 * time.Millisecond,
		logger:  zapNop(),
	}, "blinky-slowed", task.WithPriority(2))

	events.AwaitSend(ChangeTimeout{Timeout: time.Hour})
	time.Sleep(50 * time.Millisecond)

	before := view().CurrentValues()[0]
	time.Sleep(100 * time.Millisecond)
	if after := view().CurrentValues()[0]; after != before {
		t.Fatalf("blinky still toggling after cadence changed to an hour")
	}
}

func TestMessengerTurnsPressIntoReport(t *testing.T) {
	events := queue.CreateNamed[Event]("press-events", eventQueueLength)
	presses := queue.CreateNamed[press]("press-queue", 1)
	m := &Messenger{events: events, presses: presses, period: time.Hour, logger: zapNop()}

	presses.AwaitSend(press{At: ticks.Now()})
	m.drainPresses()

	ev, ok := events.Receive(kernel.NoWait)
	if !ok {
		t.Fatalf("no event after a press was drained")
	}
	if _, isReport := ev.(Report); !isReport {
		t.Fatalf("drained press produced %T, want Report", ev)
	}
}

func TestMessengerEventsAreWellFormed(t *testing.T) {
	m := &Messenger{logger: zapNop()}
	for i := 0; i < 100; i++ {
		switch ev := m.randomEvent().(type) {
		case ChangeTimeout:
			if ev.Timeout < 200*time.Millisecond || ev.Timeout > 2*time.Second {
				t.Fatalf("ChangeTimeout = %v, want within [200ms, 2s]", ev.Timeout)
			}
		case Report:
			if ev.Message == "" {
				t.Fatalf("Report with empty message")
			}
		default:
			t.Fatalf("unexpected event type %T", ev)
		}
	}
}

func TestSystemButtonInterruptLatchesLatestPress(t *testing.T) {
	board := hal.NewHostBoard(3, nil)
	s := New(board, Config{MessengerPeriod: time.Hour, BlinkTimeout: time.Hour, Heartbeat: time.Hour}, nil)

	s.PressButton()
	s.PressButton()

	if got := s.presses.MessagesWaiting(); got != 1 {
		t.Fatalf("press queue holds %d items after two presses, want the latest only", got)
	}
	p, ok := s.presses.Receive(kernel.NoWait)
	if !ok {
		t.Fatalf("press queue empty after PressButton")
	}
	if p.At > kernel.Now() {
		t.Fatalf("press timestamp %d is in the future (now %d)", p.At, kernel.Now())
	}
}

func TestSystemStatusListsQueues(t *testing.T) {
	// Reuses the system from the test above if ordering ever changes;
	// building a second system is also safe, names may repeat.
	board := hal.NewHostBoard(2, nil)
	s := New(board, Config{MessengerPeriod: time.Hour, BlinkTimeout: time.Hour, Heartbeat: time.Hour}, nil)

	got := s.Status()
	if got == "" {
		t.Fatalf("Status() returned an empty summary")
	}
}
