// Package timer provides software timers serviced by a single daemon task.
// Commands do not touch timer state directly: Start, Stop, Reset, change of
// period and deletion are messages on the daemon's command queue, and the
// blocking behavior of each call is the queue send's. Callbacks run on the
// daemon task, so one misbehaving callback stalls every timer; callbacks
// must not block.
package timer

import (
	"sync"
	"sync/atomic"
	"time"

	"quark/kernel"
	"quark/queue"
	"quark/task"
	"quark/ticks"
)

// Mode selects what happens after a timer fires.
type Mode uint8

const (
	// Repeating re-arms the timer for another period after each fire.
	Repeating Mode = iota
	// SingleShot leaves the timer dormant after firing once; Start or
	// Reset arms it again.
	SingleShot
	// SelfDestructive fires once and then deletes itself.
	SelfDestructive
)

// Func is a timer callback. It runs on the daemon task.
type Func func(*Timer)

// Timer is a software timer. The zero value is invalid; use Create.
type Timer struct {
	name   string
	mode   Mode
	fn     Func
	id     uint32
	active atomic.Bool

	// Daemon-owned. Other goroutines reach these through commands only.
	period   time.Duration
	deadline time.Time
}

type op uint8

const (
	opStart op = iota
	opStop
	opReset
	opChangePeriod
	opDelete
)

type command struct {
	op     op
	id     uint32
	period time.Duration
}

// DaemonPriority is the timer daemon task's priority. It sits above typical
// collaborators so expiry processing is not starved by them.
const DaemonPriority = 8

const commandQueueLength = 16

var daemon struct {
	once   sync.Once
	cmds   *queue.Queue[command]
	mu     sync.Mutex
	timers map[uint32]*Timer
	nextID uint32
}

func daemonQueue() *queue.Queue[command] {
	daemon.once.Do(func() {
		daemon.timers = make(map[uint32]*Timer)
		daemon.cmds = queue.CreateNamed[command]("timer-daemon", commandQueueLength)
		task.Create(daemonLoop{}, "timer-daemon", task.WithPriority(DaemonPriority))
	})
	return daemon.cmds
}

// Create makes a dormant timer. The period must be positive; the callback
// runs on the daemon task each time the timer expires.
func Create(name string, period time.Duration, mode Mode, fn Func) *Timer {
	if period <= 0 {
		kernel.Fatalf("timer %q: period %v must be positive", name, period)
	}
	if fn == nil {
		kernel.Fatalf("timer %q: nil callback", name)
	}
	daemonQueue()

	t := &Timer{name: name, mode: mode, fn: fn, period: period}
	daemon.mu.Lock()
	daemon.nextID++
	t.id = daemon.nextID
	daemon.timers[t.id] = t
	daemon.mu.Unlock()
	return t
}

// Name returns the timer's name.
func (t *Timer) Name() string { return t.name }

// IsActive reports whether the timer is armed. It trails commands still in
// the daemon's queue.
func (t *Timer) IsActive() bool { return t.active.Load() }

func (t *Timer) post(o op, period time.Duration, timeout kernel.Ticks) bool {
	return daemonQueue().Send(command{op: o, id: t.id, period: period}, timeout)
}

// Start arms the timer for one full period from when the daemon processes
// the command. Reports false if the command queue stayed full past timeout.
func (t *Timer) Start(timeout kernel.Ticks) bool {
	return t.post(opStart, 0, timeout)
}

// AwaitStart is Start with an unbounded wait for queue space.
func (t *Timer) AwaitStart() { t.mustPost(opStart, 0) }

// Stop disarms the timer. A fire already in progress still completes.
func (t *Timer) Stop(timeout kernel.Ticks) bool {
	return t.post(opStop, 0, timeout)
}

// AwaitStop is Stop with an unbounded wait for queue space.
func (t *Timer) AwaitStop() { t.mustPost(opStop, 0) }

// Reset re-arms the timer for a full period from when the daemon processes
// the command, starting it if it was dormant.
func (t *Timer) Reset(timeout kernel.Ticks) bool {
	return t.post(opReset, 0, timeout)
}

// AwaitReset is Reset with an unbounded wait for queue space.
func (t *Timer) AwaitReset() { t.mustPost(opReset, 0) }

// ChangePeriod sets a new period and re-arms the timer with it.
func (t *Timer) ChangePeriod(period time.Duration, timeout kernel.Ticks) bool {
	if period <= 0 {
		kernel.Fatalf("timer %q: period %v must be positive", t.name, period)
	}
	return t.post(opChangePeriod, period, timeout)
}

// AwaitChangePeriod is ChangePeriod with an unbounded wait for queue space.
func (t *Timer) AwaitChangePeriod(period time.Duration) {
	if period <= 0 {
		kernel.Fatalf("timer %q: period %v must be positive", t.name, period)
	}
	t.mustPost(opChangePeriod, period)
}

// Delete disarms the timer and removes it from the daemon. The handle is
// dead once the command is processed.
func (t *Timer) Delete(timeout kernel.Ticks) bool {
	return t.post(opDelete, 0, timeout)
}

// AwaitDelete is Delete with an unbounded wait for queue space.
func (t *Timer) AwaitDelete() { t.mustPost(opDelete, 0) }

func (t *Timer) mustPost(o op, period time.Duration) {
	if !t.post(o, period, kernel.Forever) {
		kernel.Fatalf("timer %q: unbounded command send failed", t.name)
	}
}

// ForISR derives the interrupt-context command surface for this timer.
func (t *Timer) ForISR() ISRTimer {
	return ISRTimer{t: t, cmds: daemonQueue().ForISR()}
}

type daemonLoop struct{}

func (daemonLoop) Run() {
	for {
		cmd, ok := daemon.cmds.Receive(nextTimeout())
		if ok {
			apply(cmd)
		}
		fireDue()
	}
}

// nextTimeout is how long the daemon may sleep before a timer is due.
func nextTimeout() kernel.Ticks {
	daemon.mu.Lock()
	defer daemon.mu.Unlock()

	var soonest time.Time
	for _, t := range daemon.timers {
		if !t.active.Load() {
			continue
		}
		if soonest.IsZero() || t.deadline.Before(soonest) {
			soonest = t.deadline
		}
	}
	if soonest.IsZero() {
		return kernel.Forever
	}
	remaining := time.Until(soonest)
	if remaining <= 0 {
		return kernel.NoWait
	}
	tt := ticks.ToTicks(remaining)
	if tt == kernel.NoWait {
		tt = 1
	}
	return tt
}

func apply(cmd command) {
	daemon.mu.Lock()
	t := daemon.timers[cmd.id]
	if t == nil {
		// Deleted while the command sat in the queue.
		daemon.mu.Unlock()
		return
	}
	switch cmd.op {
	case opStart, opReset:
		t.deadline = time.Now().Add(t.period)
		t.active.Store(true)
	case opStop:
		t.active.Store(false)
	case opChangePeriod:
		t.period = cmd.period
		t.deadline = time.Now().Add(t.period)
		t.active.Store(true)
	case opDelete:
		t.active.Store(false)
		delete(daemon.timers, cmd.id)
	}
	daemon.mu.Unlock()
}

func fireDue() {
	now := time.Now()

	daemon.mu.Lock()
	var due []*Timer
	for _, t := range daemon.timers {
		if t.active.Load() && !t.deadline.After(now) {
			due = append(due, t)
		}
	}
	for _, t := range due {
		switch t.mode {
		case Repeating:
			t.deadline = t.deadline.Add(t.period)
		case SingleShot:
			t.active.Store(false)
		case SelfDestructive:
			t.active.Store(false)
			delete(daemon.timers, t.id)
		}
	}
	daemon.mu.Unlock()

	// Callbacks run outside the registry lock so they may post commands.
	for _, t := range due {
		t.fn(t)
	}
}
