package kernel

import (
	"runtime"
	"sync"
)

// ISR is the context handed to an interrupt handler. It carries the user data
// registered alongside the handler, so handlers recover their state through
// the registration mechanism instead of package-level singletons.
type ISR struct {
	name string
	data any
}

// Name returns the interrupt's registration name.
func (i *ISR) Name() string { return i.name }

// Data returns the user data registered with the handler.
func (i *ISR) Data() any { return i.data }

// ISRFunc is an interrupt handler body. It must never block; the only
// kernel operations legal inside it are the FromISR variants.
type ISRFunc func(*ISR)

type isrEntry struct {
	fn   ISRFunc
	data any
}

var (
	isrMu  sync.Mutex
	isrTab = make(map[string]isrEntry)
)

// RegisterISR installs an interrupt handler under name, with a user data slot
// the handler can retrieve via ISR.Data. Re-registering a name replaces the
// previous handler.
func RegisterISR(name string, fn ISRFunc, data any) {
	if fn == nil {
		Fatalf("nil handler for interrupt %q", name)
	}
	isrMu.Lock()
	isrTab[name] = isrEntry{fn: fn, data: data}
	isrMu.Unlock()
}

// UnregisterISR removes an interrupt handler.
func UnregisterISR(name string) {
	isrMu.Lock()
	delete(isrTab, name)
	isrMu.Unlock()
}

// Trigger fires the interrupt registered under name on the calling
// goroutine, emulating a hardware interrupt preempting the current task. It
// reports whether a handler was registered.
func Trigger(name string) bool {
	isrMu.Lock()
	e, ok := isrTab[name]
	isrMu.Unlock()
	if !ok {
		return false
	}
	e.fn(&ISR{name: name, data: e.data})
	return true
}

// YieldFromISR requests a context switch when any of the accumulated wake
// flags is set. Call it last, after all interrupt work is done. With no
// arguments the switch is requested unconditionally.
func YieldFromISR(woken ...bool) {
	if len(woken) == 0 {
		runtime.Gosched()
		return
	}
	for _, w := range woken {
		if w {
			runtime.Gosched()
			return
		}
	}
}
