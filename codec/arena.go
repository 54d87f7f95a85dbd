package codec

import "sync"

// Handle addresses one boxed item in an Arena. Zero is never a valid handle.
type Handle uint32

// Arena owns boxed items while they are in flight through a kernel queue.
// It is a slot array with a free list; handles are 1-based slot indexes.
type Arena[T any] struct {
	mu      sync.Mutex
	entries []arenaEntry[T]
	free    []Handle
	live    int
	limit   int
}

type arenaEntry[T any] struct {
	value T
	valid bool
}

// NewArena creates an empty arena with no allocation limit.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{
		entries: make([]arenaEntry[T], 0, 8),
	}
}

// SetLimit caps the number of simultaneously live entries; Put fails beyond
// it. A limit of 0 removes the cap. This is how allocation exhaustion is
// exercised on a host where real allocation does not fail.
func (a *Arena[T]) SetLimit(n int) {
	a.mu.Lock()
	a.limit = n
	a.mu.Unlock()
}

// Put stores value and returns its handle. A false result means the arena is
// at its limit; nothing is retained.
func (a *Arena[T]) Put(value T) (Handle, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.limit > 0 && a.live >= a.limit {
		return 0, false
	}
	a.live++

	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.entries[h-1] = arenaEntry[T]{value: value, valid: true}
		return h, true
	}

	a.entries = append(a.entries, arenaEntry[T]{value: value, valid: true})
	return Handle(len(a.entries)), true
}

// Take removes and returns the value for h.
func (a *Arena[T]) Take(h Handle) (T, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.entryAt(h)
	if !ok {
		var zero T
		return zero, false
	}
	value := e.value
	// Zero the vacated slot so it holds no hidden reference.
	*e = arenaEntry[T]{}
	a.free = append(a.free, h)
	a.live--
	return value, true
}

// Get returns the value for h without releasing it.
func (a *Arena[T]) Get(h Handle) (T, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.entryAt(h)
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Drop releases the entry for h, discarding its value.
func (a *Arena[T]) Drop(h Handle) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.entryAt(h)
	if !ok {
		return false
	}
	*e = arenaEntry[T]{}
	a.free = append(a.free, h)
	a.live--
	return true
}

// Len returns the number of live entries.
func (a *Arena[T]) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.live
}

func (a *Arena[T]) entryAt(h Handle) (*arenaEntry[T], bool) {
	if h == 0 || int(h) > len(a.entries) {
		return nil, false
	}
	e := &a.entries[h-1]
	if !e.valid {
		return nil, false
	}
	return e, true
}
