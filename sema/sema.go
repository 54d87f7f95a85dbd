// Package sema guards a value behind a kernel mutex. MutexProtected is the
// only way to reach the value: callers pass a function and the mutex is
// held exactly for that function's duration, so a caller cannot forget the
// release or hold the value past it.
package sema

import "quark/kernel"

// MutexProtected pairs a value of T with the kernel mutex that guards it.
// The zero value is invalid; use Create.
type MutexProtected[T any] struct {
	mu    *kernel.Mutex
	value T
}

// Create makes a protected cell holding initial.
func Create[T any](initial T) *MutexProtected[T] {
	return CreateNamed("", initial)
}

// CreateNamed is Create with a name for kernel introspection.
func CreateNamed[T any](name string, initial T) *MutexProtected[T] {
	return &MutexProtected[T]{
		mu:    kernel.NewMutexNamed(name),
		value: initial,
	}
}

// Destroy releases the mutex. Destroying while a task holds the mutex or is
// blocked taking it is a programming error.
func (p *MutexProtected[T]) Destroy() {
	p.mu.Destroy()
	p.mu = nil
}

// Access runs fn with exclusive use of the value, waiting up to timeout for
// the mutex. Reports false, with fn not called, on timeout.
func (p *MutexProtected[T]) Access(fn func(*T), timeout kernel.Ticks) bool {
	if !p.mu.Take(timeout) {
		return false
	}
	defer p.mu.Give()
	fn(&p.value)
	return true
}

// AwaitAccess runs fn with exclusive use of the value, blocking without
// bound for the mutex.
func (p *MutexProtected[T]) AwaitAccess(fn func(*T)) {
	if !p.Access(fn, kernel.Forever) {
		kernel.Fatalf("sema: unbounded mutex take failed")
	}
}
