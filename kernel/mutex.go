package kernel

// Mutex is the kernel's mutual-exclusion primitive. Like its semaphores it is
// a queue in disguise: a capacity-1 token queue, where Take receives the
// token and Give returns it. Priority inheritance is not implemented on the
// host port.
type Mutex struct {
	q *Queue
}

// NewMutex creates a mutex in the unlocked state.
func NewMutex() *Mutex {
	return NewMutexNamed("")
}

// NewMutexNamed is NewMutex with a name for kernel introspection.
func NewMutexNamed(name string) *Mutex {
	m := &Mutex{q: NewQueueNamed(name, 1, 1)}
	m.Give()
	return m
}

var mutexToken = []byte{1}

// Take acquires the mutex, waiting up to timeout ticks.
func (m *Mutex) Take(timeout Ticks) bool {
	var slot [1]byte
	return m.q.Receive(slot[:], timeout)
}

// Give releases the mutex. Giving an unheld mutex is a contract violation.
func (m *Mutex) Give() {
	if !m.q.Send(mutexToken, NoWait) {
		Fatalf("mutex %q: give without matching take", m.q.Name())
	}
}

// Destroy releases the mutex's storage. Further operations are contract
// violations.
func (m *Mutex) Destroy() {
	m.q.Destroy()
}
