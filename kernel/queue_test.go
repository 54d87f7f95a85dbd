package kernel

import (
	"encoding/binary"
	"runtime"
	"sync"
	"testing"
	"time"
)

func slot32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func read32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

func TestQueueReceiveEmptyNoWait(t *testing.T) {
	q := NewQueue(4, 4)
	defer q.Destroy()

	var out [4]byte
	if ok := q.Receive(out[:], NoWait); ok {
		t.Fatalf("Receive() ok = true on empty queue, want false")
	}
}

func TestQueueSendFullNoWait(t *testing.T) {
	const capacity = 4
	q := NewQueue(capacity, 4)
	defer q.Destroy()

	for i := 0; i < capacity; i++ {
		if ok := q.Send(slot32(uint32(i)), NoWait); !ok {
			t.Fatalf("Send() ok = false at slot %d, want true", i)
		}
	}
	if ok := q.Send(slot32(99), NoWait); ok {
		t.Fatalf("Send() ok = true when full, want false")
	}

	if got := q.MessagesWaiting(); got != capacity {
		t.Fatalf("MessagesWaiting() = %d, want %d", got, capacity)
	}
	if got := q.SpacesAvailable(); got != 0 {
		t.Fatalf("SpacesAvailable() = %d, want 0", got)
	}
}

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue(8, 4)
	defer q.Destroy()

	for i := uint32(0); i < 8; i++ {
		q.Send(slot32(i), NoWait)
	}
	var out [4]byte
	for i := uint32(0); i < 8; i++ {
		if ok := q.Receive(out[:], NoWait); !ok {
			t.Fatalf("Receive() ok = false at %d, want true", i)
		}
		if got := read32(out[:]); got != i {
			t.Fatalf("Receive() = %d, want %d", got, i)
		}
	}
}

func TestQueueSendToFrontIsLIFOAtHead(t *testing.T) {
	q := NewQueue(4, 4)
	defer q.Destroy()

	q.Send(slot32(1), NoWait)
	q.Send(slot32(2), NoWait)
	q.SendToFront(slot32(3), NoWait)

	var out [4]byte
	want := []uint32{3, 1, 2}
	for i, w := range want {
		q.Receive(out[:], NoWait)
		if got := read32(out[:]); got != w {
			t.Fatalf("Receive() #%d = %d, want %d", i, got, w)
		}
	}
}

func TestQueuePeekDoesNotPop(t *testing.T) {
	q := NewQueue(2, 4)
	defer q.Destroy()

	q.Send(slot32(7), NoWait)

	var out [4]byte
	for i := 0; i < 2; i++ {
		if ok := q.Peek(out[:], NoWait); !ok {
			t.Fatalf("Peek() #%d ok = false, want true", i)
		}
		if got := read32(out[:]); got != 7 {
			t.Fatalf("Peek() #%d = %d, want 7", i, got)
		}
	}
	if got := q.MessagesWaiting(); got != 1 {
		t.Fatalf("MessagesWaiting() after peeks = %d, want 1", got)
	}
}

func TestQueueOverwriteReplacesNewest(t *testing.T) {
	q := NewQueue(1, 4)
	defer q.Destroy()

	q.Send(slot32(1), NoWait)

	displaced := make([]byte, 4)
	if replaced := q.Overwrite(slot32(2), displaced); !replaced {
		t.Fatalf("Overwrite() replaced = false on full queue, want true")
	}
	if got := read32(displaced); got != 1 {
		t.Fatalf("Overwrite() displaced = %d, want 1", got)
	}

	var out [4]byte
	q.Receive(out[:], NoWait)
	if got := read32(out[:]); got != 2 {
		t.Fatalf("Receive() after overwrite = %d, want 2", got)
	}
}

func TestQueueReceiveTimesOut(t *testing.T) {
	q := NewQueue(1, 4)
	defer q.Destroy()

	var out [4]byte
	start := time.Now()
	if ok := q.Receive(out[:], 20); ok {
		t.Fatalf("Receive() ok = true on empty queue, want false")
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("Receive() returned after %v, want >= 15ms", elapsed)
	}
}

func TestQueueSendWakesBlockedReceiver(t *testing.T) {
	q := NewQueue(1, 4)
	defer q.Destroy()

	got := make(chan uint32, 1)
	go func() {
		var out [4]byte
		if ok := q.Receive(out[:], Forever); ok {
			got <- read32(out[:])
		}
	}()

	time.Sleep(5 * time.Millisecond)
	q.Send(slot32(42), NoWait)

	select {
	case v := <-got:
		if v != 42 {
			t.Fatalf("blocked Receive() = %d, want 42", v)
		}
	case <-time.After(time.Second):
		t.Fatalf("blocked Receive() never woke")
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(2)
	defer runtime.GOMAXPROCS(oldProcs)

	const (
		producers = 4
		perProd   = 2_000
		total     = producers * perProd
	)

	q := NewQueue(8, 4)
	defer q.Destroy()

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(producers)
	for producerID := 0; producerID < producers; producerID++ {
		go func(producerID int) {
			defer wg.Done()
			<-start
			for i := 0; i < perProd; i++ {
				id := uint32(producerID*perProd + i)
				if ok := q.Send(slot32(id), Forever); !ok {
					t.Errorf("Send(%d) ok = false, want true", id)
					return
				}
			}
		}(producerID)
	}
	close(start)

	seen := make([]bool, total)
	var out [4]byte
	for i := 0; i < total; i++ {
		if ok := q.Receive(out[:], Forever); !ok {
			t.Fatalf("Receive() #%d ok = false, want true", i)
		}
		id := read32(out[:])
		if int(id) >= total {
			t.Fatalf("Receive() id = %d, want < %d", id, total)
		}
		if seen[id] {
			t.Fatalf("Receive() duplicate id %d", id)
		}
		seen[id] = true
	}

	wg.Wait()
}

func TestQueueResetDropsContentAndWakesSenders(t *testing.T) {
	q := NewQueue(1, 4)
	defer q.Destroy()

	q.Send(slot32(1), NoWait)

	sent := make(chan bool, 1)
	go func() {
		sent <- q.Send(slot32(2), Forever)
	}()
	time.Sleep(5 * time.Millisecond)

	q.Reset()

	select {
	case ok := <-sent:
		if !ok {
			t.Fatalf("blocked Send() ok = false after Reset, want true")
		}
	case <-time.After(time.Second):
		t.Fatalf("blocked Send() never woke after Reset")
	}

	var out [4]byte
	if ok := q.Receive(out[:], NoWait); !ok {
		t.Fatalf("Receive() ok = false, want the post-reset item")
	}
	if got := read32(out[:]); got != 2 {
		t.Fatalf("Receive() after reset = %d, want 2", got)
	}
}

func TestQueueSendFromISRWakeFlag(t *testing.T) {
	q := NewQueue(1, 4)
	defer q.Destroy()

	// A high-priority receiver blocks on the empty queue.
	ready := make(chan struct{})
	got := make(chan uint32, 1)
	go func() {
		Register("rx", 5)
		defer Unregister()
		close(ready)
		var out [4]byte
		if ok := q.Receive(out[:], Forever); ok {
			got <- read32(out[:])
		}
	}()
	<-ready
	time.Sleep(5 * time.Millisecond)

	// The ISR fires on a plain goroutine (preempted priority 0), so waking
	// the priority-5 receiver must raise the wake flag.
	woken, ok := q.SendFromISR(slot32(9), false)
	if !ok {
		t.Fatalf("SendFromISR() ok = false, want true")
	}
	if !woken {
		t.Fatalf("SendFromISR() woken = false, want true")
	}

	select {
	case v := <-got:
		if v != 9 {
			t.Fatalf("receiver got %d, want 9", v)
		}
	case <-time.After(time.Second):
		t.Fatalf("receiver never woke")
	}

	// Nobody is blocked now: no wake flag.
	woken, ok = q.SendFromISR(slot32(1), false)
	if !ok {
		t.Fatalf("SendFromISR() ok = false on empty queue, want true")
	}
	if woken {
		t.Fatalf("SendFromISR() woken = true with no blocked task, want false")
	}

	woken, ok = q.SendFromISR(slot32(2), false)
	if ok {
		t.Fatalf("SendFromISR() ok = true when full, want false")
	}
	if woken {
		t.Fatalf("SendFromISR() woken = true on failure, want false")
	}
}

func TestQueueHigherPriorityWaiterWakesFirst(t *testing.T) {
	q := NewQueue(1, 4)
	defer q.Destroy()

	type result struct {
		prio int
		v    uint32
	}
	results := make(chan result, 2)
	spawn := func(prio int) chan struct{} {
		ready := make(chan struct{})
		go func() {
			Register("rx", prio)
			defer Unregister()
			close(ready)
			var out [4]byte
			if ok := q.Receive(out[:], Forever); ok {
				results <- result{prio: prio, v: read32(out[:])}
			}
		}()
		return ready
	}

	<-spawn(1)
	time.Sleep(5 * time.Millisecond)
	<-spawn(9)
	time.Sleep(5 * time.Millisecond)

	q.Send(slot32(100), NoWait)

	select {
	case r := <-results:
		if r.prio != 9 {
			t.Fatalf("first wake went to priority %d, want 9", r.prio)
		}
	case <-time.After(time.Second):
		t.Fatalf("no receiver woke")
	}

	q.Send(slot32(200), NoWait)
	select {
	case r := <-results:
		if r.prio != 1 {
			t.Fatalf("second wake went to priority %d, want 1", r.prio)
		}
	case <-time.After(time.Second):
		t.Fatalf("second receiver never woke")
	}
}
