package sema

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"quark/kernel"
)

func TestAccessSeesAndMutatesValue(t *testing.T) {
	p := Create(10)
	defer p.Destroy()

	ok := p.Access(func(v *int) { *v += 5 }, kernel.NoWait)
	if !ok {
		t.Fatalf("Access() = false on an uncontended mutex, want true")
	}

	var got int
	p.AwaitAccess(func(v *int) { got = *v })
	if got != 15 {
		t.Fatalf("value = %d after increment, want 15", got)
	}
}

func TestAccessTimesOutWhileHeld(t *testing.T) {
	p := Create(0)
	defer p.Destroy()

	holding := make(chan struct{})
	release := make(chan struct{})
	go p.AwaitAccess(func(*int) {
		close(holding)
		<-release
	})

	<-holding
	start := time.Now()
	if ok := p.Access(func(*int) {}, 20); ok {
		t.Fatalf("Access() = true while held, want false")
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("Access() returned after %v, want >= 15ms", elapsed)
	}
	close(release)
}

func TestAccessIsMutuallyExclusive(t *testing.T) {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(2))

	p := Create(0)
	defer p.Destroy()

	const workers = 4
	const perWorker = 1000

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < perWorker; j++ {
				p.AwaitAccess(func(v *int) { *v++ })
			}
		}()
	}
	close(start)
	wg.Wait()

	var got int
	p.AwaitAccess(func(v *int) { got = *v })
	if want := workers * perWorker; got != want {
		t.Fatalf("value = %d after %d increments, want %d", got, want, want)
	}
}
