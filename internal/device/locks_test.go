package device

import (
	"sync"
	"testing"
)

func TestLockTable_SerializesSameDevice(t *testing.T) {
	locks := NewLockTable()

	const workers = 8
	const iterations = 200

	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				locks.Lock("printer-a")
				counter++
				locks.Unlock("printer-a")
			}
		}()
	}

	wg.Wait()
	if counter != workers*iterations {
		t.Errorf("counter = %d, want %d", counter, workers*iterations)
	}
}

func TestLockTable_IndependentDevices(t *testing.T) {
	locks := NewLockTable()

	locks.Lock("printer-a")

	// A second device must not block behind the first.
	done := make(chan struct{})
	go func() {
		locks.Lock("printer-b")
		locks.Unlock("printer-b")
		close(done)
	}()

	<-done
	locks.Unlock("printer-a")
}

func TestLockTable_UnlockUnknownDevice(t *testing.T) {
	locks := NewLockTable()
	// Unlocking an ID that was never locked must not panic.
	locks.Unlock("never-seen")
}
