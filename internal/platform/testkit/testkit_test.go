package testkit

import (
	"sync"
	"testing"
	"time"
)

var clockSeam = func() string { return "wall" }

func TestMustPanic(t *testing.T) {
	MustPanic(t, func() { panic("queue index out of range") })
}

func TestMustContain(t *testing.T) {
	MustContain(t, "shift B, 4/5 items", "4/5")
}

func TestSwap_RestoresOnCleanup(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &clockSeam, func() string { return "manual" })
		if clockSeam() != "manual" {
			t.Fatalf("seam not swapped")
		}
	})
	if clockSeam() != "wall" {
		t.Fatalf("seam not restored, got %q", clockSeam())
	}
}

func TestSerial_Excludes(t *testing.T) {
	var mu sync.Mutex
	active, peak := 0, 0
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t.Run("", func(t *testing.T) {
				Serial(t)
				mu.Lock()
				active++
				if active > peak {
					peak = active
				}
				mu.Unlock()
				time.Sleep(5 * time.Millisecond)
				mu.Lock()
				active--
				mu.Unlock()
			})
		}()
	}
	wg.Wait()
	if peak != 1 {
		t.Fatalf("peak concurrency = %d, want 1", peak)
	}
}
