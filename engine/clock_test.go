package engine

import (
	"testing"
	"time"
)

func TestMockClockAdvance(t *testing.T) {
	start := time.Unix(100, 0)
	clock := NewMockClock(start)

	if got := clock.Now(); !got.Equal(start) {
		t.Errorf("Now() = %v, want %v", got, start)
	}

	received := make(chan time.Time, 1)
	go func() {
		received <- <-clock.After(time.Second)
	}()

	clock.Advance(250 * time.Millisecond)

	select {
	case got := <-received:
		want := start.Add(250 * time.Millisecond)
		if !got.Equal(want) {
			t.Errorf("wakeup at %v, want %v", got, want)
		}
	case <-time.After(time.Second):
		t.Fatal("Advance did not wake the waiter")
	}

	if got := clock.Now(); !got.Equal(start.Add(250 * time.Millisecond)) {
		t.Errorf("Now() = %v after advance", got)
	}
}

func TestMockClockSetTime(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	clock.SetTime(time.Unix(42, 0))
	if got := clock.Now(); !got.Equal(time.Unix(42, 0)) {
		t.Errorf("Now() = %v after SetTime, want t=42s", got)
	}
}

func TestFPSEstimatorWindows(t *testing.T) {
	var est fpsEstimator
	start := time.Unix(0, 0)

	// 10 ticks spread over the first second, then one tick that closes
	// the window
	for i := 0; i < 10; i++ {
		est.tick(start.Add(time.Duration(i) * 100 * time.Millisecond))
	}
	got := est.tick(start.Add(1100 * time.Millisecond))

	if got < 9 || got > 11 {
		t.Errorf("estimate = %v for 10 ticks/second, want ~10", got)
	}
}
