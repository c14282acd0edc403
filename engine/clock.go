package engine

import (
	"sync"
	"time"
)

// Clock is the runner's injectable time source. Separating Now from the
// wait primitive lets tests drive the loop deterministically without a
// real display surface or real sleeps.
type Clock interface {
	// Now returns the current time with monotonic clock reading
	Now() time.Time

	// After returns a channel that delivers a wakeup no earlier than d
	// from now. The runner treats a wakeup as a hint to re-attempt the
	// tick gate, never as an accepted tick.
	After(d time.Duration) <-chan time.Time
}

// SystemClock is the real wall clock
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// After wraps time.After
func (SystemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// MockClock is a controllable time source for tests. Advance moves the
// clock and delivers exactly one wakeup to the waiting runner; the send
// blocks until the runner is ready to receive, which keeps test time
// and loop iterations in lockstep.
type MockClock struct {
	mu   sync.RWMutex
	now  time.Time
	wake chan time.Time
}

// NewMockClock creates a mock clock at the given start time
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{
		now:  start,
		wake: make(chan time.Time),
	}
}

// Now returns the current mocked time
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// After ignores the duration and returns the shared wakeup channel;
// time only moves when the test calls Advance
func (m *MockClock) After(time.Duration) <-chan time.Time {
	return m.wake
}

// SetTime sets the current time without waking the consumer
func (m *MockClock) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d and wakes the waiting consumer.
// Blocks until the consumer receives; only call while a runner (or an
// equivalent consumer) is waiting on After.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	t := m.now
	m.mu.Unlock()

	m.wake <- t
}
