package engine

import "time"

// fpsEstimator measures the observed frame rate over one-second
// windows of accepted ticks
type fpsEstimator struct {
	windowStart time.Time
	frames      int
	value       float64
}

// tick records one accepted frame and returns the current estimate.
// The estimate holds the previous window's rate until a full window
// elapses.
func (e *fpsEstimator) tick(now time.Time) float64 {
	if e.windowStart.IsZero() {
		e.windowStart = now
	}
	e.frames++

	if elapsed := now.Sub(e.windowStart); elapsed >= time.Second {
		e.value = float64(e.frames) / elapsed.Seconds()
		e.windowStart = now
		e.frames = 0
	}
	return e.value
}
