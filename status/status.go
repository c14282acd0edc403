// Package status is the runtime diagnostics facade: a registry of atomic
// gauges that the runner and renderers write every frame and that demo
// programs or overlays may read without locking.
package status

import "sync/atomic"

// Canonical gauge keys published by the runtime
const (
	KeyFPS           = "engine.fps"
	KeyFrames        = "engine.frames"
	KeyTicksSkipped  = "engine.ticks_skipped"
	KeyCycle         = "engine.cycle"
	KeyRenderer      = "engine.renderer"
	KeyRowsRewritten = "render.rows_rewritten"
	KeyCellsChanged  = "render.cells_changed"
	KeyBytesWritten  = "render.bytes_written"
	KeyLastWarning   = "engine.last_warning"
)

// Registry groups gauges by value type
// Writers cache pointers during init; frame loops write directly to atomics
type Registry struct {
	Ints    *GaugeMap[atomic.Int64]
	Floats  *GaugeMap[Float]
	Strings *GaugeMap[Text]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewGaugeMap[atomic.Int64](),
		Floats:  NewGaugeMap[Float](),
		Strings: NewGaugeMap[Text](),
	}
}

// Count returns total gauges across all types
func (r *Registry) Count() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry
func Default() *Registry {
	return defaultRegistry
}

// Int returns the named int64 gauge from the default registry
func Int(key string) *atomic.Int64 {
	return defaultRegistry.Ints.Get(key)
}

// FloatGauge returns the named float gauge from the default registry
func FloatGauge(key string) *Float {
	return defaultRegistry.Floats.Get(key)
}

// TextGauge returns the named text gauge from the default registry
func TextGauge(key string) *Text {
	return defaultRegistry.Strings.Get(key)
}
