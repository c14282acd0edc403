package status

import (
	"math"
	"sync/atomic"
)

// Float provides atomic float64 operations using bit conversion
// Zero value is ready to use (represents 0.0)
type Float struct {
	bits atomic.Uint64
}

// Set stores a float64 value atomically
func (f *Float) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the float64 value atomically
func (f *Float) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add atomically adds delta to the current value and returns the new value
func (f *Float) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		newVal := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(newVal)) {
			return newVal
		}
	}
}

// MaxTextLen is the maximum length for atomic text values
const MaxTextLen = 64

// Text provides atomic string access with fixed max length
// Zero value is ready to use (represents the empty string)
type Text struct {
	ptr atomic.Pointer[string]
}

// Store sets the text value, truncating to MaxTextLen
func (t *Text) Store(val string) {
	if len(val) > MaxTextLen {
		val = val[:MaxTextLen]
	}
	t.ptr.Store(&val)
}

// Load returns the current text value
func (t *Text) Load() string {
	if p := t.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
