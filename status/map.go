package status

import (
	"sort"
	"sync"
)

// GaugeMap is a thread-safe registry for gauges of type T
// Registration uses a mutex; cached pointer access is lock-free
type GaugeMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewGaugeMap creates an initialized GaugeMap
func NewGaugeMap[T any]() *GaugeMap[T] {
	return &GaugeMap[T]{
		items: make(map[string]*T),
	}
}

// Get returns the gauge pointer for key, creating if absent
// First call for a key allocates; subsequent calls return the cached pointer
func (m *GaugeMap[T]) Get(key string) *T {
	m.mu.RLock()
	if ptr, ok := m.items[key]; ok {
		m.mu.RUnlock()
		return ptr
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if ptr, ok := m.items[key]; ok {
		return ptr
	}

	ptr := new(T)
	m.items[key] = ptr
	return ptr
}

// Range iterates over all gauges in sorted key order
// Callback receives the pointer; caller reads the atomic value from it
func (m *GaugeMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.items) == 0 {
		return
	}

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fn(k, m.items[k])
	}
}

// Count returns the number of registered gauges
func (m *GaugeMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
