// Package persist provides keyed byte storage for runtime state that
// survives process restarts. Callers treat persistence as best-effort:
// a missing or unreadable record is reported as absent, never as a
// failure that should interrupt the caller.
package persist

import "sync"

// Store is a keyed byte store
type Store interface {
	// Store writes data under key, replacing any previous record
	Store(key string, data []byte) error

	// Restore reads the record under key. The second return is false
	// when no readable record exists.
	Restore(key string) ([]byte, bool)

	// Clear removes the record under key if present
	Clear(key string)
}

// MemStore is an in-memory Store
type MemStore struct {
	mu      sync.Mutex
	records map[string][]byte
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string][]byte)}
}

// Store writes data under key
func (m *MemStore) Store(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	m.records[key] = cp
	return nil
}

// Restore reads the record under key
func (m *MemStore) Restore(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.records[key]
	if !ok {
		return nil, false
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true
}

// Clear removes the record under key
func (m *MemStore) Clear(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
}
