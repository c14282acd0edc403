package persist

import (
	"os"
	"path/filepath"
	"testing"
)

// TestMemStoreRoundTrip tests store, restore and clear on the in-memory store
func TestMemStoreRoundTrip(t *testing.T) {
	s := NewMemStore()

	if _, ok := s.Restore("missing"); ok {
		t.Error("Restore on empty store reported a record")
	}

	if err := s.Store("state", []byte(`{"frame":12}`)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	data, ok := s.Restore("state")
	if !ok {
		t.Fatal("Restore found no record after Store")
	}
	if string(data) != `{"frame":12}` {
		t.Errorf("Restore = %q, want %q", data, `{"frame":12}`)
	}

	s.Clear("state")
	if _, ok := s.Restore("state"); ok {
		t.Error("Restore found a record after Clear")
	}
}

// TestMemStoreIsolation tests that stored bytes are not aliased
func TestMemStoreIsolation(t *testing.T) {
	s := NewMemStore()

	src := []byte("abc")
	s.Store("k", src)
	src[0] = 'z'

	data, _ := s.Restore("k")
	if string(data) != "abc" {
		t.Errorf("stored record mutated through caller slice: %q", data)
	}

	data[0] = 'y'
	again, _ := s.Restore("k")
	if string(again) != "abc" {
		t.Errorf("stored record mutated through restored slice: %q", again)
	}
}

// TestFileStoreRoundTrip tests the file-backed store against a temp directory
func TestFileStoreRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := NewFileStore(dir)

	if _, ok := s.Restore("state"); ok {
		t.Error("Restore on empty store reported a record")
	}

	if err := s.Store("state", []byte(`{"time":99.5}`)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	// The record lands as a JSON file under the base directory
	if _, err := os.Stat(filepath.Join(dir, "state.json")); err != nil {
		t.Fatalf("expected state.json on disk: %v", err)
	}

	data, ok := s.Restore("state")
	if !ok {
		t.Fatal("Restore found no record after Store")
	}
	if string(data) != `{"time":99.5}` {
		t.Errorf("Restore = %q, want %q", data, `{"time":99.5}`)
	}

	s.Clear("state")
	if _, ok := s.Restore("state"); ok {
		t.Error("Restore found a record after Clear")
	}
	// Clearing an absent key is a no-op
	s.Clear("state")
}

// TestSanitizeKey tests file name mapping for hostile keys
func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"plasma", "plasma"},
		{"my-demo_v1.2", "my-demo_v1.2"},
		{"../escape", ".._escape"},
		{"a/b\\c", "a_b_c"},
		{"", "state"},
	}

	for _, tt := range tests {
		if got := sanitizeKey(tt.key); got != tt.want {
			t.Errorf("sanitizeKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

// TestDefaultDir tests that the default directory ends with the app name
func TestDefaultDir(t *testing.T) {
	dir := DefaultDir("runic")
	if filepath.Base(dir) != "runic" {
		t.Errorf("DefaultDir = %q, want base %q", dir, "runic")
	}
}
