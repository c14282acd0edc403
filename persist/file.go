package persist

import (
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one JSON file per key under a base directory
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created
// on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// DefaultDir returns the per-user cache directory for app, falling
// back to the working directory when no cache location is available
func DefaultDir(app string) string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, app)
}

// Store writes data under key
func (f *FileStore) Store(key string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(f.filePath(key), data, 0644)
}

// Restore reads the record under key
func (f *FileStore) Restore(key string) ([]byte, bool) {
	data, err := os.ReadFile(f.filePath(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Clear removes the record under key
func (f *FileStore) Clear(key string) {
	os.Remove(f.filePath(key))
}

func (f *FileStore) filePath(key string) string {
	return filepath.Join(f.dir, sanitizeKey(key)+".json")
}

// sanitizeKey maps a key to a safe file name component
func sanitizeKey(key string) string {
	if key == "" {
		return "state"
	}
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
