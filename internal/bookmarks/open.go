package bookmarks

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage backends selectable from configuration.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Backends lists the valid backend names.
var Backends = []string{BackendMemory, BackendFile, BackendSQLite}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStorage opens the named backend. path is ignored for memory.
// The returned closer must be closed when the storage is no longer used.
func OpenStorage(backend, path string) (Storage, io.Closer, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryStorage(), nopCloser{}, nil
	case BackendFile:
		if path == "" {
			return nil, nil, fmt.Errorf("file bookmark storage requires a path")
		}
		return NewFileStorage(path), nopCloser{}, nil
	case BackendSQLite:
		if path == "" {
			return nil, nil, fmt.Errorf("sqlite bookmark storage requires a path")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create bookmark database directory: %w", err)
		}
		st, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open bookmark database: %w", err)
		}
		return st, st, nil
	default:
		return nil, nil, fmt.Errorf("unknown bookmark backend %q: must be one of %v", backend, Backends)
	}
}
