package belllib

import (
	"fmt"
	"os"
	"path/filepath"
)

// BlobKey is the single fixed key the task list is persisted under.
const BlobKey = "tasks"

// BlobStore is the persistence adapter: one opaque blob under one fixed key.
// Load returns (nil, nil) when no prior state exists. Save overwrites the
// prior blob and is idempotent.
type BlobStore interface {
	Load() ([]byte, error)
	Save(blob []byte) error
	Close() error
}

// FileStore persists the blob as a single file on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed blob store, creating the parent
// directory if needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) Load() ([]byte, error) {
	b, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return b, nil
}

func (f *FileStore) Save(blob []byte) error {
	if err := os.WriteFile(f.path, blob, 0644); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }
