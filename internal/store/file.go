package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps one JSON file per kind inside a directory. Writes go to a
// temporary file that is renamed over the target, so readers see either the
// old record or the new one.
type FileStore struct {
	dir string

	// serializes writers; rename already makes each write atomic for readers
	mu sync.Mutex
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file backing kind.
func (s *FileStore) Path(kind Kind) string {
	return filepath.Join(s.dir, kind.fileName())
}

// Read loads and decodes the file for kind.
func (s *FileStore) Read(_ context.Context, kind Kind) (Record, error) {
	if err := checkKind(kind); err != nil {
		return Record{}, err
	}

	raw, err := os.ReadFile(s.Path(kind))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("read %s: %w", kind, err)
	}
	return DecodeRecord(kind, raw)
}

// Write encodes rec and atomically replaces the file for kind.
func (s *FileStore) Write(_ context.Context, kind Kind, rec Record) error {
	raw, err := EncodeRecord(kind, rec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := WriteFileAtomic(s.Path(kind), raw); err != nil {
		return fmt.Errorf("write %s: %w", kind, err)
	}
	return nil
}

// WriteFileAtomic writes data to a temporary file next to path, syncs it and
// renames it over path.
func WriteFileAtomic(path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace: %w", err)
	}
	return nil
}
