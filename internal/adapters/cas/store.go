// Package cas stores per-target build records next to the targets they describe.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildRecordStore = (*Store)(nil)

// Store implements ports.BuildRecordStore with one JSON file per target,
// named by prefixing the target's file name with ".redo.".
type Store struct {
	mu    sync.RWMutex
	cache map[string]domain.BuildRecord
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{
		cache: make(map[string]domain.BuildRecord),
	}
}

// Get retrieves the record for a target. Returns nil, nil if none exists.
func (s *Store) Get(target domain.Target) (*domain.BuildRecord, error) {
	path := target.RecordPath()

	s.mu.RLock()
	rec, ok := s.cache[path]
	s.mu.RUnlock()
	if ok {
		return &rec, nil
	}

	//nolint:gosec // Path is derived from the resolved target
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrStoreReadFailed, err), "read failed"), "path", path)
	}

	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrStoreUnmarshalFailed, err), "decode failed"), "path", path)
	}

	s.mu.Lock()
	s.cache[path] = rec
	s.mu.Unlock()
	return &rec, nil
}

// Put stores the record for a target, replacing the file atomically.
func (s *Store) Put(target domain.Target, rec *domain.BuildRecord) error {
	path := target.RecordPath()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrStoreMarshalFailed, err), "encode failed"), "path", path)
	}

	if err := writeFileAtomic(path, data); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrStoreWriteFailed, err), "write failed"), "path", path)
	}

	s.mu.Lock()
	s.cache[path] = *rec
	s.mu.Unlock()
	return nil
}

// writeFileAtomic writes data through a scratch file in the same directory
// so readers never observe a partial record.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), domain.ScratchPrefix+"*.json")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, domain.FilePerm); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
