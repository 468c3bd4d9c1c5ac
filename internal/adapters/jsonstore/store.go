// Package jsonstore keeps the task slot as a JSON file on disk.
package jsonstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/tasklist/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.TaskRepository with one file per slot key.
type Store struct {
	path string

	mu     sync.Mutex
	closed bool
}

// New creates a Store for the slot key inside dir. Nothing touches the disk
// until the first Save.
func New(dir, key string) *Store {
	return &Store{path: domain.SlotPath(dir, key)}
}

// Path returns the file backing the slot.
func (s *Store) Path() string {
	return s.path
}

// Load reads the slot. A missing or empty file reports found as false.
func (s *Store) Load(ctx context.Context) ([]domain.Task, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, domain.ErrStoreClosed
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", s.path)
	}

	tasks, found, err := domain.UnmarshalTasks(data)
	if err != nil {
		return nil, false, zerr.With(err, "path", s.path)
	}
	return tasks, found, nil
}

// Save replaces the slot with tasks. The file is written next to its final
// name and renamed into place, so a crash leaves either the old or the new
// collection.
func (s *Store) Save(_ context.Context, tasks []domain.Task) error {
	data, err := domain.MarshalTasks(tasks)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "dir", dir)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	return nil
}

// Close marks the store closed. Later calls fail with ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, domain.FilePerm)
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
