// Package filestore provides a whole-file implementation of domain.TaskStore.
// The collection is read and rewritten as a unit, encoded as JSON or YAML.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/runoshun/task-cli/internal/domain"
)

var errOpenLock = errors.New("open lock file")

// Store implements domain.TaskStore using a single file.
type Store struct {
	codec    Codec
	path     string
	lockPath string
}

// New creates a new Store for the given file path and codec.
// The file does not need to exist; it will be created on first write.
func New(path string, codec Codec) *Store {
	return &Store{
		codec:    codec,
		path:     path,
		lockPath: path + ".lock",
	}
}

// NewJSON creates a Store using the JSON codec.
func NewJSON(path string) *Store {
	return New(path, JSONCodec{})
}

// Path returns the storage file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole collection under a shared lock.
func (s *Store) Load(_ context.Context) ([]*domain.Task, error) {
	content, ok, err := s.readFile()
	if err != nil {
		return []*domain.Task{}, fmt.Errorf("%w: %w", domain.ErrStorageRead, err)
	}
	if !ok {
		return []*domain.Task{}, nil
	}

	tasks, err := s.codec.Unmarshal(content)
	if err != nil {
		return []*domain.Task{}, fmt.Errorf("%w: parse store file: %w", domain.ErrStorageRead, err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// ReadDocument reads the stored content as a generic document under a
// shared lock, keeping fields that Load would drop or default.
func (s *Store) ReadDocument(_ context.Context) (any, error) {
	content, ok, err := s.readFile()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageRead, err)
	}
	if !ok {
		return []any{}, nil
	}

	doc, err := s.codec.UnmarshalDocument(content)
	if err != nil {
		return nil, fmt.Errorf("%w: parse store file: %w", domain.ErrStorageRead, err)
	}
	return doc, nil
}

// Save replaces the whole collection under an exclusive lock.
func (s *Store) Save(_ context.Context, tasks []*domain.Task) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}
	defer s.releaseLock(lock)

	if err := s.write(tasks); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}
	return nil
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errOpenLock, err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	if lock == nil {
		return
	}
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// readFile returns the file content, or false when the file does not exist.
// Reads take a shared lock, but proceed unlocked when the lock file cannot
// be opened (e.g. a read-only directory).
func (s *Store) readFile() ([]byte, bool, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}

	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil && !errors.Is(err, errOpenLock) {
		return nil, false, err
	}
	defer s.releaseLock(lock)

	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read store file: %w", err)
	}
	return content, true, nil
}

func (s *Store) write(tasks []*domain.Task) error {
	content, err := s.codec.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Store implements TaskStore and DocumentReader.
var (
	_ domain.TaskStore      = (*Store)(nil)
	_ domain.DocumentReader = (*Store)(nil)
)
