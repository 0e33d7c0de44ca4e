// Package file implements the persistence boundary for the job
// collection: read all records, atomically replace all records, and
// write a timestamped backup before every replace.
//
// All mutation paths in the process (ingest, sweep, bulk actions)
// funnel through one Store value, whose mutex makes each
// read-modify-write a single critical section. Writers in OTHER
// processes are not arbitrated: the last full-collection snapshot to
// land wins. Run one writer process, or accept occasional lost
// concurrent updates.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
)

// WriteError wraps any persistence failure during a commit. The batch
// is considered not applied; previously committed state is unchanged
// and the caller should retry the whole batch later.
type WriteError struct {
	Op  string // "backup", "encode", "write", "rename"
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store write failed during %s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Store is a JSON snapshot store for the job collection.
type Store struct {
	mu        sync.Mutex
	path      string
	backupDir string
	keep      int // backups to retain, 0 = keep all
	now       func() time.Time
}

// New creates a Store writing to path. backupDir defaults to a
// "backups" directory next to the collection file. keep limits how
// many snapshots are retained.
func New(path, backupDir string, keep int) *Store {
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(path), "backups")
	}
	return &Store{
		path:      path,
		backupDir: backupDir,
		keep:      keep,
		now:       time.Now,
	}
}

// Load reads the full collection. A missing file is an empty
// collection, not an error.
func (s *Store) Load() ([]*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() ([]*domain.Job, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*domain.Job{}, nil
		}
		return nil, fmt.Errorf("failed to read job collection: %w", err)
	}

	var jobs []*domain.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse job collection: %w", err)
	}
	return jobs, nil
}

// Replace overwrites the whole collection: backup first (fail
// closed), then encode to a temp file and rename over the original so
// readers never observe a partial write.
func (s *Store) Replace(jobs []*domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceLocked(jobs)
}

func (s *Store) replaceLocked(jobs []*domain.Job) error {
	if err := s.backupLocked(); err != nil {
		return &WriteError{Op: "backup", Err: err}
	}

	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return &WriteError{Op: "encode", Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &WriteError{Op: "write", Err: err}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &WriteError{Op: "write", Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		// Best effort: don't leave the temp file behind.
		_ = os.Remove(tmp)
		return &WriteError{Op: "rename", Err: err}
	}

	return nil
}

// Mutate runs fn inside the store's critical section: the persisted
// collection is re-read immediately before fn, and fn's result
// replaces it atomically. fn receives its own copy of the slice and
// may return a modified or entirely new one. If fn returns an error
// the store is left untouched.
func (s *Store) Mutate(fn func(jobs []*domain.Job) ([]*domain.Job, error)) ([]*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := s.loadLocked()
	if err != nil {
		return nil, err
	}

	next, err := fn(jobs)
	if err != nil {
		return nil, err
	}

	if err := s.replaceLocked(next); err != nil {
		return nil, err
	}
	return next, nil
}

// Path returns the collection file path.
func (s *Store) Path() string { return s.path }
