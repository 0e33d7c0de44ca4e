package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// backupLocked copies the current collection file into the backup
// directory under a timestamped name. No existing file means nothing
// to back up. Any other failure aborts the commit: overwriting state
// we could not snapshot is worse than failing the batch.
func (s *Store) backupLocked() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read current collection: %w", err)
	}

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup dir: %w", err)
	}

	name := fmt.Sprintf("jobs-%s.json", s.now().UTC().Format("20060102-150405.000000000"))
	if err := os.WriteFile(filepath.Join(s.backupDir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	s.pruneBackups()
	return nil
}

// pruneBackups removes the oldest snapshots beyond the retention
// count. Best effort: pruning failures never fail a commit.
func (s *Store) pruneBackups() {
	if s.keep <= 0 {
		return
	}

	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		return
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) <= s.keep {
		return
	}

	// Timestamped names sort chronologically.
	sort.Strings(names)
	for _, name := range names[:len(names)-s.keep] {
		_ = os.Remove(filepath.Join(s.backupDir, name))
	}
}

// Backups lists the retained snapshot file names, oldest first.
func (s *Store) Backups() ([]string, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
