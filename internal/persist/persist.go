// Package persist writes fleet snapshots to disk as JSON with rotating
// backups, so the service survives restarts without a database.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gofo-dispatch/internal/domain"
)

// FileStore saves and loads snapshots at a fixed path. Each save rotates
// the previous file into numbered backups, keeping the most recent few.
type FileStore struct {
	path    string
	backups int
}

// NewFileStore creates a FileStore. backups is the number of rotated copies
// to keep; zero disables rotation.
func NewFileStore(path string, backups int) *FileStore {
	return &FileStore{path: path, backups: backups}
}

// Save writes the snapshot atomically: marshal to a temp file, rotate the
// previous file into backups, then rename into place.
func (f *FileStore) Save(snap domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	f.rotate()

	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// rotate shifts path → path.bak.1 → path.bak.2 → … dropping anything beyond
// the retention limit. Rotation failures are not fatal to the save.
func (f *FileStore) rotate() {
	if f.backups <= 0 {
		return
	}
	_ = os.Remove(f.backupPath(f.backups))
	for i := f.backups - 1; i >= 1; i-- {
		_ = os.Rename(f.backupPath(i), f.backupPath(i+1))
	}
	_ = os.Rename(f.path, f.backupPath(1))
}

func (f *FileStore) backupPath(n int) string {
	return fmt.Sprintf("%s.bak.%d", f.path, n)
}

// Load reads the most recent readable snapshot: the primary file first,
// then each backup from newest to oldest. A missing primary with no
// backups returns fs.ErrNotExist.
func (f *FileStore) Load() (domain.Snapshot, error) {
	snap, err := f.read(f.path)
	if err == nil {
		return snap, nil
	}

	for i := 1; i <= f.backups; i++ {
		if snap, berr := f.read(f.backupPath(i)); berr == nil {
			return snap, nil
		}
	}
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
}

func (f *FileStore) read(path string) (domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Snapshot{}, err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return snap, nil
}
