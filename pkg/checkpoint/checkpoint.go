// Package checkpoint persists the last fully completed level so an
// interrupted run can resume without re-fetching finished levels. The
// checkpoint is written after the results for the same level, and its
// presence is the sole resume signal.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Data is the checkpoint file payload. Readers use only
// LastCompletedLevel; the timestamp records when the level finished.
type Data struct {
	LastCompletedLevel int       `json:"last_completed_level"`
	Timestamp          time.Time `json:"timestamp"`
}

// Store reads and writes one checkpoint file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the last completed level. ok is false when no usable
// checkpoint exists; a non-nil error means the file was present but
// unreadable or corrupt, which callers log and treat as "no checkpoint",
// never as fatal. A checkpoint without a positive level counts as absent.
func (s *Store) Load() (level int, ok bool, err error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading checkpoint %s: %w", s.path, err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return 0, false, fmt.Errorf("parsing checkpoint %s: %w", s.path, err)
	}
	if data.LastCompletedLevel <= 0 {
		return 0, false, nil
	}
	return data.LastCompletedLevel, true, nil
}

// Save overwrites the checkpoint through a temp file and rename, so a
// crash mid-write leaves either the old complete checkpoint or the new
// one, never a torn file.
func (s *Store) Save(level int) error {
	payload, err := json.Marshal(Data{LastCompletedLevel: level, Timestamp: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encoding checkpoint: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating checkpoint temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	// CreateTemp opens the file 0600; widen it so the renamed checkpoint
	// stays readable like a plain write would be.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("setting checkpoint permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing checkpoint temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing checkpoint: %w", err)
	}
	return nil
}

// Clear removes the checkpoint file. Idempotent: an already absent file
// is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing checkpoint %s: %w", s.path, err)
	}
	return nil
}
