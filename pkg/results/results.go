// Package results accumulates output records per level and owns their
// file form: a JSON object with level-number string keys in ascending
// numeric order, two-space indentation, non-ASCII characters literal, and
// inline markup unescaped. Rewriting the same levels reproduces the same
// bytes, which is what makes resumed runs verifiable.
package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Store holds the level→records map for one output file. R is one of the
// record shapes in models.
type Store[R any] struct {
	path   string
	levels map[int][]R
}

func NewStore[R any](path string) *Store[R] {
	return &Store[R]{path: path, levels: make(map[int][]R)}
}

func (s *Store[R]) Path() string {
	return s.path
}

// Set replaces the records for a level. A nil slice is stored as an empty
// one so intentionally empty levels serialize as [] rather than null.
func (s *Store[R]) Set(level int, records []R) {
	if records == nil {
		records = []R{}
	}
	s.levels[level] = records
}

// Records returns the records stored for a level.
func (s *Store[R]) Records(level int) ([]R, bool) {
	records, ok := s.levels[level]
	return records, ok
}

// Levels returns the stored levels in ascending order.
func (s *Store[R]) Levels() []int {
	levels := make([]int, 0, len(s.levels))
	for level := range s.levels {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	return levels
}

// TotalRecords counts records across all levels.
func (s *Store[R]) TotalRecords() int {
	total := 0
	for _, records := range s.levels {
		total += len(records)
	}
	return total
}

// Load reads the output file back into memory so a resumed run merges new
// levels into prior results instead of replacing them. A missing file is
// an empty store; an unreadable or corrupt file is an error, because
// overwriting a possibly good results file with a fresh one would lose
// completed levels.
func (s *Store[R]) Load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading results %s: %w", s.path, err)
	}

	byLevel := map[string][]R{}
	if err := json.Unmarshal(raw, &byLevel); err != nil {
		return fmt.Errorf("parsing results %s: %w", s.path, err)
	}

	for key, records := range byLevel {
		level, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("results %s: level key %q is not a number", s.path, key)
		}
		s.Set(level, records)
	}
	return nil
}

// Save writes the whole store to the output file through a temp file and
// rename.
func (s *Store[R]) Save() error {
	compact, err := s.encode()
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return fmt.Errorf("formatting results: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating results temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(out.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing results: %w", err)
	}
	// CreateTemp opens the file 0600; widen it so the renamed results
	// file stays readable like a plain write would be.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("setting results permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing results temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing results %s: %w", s.path, err)
	}
	return nil
}

// encode produces the compact document with levels in ascending numeric
// order. encoding/json sorts map keys lexicographically, which would
// interleave levels 1, 10, 11, 2 — so the object is assembled by hand and
// each record list encoded with HTML escaping off.
func (s *Store[R]) encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, level := range s.Levels() {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:", strconv.Itoa(level))

		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(s.levels[level]); err != nil {
			return nil, fmt.Errorf("encoding level %d: %w", level, err)
		}
		// Encode appends a newline that would corrupt the document.
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
