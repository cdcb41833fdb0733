// Package scratch keeps a single piece of editor text outside the record
// store. The slot holds at most one value; every save replaces it.
package scratch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Slot is a named text value persisted in one file.
type Slot struct {
	path string
}

// New returns a slot stored at path. The file is created on first Save.
func New(path string) *Slot {
	return &Slot{path: path}
}

// Path returns the backing file location.
func (s *Slot) Path() string {
	return s.path
}

// Save replaces the slot content with text. The write goes to a temporary
// file that is renamed over the old one, so readers see either the previous
// or the new value.
func (s *Slot) Save(text string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("save slot: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".slot-*")
	if err != nil {
		return fmt.Errorf("save slot: %w", err)
	}
	defer os.Remove(tmp.Name()) // No-op after a successful rename

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("save slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save slot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save slot: %w", err)
	}
	return nil
}

// Load returns the saved text. ok is false when nothing has been saved.
// An empty saved value also reports ok == false.
func (s *Slot) Load() (text string, ok bool, err error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load slot: %w", err)
	}
	if len(data) == 0 {
		return "", false, nil
	}
	return string(data), true, nil
}

// Clear removes the saved value, if any.
func (s *Slot) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear slot: %w", err)
	}
	return nil
}
