package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
)

// RecentFiles is the most recently used file list, newest first. It is
// stored as TOML at path.
type RecentFiles struct {
	path  string
	Files []string `toml:"files"`
}

// LoadRecentFiles reads the list at path. A missing file gives an empty
// list; path "" gives a list that is never written.
func LoadRecentFiles(path string) (*RecentFiles, error) {
	r := &RecentFiles{path: path}
	if path == "" {
		return r, nil
	}
	if _, err := toml.DecodeFile(path, r); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return r, nil
		}
		return r, fmt.Errorf("failed to read recent files '%s': %w", path, err)
	}
	if len(r.Files) > MaxRecentFiles {
		r.Files = r.Files[:MaxRecentFiles]
	}
	return r, nil
}

// List returns a copy of the entries, newest first.
func (r *RecentFiles) List() []string {
	return slices.Clone(r.Files)
}

// Add moves path to the front, storing it as an absolute path. The list
// keeps at most MaxRecentFiles entries.
func (r *RecentFiles) Add(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	r.Files = slices.DeleteFunc(r.Files, func(f string) bool { return f == path })
	r.Files = append([]string{path}, r.Files...)
	if len(r.Files) > MaxRecentFiles {
		r.Files = r.Files[:MaxRecentFiles]
	}
}

// Remove drops path from the list.
func (r *RecentFiles) Remove(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	r.Files = slices.DeleteFunc(r.Files, func(f string) bool { return f == path })
}

// Save writes the list, creating its directory when needed.
func (r *RecentFiles) Save() error {
	if r.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for recent files: %w", err)
	}
	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("failed to write recent files '%s': %w", r.path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(r); err != nil {
		return fmt.Errorf("failed to encode recent files: %w", err)
	}
	return nil
}
