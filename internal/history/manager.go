// Package history persists recent inputs, such as search queries and
// replacement patterns, between sessions.
package history

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Manager loads and saves history lists as TOML files in one directory.
type Manager struct {
	dir string
}

// File is the on-disk shape of a history list.
type File struct {
	Entries []string `toml:"entries"`
}

// NewManager creates dir if needed and returns a manager for it.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// Dir returns the directory the manager writes to.
func (m *Manager) Dir() string {
	return m.dir
}

// Load reads the entries of name. A missing or corrupt file yields no entries.
func (m *Manager) Load(name string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read history %s: %w", name, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return []string{}, nil
	}
	return f.Entries, nil
}

// Save writes entries to name.
func (m *Manager) Save(name string, entries []string) error {
	data, err := toml.Marshal(File{Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write history %s: %w", name, err)
	}
	return nil
}
