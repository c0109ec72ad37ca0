package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// ErrReadOnly is returned when saving a store opened read-only.
var ErrReadOnly = errors.New("document is read-only")

// JSONStore persists a document snapshot as a JSON file.
type JSONStore struct {
	FilePath string
	ReadOnly bool
}

// NewJSONStore creates a new JSON store for the given file path
func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{
		FilePath: filePath,
	}
}

// Load reads the snapshot. A missing file yields an empty snapshot.
func (s *JSONStore) Load() (model.Snapshot, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Snapshot{}, nil
		}
		return model.Snapshot{}, fmt.Errorf("failed to read file: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return snap, nil
}

// Save writes the snapshot, creating the parent directory if needed.
func (s *JSONStore) Save(snap model.Snapshot) error {
	if s.ReadOnly {
		return ErrReadOnly
	}
	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(s.FilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// FileExists checks if the document file exists
func (s *JSONStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}
