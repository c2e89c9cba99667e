package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/carbonquest/carbonquest/internal/models"
)

type jsonFile struct {
	Version  int             `json:"version"`
	Snapshot models.Snapshot `json:"snapshot"`
}

// JSONStore keeps the whole snapshot in a single pretty-printed JSON file.
// It is the zero-dependency fallback and the format used by tests.
type JSONStore struct {
	path string
	file *jsonFile
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init(initial models.Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}
	s.file = &jsonFile{Version: 1, Snapshot: initial}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'carbonquest init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}
	s.file = &jsonFile{}
	if err := json.Unmarshal(data, s.file); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) LoadSnapshot() (models.Snapshot, error) {
	if s.file == nil {
		return models.Snapshot{}, fmt.Errorf("storage not loaded")
	}
	return s.file.Snapshot, nil
}

func (s *JSONStore) SaveSnapshot(snap models.Snapshot) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.file.Snapshot = snap
	return s.save()
}

func (s *JSONStore) GetConfigPath() string { return s.path }
