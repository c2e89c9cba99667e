package storage

import "github.com/carbonquest/carbonquest/internal/models"

// Provider persists and restores the engine's state tree. All three
// implementations (JSON file, SQLite, PostgreSQL) store the same snapshot
// shape; the engine itself never touches a database.
type Provider interface {
	// Init creates the backing store and writes the given initial snapshot.
	Init(initial models.Snapshot) error
	// Load opens an existing store.
	Load() error
	Close() error

	LoadSnapshot() (models.Snapshot, error)
	SaveSnapshot(models.Snapshot) error

	GetConfigPath() string
}
