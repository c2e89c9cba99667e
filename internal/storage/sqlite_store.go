package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/carbonquest/carbonquest/internal/constants"
	"github.com/carbonquest/carbonquest/internal/emission"
	"github.com/carbonquest/carbonquest/internal/migration"
	"github.com/carbonquest/carbonquest/internal/models"
	"github.com/carbonquest/carbonquest/migrations"
)

// SQLiteStore is the default provider, one local database file per user.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(initial models.Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed only a fresh database; an existing one keeps its state.
	existing, err := s.LoadSnapshot()
	if err == nil && len(existing.Habits) == 0 && len(existing.Achievements) == 0 {
		return s.SaveSnapshot(initial)
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'carbonquest init' first")
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS).Validate()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string { return s.path }

func (s *SQLiteStore) migrate() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	_, err = migration.NewRunner(s.db, subFS).Apply(nil)
	return err
}

// SaveSnapshot rewrites the full state tree in one transaction. The state is
// tens of rows at most; replacing it wholesale mirrors the engine's
// recompute-from-scratch design and cannot leave partial updates behind.
func (s *SQLiteStore) SaveSnapshot(snap models.Snapshot) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := writeSnapshot(tx, snap); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) LoadSnapshot() (models.Snapshot, error) {
	if s.db == nil {
		return models.Snapshot{}, fmt.Errorf("storage not loaded")
	}
	return readSnapshot(s.db)
}

// querier covers *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func writeSnapshot(q querier, snap models.Snapshot) error {
	for _, table := range []string{"habits", "achievements", "streak", "achievement_history", "totals"} {
		if _, err := q.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, h := range snap.Habits {
		stats, err := json.Marshal(h.Stats)
		if err != nil {
			return fmt.Errorf("failed to serialize stats for habit %s: %w", h.ID, err)
		}
		_, err = q.Exec(`
			INSERT INTO habits (id, title, kind, quantity, frequency, completed, description, category, stats, created_at, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			h.ID, h.Title, string(h.Kind), h.Quantity, string(h.Frequency), h.Completed,
			h.Description, string(h.Category), string(stats), h.CreatedAt.Format(time.RFC3339), i)
		if err != nil {
			return fmt.Errorf("failed to insert habit %s: %w", h.ID, err)
		}
	}

	for i, a := range snap.Achievements {
		var unlockedAt sql.NullString
		if a.UnlockedAt != nil {
			unlockedAt = sql.NullString{String: a.UnlockedAt.Format(time.RFC3339), Valid: true}
		}
		_, err := q.Exec(`
			INSERT INTO achievements (title, description, icon, initial_requirement, requirement, progress, unit, locked, unlocked_at, level, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			a.Title, a.Description, a.Icon, a.InitialRequirement, a.Requirement,
			a.Progress, a.Unit, a.Locked, unlockedAt, a.Level, i)
		if err != nil {
			return fmt.Errorf("failed to insert achievement %s: %w", a.Title, err)
		}
	}

	completed, err := json.Marshal(snap.Streak.CompletedTasks)
	if err != nil {
		return fmt.Errorf("failed to serialize streak tasks: %w", err)
	}
	if snap.Streak.CompletedTasks == nil {
		completed = []byte("[]")
	}
	if _, err := q.Exec(`
		INSERT INTO streak (id, count, last_updated, last_incremented, completed_tasks)
		VALUES (1, $1, $2, $3, $4)`,
		snap.Streak.Count, snap.Streak.LastUpdated, snap.Streak.LastIncremented, string(completed)); err != nil {
		return fmt.Errorf("failed to insert streak: %w", err)
	}

	for _, ev := range snap.History {
		ach, err := json.Marshal(ev.Achievement)
		if err != nil {
			return fmt.Errorf("failed to serialize history snapshot: %w", err)
		}
		if _, err := q.Exec(`
			INSERT INTO achievement_history (achievement, completed_at, level, co2_impact)
			VALUES ($1, $2, $3, $4)`,
			string(ach), ev.CompletedAt.Format(time.RFC3339), ev.Level, ev.CO2Impact); err != nil {
			return fmt.Errorf("failed to insert history entry: %w", err)
		}
	}

	if _, err := q.Exec(`INSERT INTO totals (id, total_co2_saved) VALUES (1, $1)`, snap.TotalCO2Saved); err != nil {
		return fmt.Errorf("failed to insert totals: %w", err)
	}
	return nil
}

func readSnapshot(q querier) (models.Snapshot, error) {
	var snap models.Snapshot

	rows, err := q.Query(`
		SELECT id, title, kind, quantity, frequency, completed, description, category, stats, created_at
		FROM habits ORDER BY position`)
	if err != nil {
		return snap, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var h models.Habit
		var kind, frequency, category, stats, createdAt string
		if err := rows.Scan(&h.ID, &h.Title, &kind, &h.Quantity, &frequency, &h.Completed,
			&h.Description, &category, &stats, &createdAt); err != nil {
			return snap, fmt.Errorf("failed to scan habit: %w", err)
		}
		h.Kind = emission.Activity(kind)
		h.Frequency = constants.Frequency(frequency)
		h.Category = constants.Category(category)
		if err := json.Unmarshal([]byte(stats), &h.Stats); err != nil {
			return snap, fmt.Errorf("failed to parse stats for habit %s: %w", h.ID, err)
		}
		if h.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return snap, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
		}
		snap.Habits = append(snap.Habits, h)
	}
	if err := rows.Err(); err != nil {
		return snap, err
	}

	arows, err := q.Query(`
		SELECT title, description, icon, initial_requirement, requirement, progress, unit, locked, unlocked_at, level
		FROM achievements ORDER BY position`)
	if err != nil {
		return snap, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer arows.Close()
	for arows.Next() {
		var a models.Achievement
		var unlockedAt sql.NullString
		if err := arows.Scan(&a.Title, &a.Description, &a.Icon, &a.InitialRequirement,
			&a.Requirement, &a.Progress, &a.Unit, &a.Locked, &unlockedAt, &a.Level); err != nil {
			return snap, fmt.Errorf("failed to scan achievement: %w", err)
		}
		if unlockedAt.Valid {
			t, err := time.Parse(time.RFC3339, unlockedAt.String)
			if err != nil {
				return snap, fmt.Errorf("failed to parse unlocked_at for %s: %w", a.Title, err)
			}
			a.UnlockedAt = &t
		}
		snap.Achievements = append(snap.Achievements, a)
	}
	if err := arows.Err(); err != nil {
		return snap, err
	}

	var completed string
	err = q.QueryRow(`SELECT count, last_updated, last_incremented, completed_tasks FROM streak WHERE id = 1`).
		Scan(&snap.Streak.Count, &snap.Streak.LastUpdated, &snap.Streak.LastIncremented, &completed)
	if err != nil && err != sql.ErrNoRows {
		return snap, fmt.Errorf("failed to query streak: %w", err)
	}
	if completed != "" {
		if err := json.Unmarshal([]byte(completed), &snap.Streak.CompletedTasks); err != nil {
			return snap, fmt.Errorf("failed to parse streak tasks: %w", err)
		}
	}

	hrows, err := q.Query(`SELECT achievement, completed_at, level, co2_impact FROM achievement_history ORDER BY id`)
	if err != nil {
		return snap, fmt.Errorf("failed to query history: %w", err)
	}
	defer hrows.Close()
	for hrows.Next() {
		var ev models.AchievementEvent
		var ach, completedAt string
		if err := hrows.Scan(&ach, &completedAt, &ev.Level, &ev.CO2Impact); err != nil {
			return snap, fmt.Errorf("failed to scan history entry: %w", err)
		}
		if err := json.Unmarshal([]byte(ach), &ev.Achievement); err != nil {
			return snap, fmt.Errorf("failed to parse history snapshot: %w", err)
		}
		if ev.CompletedAt, err = time.Parse(time.RFC3339, completedAt); err != nil {
			return snap, fmt.Errorf("failed to parse history timestamp: %w", err)
		}
		snap.History = append(snap.History, ev)
	}
	if err := hrows.Err(); err != nil {
		return snap, err
	}

	err = q.QueryRow(`SELECT total_co2_saved FROM totals WHERE id = 1`).Scan(&snap.TotalCO2Saved)
	if err != nil && err != sql.ErrNoRows {
		return snap, fmt.Errorf("failed to query totals: %w", err)
	}
	return snap, nil
}
