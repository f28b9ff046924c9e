// Package storage provides SQLite-based persistence for pet history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/jsgotchi/internal/pet"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for pet history.
type Store struct {
	db *sql.DB
}

// PetRecord is a registered pet.
type PetRecord struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// FrameworkRecord is one completed framework.
type FrameworkRecord struct {
	ID        int64
	PetID     string
	Number    int64
	Quality   int
	State     string
	Level     int
	CreatedAt time.Time
}

// LevelUpRecord is one level gained.
type LevelUpRecord struct {
	ID        int64
	PetID     string
	Level     int
	State     string
	CreatedAt time.Time
}

// PetLevel is a leaderboard row: the highest level a pet reached.
type PetLevel struct {
	PetID     string
	Name      string
	Level     int
	ReachedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS pets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS frameworks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pet_id TEXT NOT NULL REFERENCES pets(id),
			number INTEGER NOT NULL,
			quality INTEGER NOT NULL,
			state TEXT NOT NULL,
			level INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_frameworks_pet ON frameworks(pet_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS level_ups (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pet_id TEXT NOT NULL REFERENCES pets(id),
			level INTEGER NOT NULL,
			state TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_level_ups_pet ON level_ups(pet_id, level DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RegisterPet records a pet. Registering an existing ID updates its name.
func (s *Store) RegisterPet(id, name string) error {
	_, err := s.db.Exec(
		`INSERT INTO pets (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		id, name,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot register pet: %w", err)
	}
	return nil
}

// Pet returns a registered pet, or nil if unknown.
func (s *Store) Pet(id string) (*PetRecord, error) {
	var p PetRecord
	var createdAt any
	err := s.db.QueryRow(
		"SELECT id, name, created_at FROM pets WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pet: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}

// SaveFramework records a completed framework.
// Returns the ID of the inserted record.
func (s *Store) SaveFramework(r FrameworkRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO frameworks (pet_id, number, quality, state, level, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.PetID, r.Number, r.Quality, r.State, r.Level, formatTime(r.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save framework: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SaveLevelUp records a level gained.
// Returns the ID of the inserted record.
func (s *Store) SaveLevelUp(r LevelUpRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO level_ups (pet_id, level, state, created_at) VALUES (?, ?, ?, ?)`,
		r.PetID, r.Level, r.State, formatTime(r.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level up: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecordEvent stores the events worth keeping and ignores the rest.
func (s *Store) RecordEvent(petID string, e pet.Event) error {
	switch e.Kind {
	case pet.EventFrameworkCompleted:
		_, err := s.SaveFramework(FrameworkRecord{
			PetID:     petID,
			Number:    e.Framework,
			Quality:   e.Quality,
			State:     e.State.String(),
			Level:     e.Level,
			CreatedAt: e.At,
		})
		return err
	case pet.EventLevelUp:
		_, err := s.SaveLevelUp(LevelUpRecord{
			PetID:     petID,
			Level:     e.Level,
			State:     e.State.String(),
			CreatedAt: e.At,
		})
		return err
	}
	return nil
}

// RecentFrameworks retrieves the most recent frameworks of a pet, newest first.
func (s *Store) RecentFrameworks(petID string, limit int) ([]FrameworkRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, pet_id, number, quality, state, level, created_at
		 FROM frameworks
		 WHERE pet_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		petID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query frameworks: %w", err)
	}
	defer rows.Close()

	var records []FrameworkRecord
	for rows.Next() {
		var r FrameworkRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.PetID, &r.Number, &r.Quality, &r.State, &r.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// TopLevels retrieves the pets that reached the highest levels.
func (s *Store) TopLevels(limit int) ([]PetLevel, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT p.id, p.name, MAX(l.level), MIN(l.created_at)
		 FROM level_ups l
		 JOIN pets p ON p.id = l.pet_id
		 WHERE l.level = (SELECT MAX(level) FROM level_ups WHERE pet_id = l.pet_id)
		 GROUP BY p.id
		 ORDER BY MAX(l.level) DESC, MIN(l.created_at) ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var entries []PetLevel
	for rows.Next() {
		var e PetLevel
		var reachedAt any
		if err := rows.Scan(&e.PetID, &e.Name, &e.Level, &reachedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.ReachedAt = parseTime(reachedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// PetStats contains aggregated statistics for a pet.
type PetStats struct {
	PetID          string
	Frameworks     int
	AverageQuality float64
	BestQuality    int
	Level          int
	LastFramework  time.Time
	QualityCounts  map[int]int
}

// GetPetStats retrieves aggregated statistics for a pet.
func (s *Store) GetPetStats(petID string) (*PetStats, error) {
	stats := &PetStats{PetID: petID, Level: 1, QualityCounts: make(map[int]int)}

	var lastFramework any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(quality), 0), COALESCE(MAX(quality), 0), MAX(created_at)
		 FROM frameworks WHERE pet_id = ?`,
		petID,
	).Scan(&stats.Frameworks, &stats.AverageQuality, &stats.BestQuality, &lastFramework)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pet stats: %w", err)
	}
	stats.LastFramework = parseTime(lastFramework)

	var level sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MAX(level) FROM level_ups WHERE pet_id = ?", petID,
	).Scan(&level)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level: %w", err)
	}
	if level.Valid {
		stats.Level = int(level.Int64)
	}

	rows, err := s.db.Query(
		"SELECT quality, COUNT(*) FROM frameworks WHERE pet_id = ? GROUP BY quality", petID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get quality histogram: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var q, n int
		if err := rows.Scan(&q, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats.QualityCounts[q] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ListPets returns every registered pet, oldest first.
func (s *Store) ListPets() ([]PetRecord, error) {
	rows, err := s.db.Query("SELECT id, name, created_at FROM pets ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pets: %w", err)
	}
	defer rows.Close()

	var pets []PetRecord
	for rows.Next() {
		var p PetRecord
		var createdAt any
		if err := rows.Scan(&p.ID, &p.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		pets = append(pets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return pets, nil
}

// formatTime renders t in the layout SQLite's CURRENT_TIMESTAMP uses.
// The zero time means now.
func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

// parseTime handles both time.Time and string column values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v.UTC()
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return parsed.UTC()
		}
	case []byte:
		return parseTime(string(v))
	}
	return time.Time{}
}
