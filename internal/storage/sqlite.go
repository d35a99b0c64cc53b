// Package storage provides SQLite-based persistence for burrb run records.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunRecord summarizes one finished play session. Currency columns hold
// the wallet at session end; gameplay state itself is never persisted.
type RunRecord struct {
	ID                int64
	Seed              int64
	SurvivalSecs      float64
	Chips             int
	Berries           int
	Gems              int
	Snowflakes        int
	Mushrooms         int
	NPCsDefeated      int
	Deaths            int
	AbilitiesUnlocked int
	CreatedAt         time.Time
}

// LifetimeStats contains aggregated statistics across all recorded runs.
type LifetimeStats struct {
	RunsCount         int
	BestSurvivalSecs  float64
	AvgSurvivalSecs   float64
	TotalNPCsDefeated int
	TotalDeaths       int
	LastPlayed        time.Time
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

	// Open database
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

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			survival_secs REAL NOT NULL,
			chips INTEGER NOT NULL DEFAULT 0,
			berries INTEGER NOT NULL DEFAULT 0,
			gems INTEGER NOT NULL DEFAULT 0,
			snowflakes INTEGER NOT NULL DEFAULT 0,
			mushrooms INTEGER NOT NULL DEFAULT 0,
			npcs_defeated INTEGER NOT NULL DEFAULT 0,
			deaths INTEGER NOT NULL DEFAULT 0,
			abilities_unlocked INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_survival ON runs(survival_secs DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (seed, survival_secs, chips, berries, gems, snowflakes, mushrooms, npcs_defeated, deaths, abilities_unlocked)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Seed,
		run.SurvivalSecs,
		run.Chips,
		run.Berries,
		run.Gems,
		run.Snowflakes,
		run.Mushrooms,
		run.NPCsDefeated,
		run.Deaths,
		run.AbilitiesUnlocked,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the N longest-surviving runs.
// Results are ordered by survival time descending.
func (s *Store) TopRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, seed, survival_secs, chips, berries, gems, snowflakes, mushrooms,
		        npcs_defeated, deaths, abilities_unlocked, created_at
		 FROM runs
		 ORDER BY survival_secs DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Seed, &r.SurvivalSecs,
			&r.Chips, &r.Berries, &r.Gems, &r.Snowflakes, &r.Mushrooms,
			&r.NPCsDefeated, &r.Deaths, &r.AbilitiesUnlocked, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RecentRuns retrieves the most recently played runs.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, survival_secs, chips, berries, gems, snowflakes, mushrooms,
		        npcs_defeated, deaths, abilities_unlocked, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Seed, &r.SurvivalSecs,
			&r.Chips, &r.Berries, &r.Gems, &r.Snowflakes, &r.Mushrooms,
			&r.NPCsDefeated, &r.Deaths, &r.AbilitiesUnlocked, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestSurvival returns the longest survival time in seconds.
// Returns 0 if no runs exist.
func (s *Store) BestSurvival() (float64, error) {
	var secs sql.NullFloat64
	err := s.db.QueryRow("SELECT MAX(survival_secs) FROM runs").Scan(&secs)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best survival: %w", err)
	}

	if !secs.Valid {
		return 0, nil
	}

	return secs.Float64, nil
}

// ClearRuns deletes all recorded runs.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Lifetime retrieves aggregated statistics across all runs.
func (s *Store) Lifetime() (*LifetimeStats, error) {
	stats := &LifetimeStats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(survival_secs), 0), COALESCE(AVG(survival_secs), 0),
		        COALESCE(SUM(npcs_defeated), 0), COALESCE(SUM(deaths), 0)
		 FROM runs`,
	).Scan(&stats.RunsCount, &stats.BestSurvivalSecs, &stats.AvgSurvivalSecs,
		&stats.TotalNPCsDefeated, &stats.TotalDeaths)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get lifetime stats: %w", err)
	}

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs ORDER BY created_at DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		switch v := lastPlayed.(type) {
		case time.Time:
			stats.LastPlayed = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				stats.LastPlayed = parsed
			}
		}
	}

	return stats, nil
}
