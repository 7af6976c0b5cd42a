// Package storage provides SQLite-based persistence for finished snake runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only run results are stored. Game state is never persisted.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/gridsnake/internal/session"
)

// Store manages the SQLite database connection for the run log.
type Store struct {
	db *sql.DB
}

// RunEntry represents a single finished run.
type RunEntry struct {
	ID         int64
	RunID      string
	Difficulty string
	Columns    int
	Rows       int
	Seed       int64
	Score      int
	Length     int
	Ticks      int64
	Autoplay   bool
	EndReason  string
	Duration   time.Duration
	CreatedAt  time.Time
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			difficulty TEXT NOT NULL,
			board_columns INTEGER NOT NULL,
			board_rows INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			length INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			autoplay INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_difficulty ON runs(difficulty);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(difficulty, score DESC);
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

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(e RunEntry) (int64, error) {
	if e.RunID == "" {
		return 0, errors.New("storage: run ID is empty")
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, difficulty, board_columns, board_rows, seed, score, length, ticks, autoplay, end_reason, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID,
		e.Difficulty,
		e.Columns,
		e.Rows,
		e.Seed,
		e.Score,
		e.Length,
		e.Ticks,
		e.Autoplay,
		e.EndReason,
		e.Duration.Milliseconds(),
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

const runColumns = `id, run_id, difficulty, board_columns, board_rows, seed, score, length, ticks,
		autoplay, end_reason, duration_ms, created_at`

// TopRuns retrieves the top N runs for the given difficulty, or across all
// difficulties when difficulty is empty. Results are ordered by score descending.
func (s *Store) TopRuns(difficulty string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY score DESC, ticks ASC, id ASC
		 LIMIT ?`,
		difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return collectRuns(rows)
}

// RecentRuns retrieves the most recently recorded runs.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return collectRuns(rows)
}

// RunByID retrieves a run by its run ID. Returns nil if it does not exist.
func (s *Store) RunByID(runID string) (*RunEntry, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE run_id = ?`,
		runID,
	)

	e, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &e, nil
}

// HighScore returns the highest score for the given difficulty, or across all
// difficulties when it is empty. Returns 0 if no runs exist.
func (s *Store) HighScore(difficulty string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE ? = '' OR difficulty = ?",
		difficulty, difficulty,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the given difficulty, or every run when it is empty.
func (s *Store) ClearRuns(difficulty string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR difficulty = ?", difficulty, difficulty)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// SaveResult implements session.ResultSaver.
// This adapter allows the session to record runs without direct storage dependency.
func (s *Store) SaveResult(r session.RunResult) error {
	_, err := s.SaveRun(EntryFromResult(r))
	return err
}

// Ensure Store implements ResultSaver
var _ session.ResultSaver = (*Store)(nil)

// EntryFromResult converts a session result into a storable entry.
func EntryFromResult(r session.RunResult) RunEntry {
	return RunEntry{
		RunID:      r.RunID,
		Difficulty: r.Difficulty,
		Columns:    r.Columns,
		Rows:       r.Rows,
		Seed:       r.Seed,
		Score:      r.Score,
		Length:     r.Length,
		Ticks:      int64(r.Ticks),
		Autoplay:   r.Autoplay,
		EndReason:  r.EndReason,
		Duration:   r.Duration,
	}
}

// RunStats contains aggregated statistics for one difficulty.
type RunStats struct {
	Difficulty    string
	RunsCount     int
	AutoplayCount int
	HighScore     int
	AvgScore      float64
	LongestTicks  int64
	LastPlayed    time.Time
}

// Stats retrieves aggregated statistics for a difficulty, or across all
// difficulties when it is empty.
func (s *Store) Stats(difficulty string) (*RunStats, error) {
	stats := &RunStats{Difficulty: difficulty}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(autoplay), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(MAX(ticks), 0), MAX(created_at)
		 FROM runs WHERE ? = '' OR difficulty = ?`,
		difficulty, difficulty,
	).Scan(&stats.RunsCount, &stats.AutoplayCount, &stats.HighScore, &stats.AvgScore, &stats.LongestTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllStats retrieves statistics for every difficulty that has been played.
func (s *Store) AllStats() (map[string]*RunStats, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, COUNT(*), SUM(autoplay), MAX(score), AVG(score), MAX(ticks), MAX(created_at)
		 FROM runs
		 GROUP BY difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all run stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*RunStats)
	for rows.Next() {
		var st RunStats
		var lastPlayed any
		if err := rows.Scan(&st.Difficulty, &st.RunsCount, &st.AutoplayCount, &st.HighScore, &st.AvgScore, &st.LongestTicks, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Difficulty] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(r rowScanner) (RunEntry, error) {
	var e RunEntry
	var durationMS int64
	var createdAt any
	err := r.Scan(
		&e.ID,
		&e.RunID,
		&e.Difficulty,
		&e.Columns,
		&e.Rows,
		&e.Seed,
		&e.Score,
		&e.Length,
		&e.Ticks,
		&e.Autoplay,
		&e.EndReason,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		return RunEntry{}, err
	}
	e.Duration = time.Duration(durationMS) * time.Millisecond
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

func collectRuns(rows *sql.Rows) ([]RunEntry, error) {
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		e, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles the datetime as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
