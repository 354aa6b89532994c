// Package storage provides SQLite-based persistence for trial runs and
// their replays. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/obonelli/the-witcher-trial/internal/runner"
	"github.com/obonelli/the-witcher-trial/internal/trial"
)

// timeLayout is the format of created_at, sortable as text.
const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunEntry is one stored run.
type RunEntry struct {
	ID           string
	Mode         trial.Mode
	Player       string
	Score        int
	Accuracy     float64
	Level        int
	StreakMax    int
	CorrectTotal int
	PlayedTotal  int
	EndReason    trial.EndReason
	Seed         int64
	CreatedAt    time.Time
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
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			accuracy REAL NOT NULL DEFAULT 0,
			level INTEGER NOT NULL,
			streak_max INTEGER NOT NULL DEFAULT 0,
			correct_total INTEGER NOT NULL DEFAULT 0,
			played_total INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(mode, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);

		CREATE TABLE IF NOT EXISTS replays (
			run_id TEXT PRIMARY KEY REFERENCES runs(id) ON DELETE CASCADE,
			payload TEXT NOT NULL
		);
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

// SaveResult stores a finished run and its replay in one transaction.
// Returns the generated run ID.
func (s *Store) SaveResult(out runner.Outcome) (string, error) {
	payload, err := trial.EncodeReplay(out.Replay)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode replay: %w", err)
	}

	res := out.Result
	at := res.Timestamp
	if at.IsZero() {
		at = time.Now()
	}
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs
		 (id, mode, player, score, accuracy, level, streak_max, correct_total, played_total, end_reason, seed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		string(res.Mode),
		out.Player,
		res.Score,
		res.Accuracy,
		res.Level,
		res.StreakMax,
		res.CorrectTotal,
		res.PlayedTotal,
		string(res.EndReason),
		res.Seed,
		at.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	if _, err := tx.Exec("INSERT INTO replays (run_id, payload) VALUES (?, ?)", id, string(payload)); err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

var _ runner.ResultSink = (*Store)(nil)

const runColumns = `id, mode, player, score, accuracy, level, streak_max,
	correct_total, played_total, end_reason, seed, created_at`

// TopRuns retrieves the top N runs for the given mode.
// Results are ordered by score descending, earlier runs first on ties.
func (s *Store) TopRuns(mode trial.Mode, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE mode = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		string(mode), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// AllRuns retrieves all runs for the given mode (no limit).
func (s *Store) AllRuns(mode trial.Mode) ([]RunEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE mode = ?
		 ORDER BY score DESC, created_at ASC`,
		string(mode),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// PlayerRuns retrieves the most recent runs of one player across modes.
func (s *Store) PlayerRuns(player string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE player = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player runs: %w", err)
	}
	return scanRuns(rows)
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*RunEntry, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	entries, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var mode, reason string
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&mode,
			&e.Player,
			&e.Score,
			&e.Accuracy,
			&e.Level,
			&e.StreakMax,
			&e.CorrectTotal,
			&e.PlayedTotal,
			&reason,
			&e.Seed,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Mode = trial.Mode(mode)
		e.EndReason = trial.EndReason(reason)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTime handles created_at as returned by the driver, either a
// time.Time or the stored text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case []byte:
		return parseTime(string(t))
	}
	return time.Time{}
}

// ReplayByRun returns the stored replay of a run. Returns nil if the run
// has no replay.
func (s *Store) ReplayByRun(id string) (*trial.Replay, error) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM replays WHERE run_id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	rp, err := trial.DecodeReplay([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("storage: stored replay for %s: %w", id, err)
	}
	return &rp, nil
}

// HighScore returns the highest score for the given mode.
// Returns 0 if no runs exist.
func (s *Store) HighScore(mode trial.Mode) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE mode = ?",
		string(mode),
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRuns deletes all runs of the given mode and their replays.
func (s *Store) ClearRuns(mode trial.Mode) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM replays WHERE run_id IN (SELECT id FROM runs WHERE mode = ?)",
		string(mode),
	); err != nil {
		return fmt.Errorf("storage: cannot clear replays: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE mode = ?", string(mode)); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// ModeStats contains aggregated statistics for a mode.
type ModeStats struct {
	Mode        trial.Mode
	RunsCount   int
	HighScore   int
	AvgScore    float64
	BestLevel   int
	BestStreak  int
	AvgAccuracy float64
	LastPlayed  time.Time
}

// GetModeStats retrieves aggregated statistics for a specific mode.
func (s *Store) GetModeStats(mode trial.Mode) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MAX(level), 0), COALESCE(MAX(streak_max), 0),
		        COALESCE(AVG(accuracy), 0), MAX(created_at)
		 FROM runs WHERE mode = ?`,
		string(mode),
	).Scan(
		&stats.RunsCount,
		&stats.HighScore,
		&stats.AvgScore,
		&stats.BestLevel,
		&stats.BestStreak,
		&stats.AvgAccuracy,
		&lastPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}
