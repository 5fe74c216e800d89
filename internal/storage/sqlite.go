// Package storage provides the SQLite run journal. Every finished run is
// stored with its seed, variant, config and per-tick shifts so it can be
// replayed later.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/ballmaze/internal/config"
	"github.com/vovakirdan/ballmaze/internal/maze"
)

// Lookup errors.
var (
	ErrRunNotFound  = errors.New("storage: run not found")
	ErrAmbiguousRun = errors.New("storage: run id prefix matches several runs")
)

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// RunSummary is a journal row without the replay payload.
type RunSummary struct {
	ID         string
	Seed       int64
	Variant    string
	Width      int
	Height     int
	Outcome    maze.Outcome
	Score      int
	Floors     int
	Ticks      int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the run took.
func (r RunSummary) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunEntry is a full journal row.
type RunEntry struct {
	RunSummary
	Record maze.RunRecord
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
			seed INTEGER NOT NULL,
			variant TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL,
			floors INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			config TEXT NOT NULL,
			shifts BLOB NOT NULL,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_finished ON runs(finished_at DESC);
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

// SaveRun journals a finished run and returns its generated ID.
func (s *Store) SaveRun(rec maze.RunRecord) (string, error) {
	cfg, err := yaml.Marshal(rec.Config)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode config: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO runs
		 (id, seed, variant, width, height, outcome, score, floors, ticks, config, shifts, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		rec.Seed,
		rec.Variant,
		rec.Width,
		rec.Height,
		rec.Outcome.String(),
		rec.Score,
		rec.Config.Level.Floors,
		rec.Ticks,
		string(cfg),
		encodeShifts(rec.Shifts),
		rec.StartedAt.UnixNano(),
		rec.FinishedAt.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return id, nil
}

// Run loads a run by its full ID or a unique ID prefix.
func (s *Store) Run(idOrPrefix string) (*RunEntry, error) {
	if idOrPrefix == "" {
		return nil, ErrRunNotFound
	}

	rows, err := s.db.Query(
		`SELECT id, seed, variant, width, height, outcome, score, floors, ticks,
		        started_at, finished_at, config, shifts
		 FROM runs
		 WHERE id = ? OR id LIKE ?
		 ORDER BY id = ? DESC
		 LIMIT 2`,
		idOrPrefix, stripWildcards(idOrPrefix)+"%", idOrPrefix,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var cfgText string
		var shifts []byte
		if err := scanSummary(rows, &e.RunSummary, &cfgText, &shifts); err != nil {
			return nil, err
		}
		if e.Record, err = decodeRecord(e.RunSummary, cfgText, shifts); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch {
	case len(entries) == 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, idOrPrefix)
	case entries[0].ID == idOrPrefix || len(entries) == 1:
		return &entries[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, idOrPrefix)
	}
}

// RecentRuns returns the most recently finished runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, variant, width, height, outcome, score, floors, ticks,
		        started_at, finished_at
		 FROM runs
		 ORDER BY finished_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var results []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := scanSummary(rows, &r); err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// DeleteRun removes a run from the journal.
func (s *Store) DeleteRun(id string) error {
	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// scanSummary reads the summary columns followed by any extra columns.
func scanSummary(rows *sql.Rows, r *RunSummary, extra ...any) error {
	var outcome string
	var started, finished int64
	dest := []any{
		&r.ID, &r.Seed, &r.Variant, &r.Width, &r.Height, &outcome,
		&r.Score, &r.Floors, &r.Ticks, &started, &finished,
	}
	if err := rows.Scan(append(dest, extra...)...); err != nil {
		return fmt.Errorf("storage: cannot scan row: %w", err)
	}

	o, err := maze.ParseOutcome(outcome)
	if err != nil {
		return fmt.Errorf("storage: run %s: %w", r.ID, err)
	}
	r.Outcome = o
	r.StartedAt = time.Unix(0, started)
	r.FinishedAt = time.Unix(0, finished)
	return nil
}

func decodeRecord(r RunSummary, cfgText string, shifts []byte) (maze.RunRecord, error) {
	cfg, err := config.Parse([]byte(cfgText))
	if err != nil {
		return maze.RunRecord{}, fmt.Errorf("storage: run %s config: %w", r.ID, err)
	}
	decoded, err := decodeShifts(shifts)
	if err != nil {
		return maze.RunRecord{}, fmt.Errorf("storage: run %s: %w", r.ID, err)
	}

	return maze.RunRecord{
		Seed:       r.Seed,
		Variant:    r.Variant,
		Width:      r.Width,
		Height:     r.Height,
		Config:     cfg,
		Shifts:     decoded,
		Outcome:    r.Outcome,
		Score:      r.Score,
		Ticks:      r.Ticks,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}, nil
}

func stripWildcards(s string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(s)
}
