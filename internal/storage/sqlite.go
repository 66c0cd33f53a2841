// Package storage provides SQLite-based persistence for simulation run
// history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Grid contents are never stored here; board definitions
// live in YAML files.
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
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Source tells which front end produced a run.
type Source string

const (
	SourceInteractive Source = "tui"
	SourceHeadless    Source = "headless"
)

// Run is one recorded simulation session.
type Run struct {
	ID         string // UUID, assigned by SaveRun when empty
	BoardID    string
	Source     Source
	Width      int
	Height     int
	Frames     uint64 // Frames seen
	Steps      uint64 // Steps committed
	Moves      int
	Spawns     int
	Blocked    int
	Movers     int // Census at the end of the run
	Pushers    int
	Generators int
	Duration   time.Duration
	CreatedAt  time.Time
}

// BoardStats contains aggregated statistics for a board.
type BoardStats struct {
	BoardID    string
	Runs       int
	TotalSteps int64
	MaxSteps   int64
	TotalMoves int64
	Spawns     int64
	LastRun    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// created_at holds Unix milliseconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			board_id TEXT NOT NULL,
			source TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			steps INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			spawns INTEGER NOT NULL DEFAULT 0,
			blocked INTEGER NOT NULL DEFAULT 0,
			movers INTEGER NOT NULL DEFAULT 0,
			pushers INTEGER NOT NULL DEFAULT 0,
			generators INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_board_id ON runs(board_id);
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

// SaveRun records a run and returns it with ID and CreatedAt filled in.
func (s *Store) SaveRun(r Run) (Run, error) {
	if r.BoardID == "" {
		return r, errors.New("storage: run has no board id")
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Source == "" {
		r.Source = SourceHeadless
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, board_id, source, width, height, frames, steps, moves, spawns, blocked,
		  movers, pushers, generators, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.BoardID, string(r.Source), r.Width, r.Height,
		int64(r.Frames), int64(r.Steps), r.Moves, r.Spawns, r.Blocked,
		r.Movers, r.Pushers, r.Generators,
		r.Duration.Milliseconds(), r.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return r, fmt.Errorf("storage: cannot save run: %w", err)
	}

	r.CreatedAt = time.UnixMilli(r.CreatedAt.UnixMilli())
	return r, nil
}

const runColumns = `id, board_id, source, width, height, frames, steps, moves, spawns, blocked,
		        movers, pushers, generators, duration_ms, created_at`

// RecentRuns retrieves the most recent runs across all boards.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, seq DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunsForBoard retrieves the most recent runs of one board.
func (s *Store) RunsForBoard(boardID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE board_id = ?
		 ORDER BY created_at DESC, seq DESC
		 LIMIT ?`,
		boardID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                  Run
			source             string
			frames, steps      int64
			durationMS, millis int64
		)
		if err := rows.Scan(
			&r.ID, &r.BoardID, &source, &r.Width, &r.Height,
			&frames, &steps, &r.Moves, &r.Spawns, &r.Blocked,
			&r.Movers, &r.Pushers, &r.Generators,
			&durationMS, &millis,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Source = Source(source)
		r.Frames = uint64(frames)
		r.Steps = uint64(steps)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = time.UnixMilli(millis)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BoardStats retrieves aggregated statistics for a specific board.
func (s *Store) BoardStats(boardID string) (*BoardStats, error) {
	stats := &BoardStats{BoardID: boardID}

	var last int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(steps), 0), COALESCE(MAX(steps), 0),
		        COALESCE(SUM(moves), 0), COALESCE(SUM(spawns), 0), COALESCE(MAX(created_at), 0)
		 FROM runs WHERE board_id = ?`,
		boardID,
	).Scan(&stats.Runs, &stats.TotalSteps, &stats.MaxSteps, &stats.TotalMoves, &stats.Spawns, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get board stats: %w", err)
	}
	if last > 0 {
		stats.LastRun = time.UnixMilli(last)
	}

	return stats, nil
}

// AllBoardStats retrieves statistics for every board that has been run.
func (s *Store) AllBoardStats() (map[string]*BoardStats, error) {
	rows, err := s.db.Query(
		`SELECT board_id, COUNT(*), SUM(steps), MAX(steps), SUM(moves), SUM(spawns), MAX(created_at)
		 FROM runs
		 GROUP BY board_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all board stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*BoardStats)
	for rows.Next() {
		var st BoardStats
		var last int64
		if err := rows.Scan(&st.BoardID, &st.Runs, &st.TotalSteps, &st.MaxSteps, &st.TotalMoves, &st.Spawns, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = time.UnixMilli(last)
		stats[st.BoardID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes the runs of one board, or every run when boardID is empty.
func (s *Store) ClearRuns(boardID string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if boardID == "" {
		res, err = s.db.Exec("DELETE FROM runs")
	} else {
		res, err = s.db.Exec("DELETE FROM runs WHERE board_id = ?", boardID)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared runs: %w", err)
	}
	return n, nil
}
