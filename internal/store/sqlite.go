package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// timeLayout is fixed-width so that created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRunStore implements RunStore using SQLite for persistence.
type SQLiteRunStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
}

// NewSQLiteRunStore creates a new SQLiteRunStore rooted at projectRoot.
// It creates the database at .lasercircuit/history.db.
func NewSQLiteRunStore(projectRoot string) (*SQLiteRunStore, error) {
	dataDir := LocalDataPath(projectRoot)

	// Ensure .lasercircuit directory exists
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := DBPath(projectRoot)

	// Open database
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite works best with single writer

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteRunStore{db: db, dbPath: dbPath}, nil
}

// Path returns the database file path.
func (s *SQLiteRunStore) Path() string {
	return s.dbPath
}

// SaveRun inserts a run and its receiver results.
func (s *SQLiteRunStore) SaveRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("run ID is required")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, width, height, emitters, receivers, mirrors, clock, activated, tick_log, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Width, run.Height,
		run.EmitterCount, run.ReceiverCount, run.MirrorCount,
		run.Clock, run.Activated, nullString(run.TickLog),
		run.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, r := range run.Results {
		var activatedAt sql.NullInt64
		if r.Activated {
			activatedAt = sql.NullInt64{Int64: int64(r.ActivatedAt), Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO receiver_results (run_id, symbol, activated, activated_at, energy)
			VALUES (?, ?, ?, ?, ?)`,
			run.ID, r.Symbol, boolToInt(r.Activated), activatedAt, r.Energy)
		if err != nil {
			return fmt.Errorf("failed to insert result for %s: %w", r.Symbol, err)
		}
	}

	return tx.Commit()
}

// GetRun returns a run by ID, or ErrNotFound.
func (s *SQLiteRunStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, width, height, emitters, receivers, mirrors, clock, activated, tick_log, created_at
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if run.Results, err = s.results(ctx, run.ID); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns runs newest first.
func (s *SQLiteRunStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, source, width, height, emitters, receivers, mirrors, clock, activated, tick_log, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	rows.Close()

	// Results are loaded after the cursor is closed: the pool holds a single connection.
	for i := range runs {
		if runs[i].Results, err = s.results(ctx, runs[i].ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *SQLiteRunStore) results(ctx context.Context, runID string) ([]ReceiverResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, activated, activated_at, energy
		FROM receiver_results WHERE run_id = ? ORDER BY symbol`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var out []ReceiverResult
	for rows.Next() {
		var (
			r           ReceiverResult
			activated   int
			activatedAt sql.NullInt64
		)
		if err := rows.Scan(&r.Symbol, &activated, &activatedAt, &r.Energy); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.Activated = activated != 0
		if activatedAt.Valid {
			r.ActivatedAt = int(activatedAt.Int64)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteRunStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run       Run
		tickLog   sql.NullString
		createdAt string
	)
	err := row.Scan(&run.ID, &run.Source, &run.Width, &run.Height,
		&run.EmitterCount, &run.ReceiverCount, &run.MirrorCount,
		&run.Clock, &run.Activated, &tickLog, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	run.TickLog = tickLog.String
	if t, err := time.Parse(timeLayout, createdAt); err == nil {
		run.CreatedAt = t
	}
	return &run, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
