package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// schemaV1 is the initial schema for the SQLite store.
const schemaV1 = `
-- One row per finished run
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    emitters INTEGER NOT NULL DEFAULT 0,
    receivers INTEGER NOT NULL DEFAULT 0,
    mirrors INTEGER NOT NULL DEFAULT 0,
    clock INTEGER NOT NULL,
    activated INTEGER NOT NULL DEFAULT 0,
    tick_log TEXT,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);

-- Final receiver state per run
CREATE TABLE IF NOT EXISTS receiver_results (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    symbol TEXT NOT NULL,
    activated INTEGER NOT NULL DEFAULT 0,
    activated_at INTEGER,
    energy INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (run_id, symbol)
);

-- Schema versioning
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);
`

// InitSchema initializes the database schema.
// It creates all tables and applies migrations as needed.
// Runs integrity validation before migrations on existing databases.
func InitSchema(ctx context.Context, db *sql.DB) error {
	// Check current schema version
	currentVersion, err := getSchemaVersion(ctx, db)
	if err != nil {
		// Schema version table doesn't exist yet, create fresh schema
		if err := createSchema(ctx, db); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		return nil
	}

	// Validate database integrity before migrations
	if err := ValidateIntegrity(ctx, db); err != nil {
		return fmt.Errorf("database integrity check failed: %w", err)
	}

	if currentVersion > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", currentVersion, SchemaVersion)
	}

	return nil
}

// getSchemaVersion returns the current schema version from the database.
// Returns 0 and an error if the schema_version table doesn't exist.
func getSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// createSchema creates the initial database schema.
func createSchema(ctx context.Context, db *sql.DB) error {
	// Execute schema in a transaction
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Create all tables
	if _, err := tx.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	// Record schema version
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`,
		SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return tx.Commit()
}

// ValidateIntegrity checks an existing history database before use.
// Beyond SQLite's own integrity_check it verifies that every receiver
// result belongs to a recorded run and that each run's activated count
// agrees with its stored receiver results.
func ValidateIntegrity(ctx context.Context, db *sql.DB) error {
	var result string
	if err := db.QueryRowContext(ctx, `PRAGMA integrity_check`).Scan(&result); err != nil {
		return fmt.Errorf("failed to run integrity_check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity_check failed: %s", result)
	}

	var orphans int
	if err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM receiver_results
		WHERE run_id NOT IN (SELECT id FROM runs)`).Scan(&orphans); err != nil {
		return fmt.Errorf("failed to check receiver results: %w", err)
	}
	if orphans > 0 {
		return fmt.Errorf("%d receiver results reference missing runs", orphans)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT r.id, r.activated, COUNT(rr.symbol)
		FROM runs r
		LEFT JOIN receiver_results rr ON rr.run_id = r.id AND rr.activated = 1
		GROUP BY r.id
		HAVING r.activated != COUNT(rr.symbol)`)
	if err != nil {
		return fmt.Errorf("failed to check run totals: %w", err)
	}
	defer rows.Close()

	var mismatched []string
	for rows.Next() {
		var id string
		var stored, counted int
		if err := rows.Scan(&id, &stored, &counted); err != nil {
			return fmt.Errorf("failed to scan run totals: %w", err)
		}
		mismatched = append(mismatched, fmt.Sprintf("%s (activated=%d, results=%d)", id, stored, counted))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to check run totals: %w", err)
	}
	if len(mismatched) > 0 {
		return fmt.Errorf("runs disagree with their receiver results: %v", mismatched)
	}

	return nil
}
