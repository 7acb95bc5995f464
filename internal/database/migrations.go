// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/admitguard/internal/logging"
)

// Migration is a versioned schema change applied after the base schema.
type Migration struct {
	Version     int       // monotonically increasing, never reused
	Name        string    // short identifier
	Description string    // what the migration does
	SQL         string    // statements to execute
	AppliedAt   time.Time // populated when read back
}

const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version     INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	applied_at  TEXT NOT NULL
);
`

// migrations is append-only: once released, an entry is never edited or
// removed.
var migrations = []Migration{
	{
		Version:     1,
		Name:        "audit_log_flagged_index",
		Description: "Index the flagged audit filter",
		SQL:         `CREATE INDEX IF NOT EXISTS idx_audit_log_flagged ON audit_log(flagged_for_review, timestamp);`,
	},
	{
		Version:     2,
		Name:        "audit_log_exceptions_index",
		Description: "Index the exceptions audit filter",
		SQL:         `CREATE INDEX IF NOT EXISTS idx_audit_log_exceptions ON audit_log(exception_count, timestamp);`,
	},
}

// runMigrations applies every migration not yet recorded in
// schema_migrations. Each runs in its own transaction together with its
// bookkeeping row.
func (db *DB) runMigrations(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	current, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	applied := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := db.applyMigration(ctx, m); err != nil {
			return err
		}
		applied++
	}

	if applied > 0 {
		logging.Info().Int("applied", applied).Int("schema_version", migrations[len(migrations)-1].Version).
			Msg("Applied database migrations")
	}
	return nil
}

func (db *DB) applyMigration(ctx context.Context, m Migration) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration v%d: %w", m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, description, applied_at) VALUES (?, ?, ?, ?)`,
		m.Version, m.Name, m.Description, formatTime(db.now().UTC())); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration v%d: %w", m.Version, err)
	}
	return nil
}

// SchemaVersion returns the highest applied migration version, 0 for a
// database with only the base schema.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// MigrationHistory returns the applied migrations in version order.
func (db *DB) MigrationHistory(ctx context.Context) ([]Migration, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT version, name, description, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query migration history: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var history []Migration
	for rows.Next() {
		var (
			m  Migration
			ts string
		)
		if err := rows.Scan(&m.Version, &m.Name, &m.Description, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}
		if m.AppliedAt, err = parseTime(ts); err != nil {
			return nil, err
		}
		history = append(history, m)
	}
	return history, rows.Err()
}
