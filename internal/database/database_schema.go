// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package database

import (
	"context"
	"fmt"
)

// Timestamps are stored as fixed-width RFC 3339 text in UTC (see
// timeLayout).
const schema = `
CREATE TABLE IF NOT EXISTS candidates (
	id                    TEXT PRIMARY KEY,
	full_name             TEXT NOT NULL,
	email                 TEXT NOT NULL UNIQUE,
	phone                 TEXT NOT NULL,
	date_of_birth         TEXT NOT NULL,
	highest_qualification TEXT NOT NULL,
	graduation_year       INTEGER NOT NULL,
	percentage_cgpa       REAL NOT NULL,
	score_type            TEXT NOT NULL DEFAULT 'percentage',
	screening_test_score  REAL NOT NULL,
	interview_status      TEXT NOT NULL,
	aadhaar               TEXT NOT NULL,
	offer_letter_sent     TEXT NOT NULL,
	exceptions            TEXT NOT NULL DEFAULT '[]',
	exception_count       INTEGER NOT NULL DEFAULT 0,
	flagged_for_review    INTEGER NOT NULL DEFAULT 0,
	submitted_at          TEXT NOT NULL,
	updated_at            TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_candidates_submitted_at ON candidates(submitted_at);
CREATE INDEX IF NOT EXISTS idx_candidates_flagged ON candidates(flagged_for_review);

CREATE TABLE IF NOT EXISTS audit_log (
	id                 TEXT PRIMARY KEY,
	candidate_id       TEXT NOT NULL,
	candidate_name     TEXT NOT NULL,
	candidate_email    TEXT NOT NULL,
	action             TEXT NOT NULL DEFAULT 'SUBMISSION',
	actor              TEXT NOT NULL DEFAULT '',
	exception_count    INTEGER NOT NULL DEFAULT 0,
	flagged_for_review INTEGER NOT NULL DEFAULT 0,
	exceptions         TEXT NOT NULL DEFAULT '[]',
	request_id         TEXT NOT NULL DEFAULT '',
	timestamp          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_log_timestamp ON audit_log(timestamp);
CREATE INDEX IF NOT EXISTS idx_audit_log_candidate ON audit_log(candidate_id);
`

// createTables is idempotent and runs on every start.
func (db *DB) createTables(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
