// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/admitguard/internal/database/query"
	"github.com/tomtom215/admitguard/internal/metrics"
	"github.com/tomtom215/admitguard/internal/models"
)

const auditColumns = `id, candidate_id, candidate_name, candidate_email, action, actor,
	exception_count, flagged_for_review, exceptions, request_id, timestamp`

// InsertAudit appends e to the audit log. Timestamp is set when zero.
func (t *Tx) InsertAudit(ctx context.Context, e *models.AuditEntry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = t.now().UTC()
	}
	exceptions, err := marshalWaivers(e.Exceptions)
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = t.tx.ExecContext(ctx, `INSERT INTO audit_log (`+auditColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CandidateID, e.CandidateName, e.CandidateEmail, string(e.Action), e.Actor,
		e.ExceptionCount, e.FlaggedForReview, exceptions, e.RequestID, formatTime(e.Timestamp),
	)
	metrics.RecordDBQuery("INSERT", "audit_log", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// AuditLog returns the page of audit entries selected by q, newest first,
// together with the total number of matching entries.
func (db *DB) AuditLog(ctx context.Context, q models.AuditQuery) ([]models.AuditEntry, int, error) {
	where, args, err := buildAuditFilter(q)
	if err != nil {
		return nil, 0, err
	}

	var total int
	start := time.Now()
	err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`+where, args...).Scan(&total)
	metrics.RecordDBQuery("SELECT", "audit_log", time.Since(start), err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	limit, offset := q.Limit, q.Offset
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}

	start = time.Now()
	rows, err := db.conn.QueryContext(ctx, `SELECT `+auditColumns+` FROM audit_log`+where+`
		ORDER BY timestamp DESC, rowid DESC LIMIT ? OFFSET ?`, append(args, limit, offset)...)
	metrics.RecordDBQuery("SELECT", "audit_log", time.Since(start), err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer closeWithLog(rows, "rows")

	entries := make([]models.AuditEntry, 0)
	for rows.Next() {
		var (
			e          models.AuditEntry
			action     string
			exceptions string
			ts         string
		)
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.CandidateName, &e.CandidateEmail, &action, &e.Actor,
			&e.ExceptionCount, &e.FlaggedForReview, &exceptions, &e.RequestID, &ts); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		e.Action = models.AuditAction(action)
		if e.Exceptions, err = unmarshalWaivers(exceptions); err != nil {
			return nil, 0, err
		}
		if e.Timestamp, err = parseTime(ts); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating audit log: %w", err)
	}
	return entries, total, nil
}

// buildAuditFilter turns q into a WHERE clause with positional args. The
// clause is empty when nothing is filtered.
func buildAuditFilter(q models.AuditQuery) (string, []any, error) {
	wb := query.NewWhereBuilder()

	switch strings.ToLower(strings.TrimSpace(q.Filter)) {
	case "", models.AuditFilterAll:
	case models.AuditFilterFlagged:
		wb.AddClause("flagged_for_review = 1")
	case models.AuditFilterExceptions:
		wb.AddClause("exception_count > 0")
	default:
		return "", nil, fmt.Errorf("%w: unknown audit filter %q", ErrInvalidFilter, q.Filter)
	}
	wb.AddContains(q.Search, "candidate_name", "candidate_email")

	where, args := wb.BuildWithPrefix()
	return where, args, nil
}
