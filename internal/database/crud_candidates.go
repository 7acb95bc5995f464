// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/admitguard/internal/metrics"
	"github.com/tomtom215/admitguard/internal/models"
)

const candidateColumns = `id, full_name, email, phone, date_of_birth, highest_qualification,
	graduation_year, percentage_cgpa, score_type, screening_test_score, interview_status,
	aadhaar, offer_letter_sent, exceptions, exception_count, flagged_for_review,
	submitted_at, updated_at`

// RegisteredEmails returns every stored email. Inside a transaction the
// snapshot stays consistent until commit.
func (t *Tx) RegisteredEmails(ctx context.Context) ([]string, error) {
	return registeredEmails(ctx, t.tx)
}

// RegisteredEmails returns every stored email outside a transaction. The
// result is advisory: use Tx.RegisteredEmails before a write.
func (db *DB) RegisteredEmails(ctx context.Context) ([]string, error) {
	return registeredEmails(ctx, db.conn)
}

func registeredEmails(ctx context.Context, q querier) ([]string, error) {
	start := time.Now()
	rows, err := q.QueryContext(ctx, `SELECT email FROM candidates`)
	metrics.RecordDBQuery("SELECT", "candidates", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query emails: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var emails []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, fmt.Errorf("failed to scan email: %w", err)
		}
		emails = append(emails, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating emails: %w", err)
	}
	return emails, nil
}

// InsertCandidate stores c. SubmittedAt and UpdatedAt are set when zero.
func (t *Tx) InsertCandidate(ctx context.Context, c *models.Candidate) error {
	now := t.now().UTC()
	if c.SubmittedAt.IsZero() {
		c.SubmittedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.SubmittedAt
	}
	exceptions, err := marshalWaivers(c.Exceptions)
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = t.tx.ExecContext(ctx, `INSERT INTO candidates (`+candidateColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.FullName, c.Email, c.Phone, c.DateOfBirth, c.HighestQualification,
		c.GraduationYear, c.PercentageCGPA, c.ScoreType, c.ScreeningTestScore, c.InterviewStatus,
		c.Aadhaar, c.OfferLetterSent, exceptions, c.ExceptionCount, c.FlaggedForReview,
		formatTime(c.SubmittedAt), formatTime(c.UpdatedAt),
	)
	metrics.RecordDBQuery("INSERT", "candidates", time.Since(start), err)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

// UpdateCandidate overwrites every mutable column of c and bumps UpdatedAt.
func (t *Tx) UpdateCandidate(ctx context.Context, c *models.Candidate) error {
	c.UpdatedAt = t.now().UTC()
	exceptions, err := marshalWaivers(c.Exceptions)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := t.tx.ExecContext(ctx, `UPDATE candidates SET
		full_name = ?, email = ?, phone = ?, date_of_birth = ?, highest_qualification = ?,
		graduation_year = ?, percentage_cgpa = ?, score_type = ?, screening_test_score = ?,
		interview_status = ?, aadhaar = ?, offer_letter_sent = ?, exceptions = ?,
		exception_count = ?, flagged_for_review = ?, updated_at = ?
		WHERE id = ?`,
		c.FullName, c.Email, c.Phone, c.DateOfBirth, c.HighestQualification,
		c.GraduationYear, c.PercentageCGPA, c.ScoreType, c.ScreeningTestScore,
		c.InterviewStatus, c.Aadhaar, c.OfferLetterSent, exceptions,
		c.ExceptionCount, c.FlaggedForReview, formatTime(c.UpdatedAt),
		c.ID,
	)
	metrics.RecordDBQuery("UPDATE", "candidates", time.Since(start), err)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	return expectOneRow(res)
}

// DeleteCandidate removes the candidate with id.
func (t *Tx) DeleteCandidate(ctx context.Context, id string) error {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, `DELETE FROM candidates WHERE id = ?`, id)
	metrics.RecordDBQuery("DELETE", "candidates", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	return expectOneRow(res)
}

// GetCandidate reads a candidate inside the transaction.
func (t *Tx) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	return getCandidate(ctx, t.tx, id)
}

// GetCandidate returns the candidate with id, or ErrNotFound.
func (db *DB) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	return getCandidate(ctx, db.conn, id)
}

func getCandidate(ctx context.Context, q querier, id string) (*models.Candidate, error) {
	start := time.Now()
	row := q.QueryRowContext(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = ?`, id)
	c, err := scanCandidate(row)
	metrics.RecordDBQuery("SELECT", "candidates", time.Since(start), ignoreNoRows(err))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return c, nil
}

// ListCandidates returns candidates newest first. A non-positive limit
// returns every row from offset on.
func (db *DB) ListCandidates(ctx context.Context, limit, offset int) ([]models.Candidate, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	if offset < 0 {
		offset = 0
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `SELECT `+candidateColumns+` FROM candidates
		ORDER BY submitted_at DESC, rowid DESC LIMIT ? OFFSET ?`, limit, offset)
	metrics.RecordDBQuery("SELECT", "candidates", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out := make([]models.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return out, nil
}

// Stats summarizes the candidates table. ExceptionRate is the percentage of
// candidates with at least one waiver, rounded to one decimal, and 0 when
// the table is empty.
func (db *DB) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var s models.DashboardStats
	start := time.Now()
	err := db.conn.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN exception_count > 0 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN flagged_for_review = 1 THEN 1 ELSE 0 END), 0)
		FROM candidates`).Scan(&s.TotalSubmissions, &s.WithExceptions, &s.FlaggedCount)
	metrics.RecordDBQuery("SELECT", "candidates", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	s.ExceptionRate = exceptionRate(s.WithExceptions, s.TotalSubmissions)
	return &s, nil
}

func exceptionRate(withExceptions, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(withExceptions)/float64(total)*1000) / 10
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(s rowScanner) (*models.Candidate, error) {
	var (
		c                  models.Candidate
		exceptions         string
		submitted, updated string
	)
	err := s.Scan(
		&c.ID, &c.FullName, &c.Email, &c.Phone, &c.DateOfBirth, &c.HighestQualification,
		&c.GraduationYear, &c.PercentageCGPA, &c.ScoreType, &c.ScreeningTestScore, &c.InterviewStatus,
		&c.Aadhaar, &c.OfferLetterSent, &exceptions, &c.ExceptionCount, &c.FlaggedForReview,
		&submitted, &updated,
	)
	if err != nil {
		return nil, err
	}
	if c.Exceptions, err = unmarshalWaivers(exceptions); err != nil {
		return nil, err
	}
	if c.SubmittedAt, err = parseTime(submitted); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &c, nil
}

func marshalWaivers(w []models.Waiver) (string, error) {
	if w == nil {
		w = []models.Waiver{}
	}
	b, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("failed to encode exceptions: %w", err)
	}
	return string(b), nil
}

func unmarshalWaivers(s string) ([]models.Waiver, error) {
	out := []models.Waiver{}
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("failed to decode exceptions: %w", err)
	}
	return out, nil
}

// timeLayout is fixed-width so stored timestamps sort lexically in time
// order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func ignoreNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}
