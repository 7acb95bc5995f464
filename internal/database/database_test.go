// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/admitguard/internal/config"
	"github.com/tomtom215/admitguard/internal/models"
)

// setupTestDB opens a fresh SQLite file in a temp dir with a clock that
// advances one second per call.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:         filepath.Join(t.TempDir(), "data", "admitguard.db"),
		MaxOpenConns: 2,
	}
	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})

	base := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	tick := 0
	db.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})
	return db
}

func testCandidate(email string) *models.Candidate {
	return &models.Candidate{
		ID:                   uuid.NewString(),
		FullName:             "Asha Rao",
		Email:                email,
		Phone:                "9876543210",
		DateOfBirth:          "2000-01-15",
		HighestQualification: "B.Tech",
		GraduationYear:       2021,
		PercentageCGPA:       78.5,
		ScoreType:            "percentage",
		ScreeningTestScore:   72,
		InterviewStatus:      "Cleared",
		Aadhaar:              "123456789012",
		OfferLetterSent:      "Yes",
	}
}

func insertCandidate(t *testing.T, db *DB, c *models.Candidate) {
	t.Helper()
	err := db.WithTx(context.Background(), func(tx *Tx) error {
		return tx.InsertCandidate(context.Background(), c)
	})
	if err != nil {
		t.Fatalf("InsertCandidate(%s) error = %v", c.Email, err)
	}
}

func insertAudit(t *testing.T, db *DB, e *models.AuditEntry) {
	t.Helper()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	err := db.WithTx(context.Background(), func(tx *Tx) error {
		return tx.InsertAudit(context.Background(), e)
	})
	if err != nil {
		t.Fatalf("InsertAudit() error = %v", err)
	}
}

// ========================================
// Lifecycle
// ========================================

func TestNew_CreatesDirectoryAndSchema(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	db, err := New(&config.DatabaseConfig{Path: path, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
	for _, table := range []string{"candidates", "audit_log"} {
		var name string
		err := db.Conn().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestNew_Reopen(t *testing.T) {
	t.Parallel()

	cfg := &config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db"), MaxOpenConns: 1}
	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c := testCandidate("asha@example.com")
	insertCandidate(t, db, c)
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	db, err = New(cfg)
	if err != nil {
		t.Fatalf("reopen New() error = %v", err)
	}
	defer db.Close()
	if _, err := db.GetCandidate(context.Background(), c.ID); err != nil {
		t.Errorf("GetCandidate() after reopen error = %v", err)
	}
}

// ========================================
// Transactions
// ========================================

func TestWithTx_RollbackOnError(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	c := testCandidate("rollback@example.com")
	err := db.WithTx(ctx, func(tx *Tx) error {
		if err := tx.InsertCandidate(ctx, c); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want %v", err, boom)
	}
	if _, err := db.GetCandidate(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCandidate() error = %v, want ErrNotFound after rollback", err)
	}
}

func TestWithTx_SnapshotSeesOwnWrites(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	insertCandidate(t, db, testCandidate("first@example.com"))

	err := db.WithTx(ctx, func(tx *Tx) error {
		if err := tx.InsertCandidate(ctx, testCandidate("second@example.com")); err != nil {
			return err
		}
		emails, err := tx.RegisteredEmails(ctx)
		if err != nil {
			return err
		}
		if len(emails) != 2 {
			return fmt.Errorf("got %d emails, want 2", len(emails))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}
}

// ========================================
// Candidates
// ========================================

func TestCandidate_RoundTrip(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	c := testCandidate("asha@example.com")
	c.Exceptions = []models.Waiver{{
		Field:         "graduation_year",
		Rationale:     "Special case approved by the program director",
		OriginalError: "Graduation Year must be between 2015 and 2025. Got: 2012.",
	}}
	c.ExceptionCount = 1
	insertCandidate(t, db, c)

	got, err := db.GetCandidate(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCandidate() error = %v", err)
	}
	if got.Email != c.Email || got.GraduationYear != 2021 || got.PercentageCGPA != 78.5 {
		t.Errorf("GetCandidate() = %+v", got)
	}
	if len(got.Exceptions) != 1 || got.Exceptions[0].Field != "graduation_year" {
		t.Errorf("Exceptions = %+v", got.Exceptions)
	}
	if got.FlaggedForReview {
		t.Error("FlaggedForReview = true, want false")
	}
	if got.SubmittedAt.IsZero() || !got.SubmittedAt.Equal(got.UpdatedAt) {
		t.Errorf("timestamps: submitted=%v updated=%v", got.SubmittedAt, got.UpdatedAt)
	}
}

func TestCandidate_EmptyExceptionsDecodeAsEmptySlice(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)

	c := testCandidate("plain@example.com")
	insertCandidate(t, db, c)

	got, err := db.GetCandidate(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("GetCandidate() error = %v", err)
	}
	if got.Exceptions == nil || len(got.Exceptions) != 0 {
		t.Errorf("Exceptions = %#v, want empty non-nil slice", got.Exceptions)
	}
}

func TestInsertCandidate_DuplicateEmail(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	insertCandidate(t, db, testCandidate("dup@example.com"))

	err := db.WithTx(context.Background(), func(tx *Tx) error {
		return tx.InsertCandidate(context.Background(), testCandidate("dup@example.com"))
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("InsertCandidate() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestUpdateCandidate(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	c := testCandidate("edit@example.com")
	insertCandidate(t, db, c)
	insertCandidate(t, db, testCandidate("taken@example.com"))

	c.FullName = "Asha R. Rao"
	c.FlaggedForReview = true
	if err := db.WithTx(ctx, func(tx *Tx) error { return tx.UpdateCandidate(ctx, c) }); err != nil {
		t.Fatalf("UpdateCandidate() error = %v", err)
	}
	got, err := db.GetCandidate(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCandidate() error = %v", err)
	}
	if got.FullName != "Asha R. Rao" || !got.FlaggedForReview {
		t.Errorf("update not persisted: %+v", got)
	}
	if !got.UpdatedAt.After(got.SubmittedAt) {
		t.Errorf("UpdatedAt %v should be after SubmittedAt %v", got.UpdatedAt, got.SubmittedAt)
	}

	c.Email = "taken@example.com"
	err = db.WithTx(ctx, func(tx *Tx) error { return tx.UpdateCandidate(ctx, c) })
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("UpdateCandidate() to taken email error = %v, want ErrDuplicateEmail", err)
	}

	missing := testCandidate("ghost@example.com")
	err = db.WithTx(ctx, func(tx *Tx) error { return tx.UpdateCandidate(ctx, missing) })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateCandidate() unknown id error = %v, want ErrNotFound", err)
	}
}

func TestDeleteCandidate(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	c := testCandidate("gone@example.com")
	insertCandidate(t, db, c)

	if err := db.WithTx(ctx, func(tx *Tx) error { return tx.DeleteCandidate(ctx, c.ID) }); err != nil {
		t.Fatalf("DeleteCandidate() error = %v", err)
	}
	if _, err := db.GetCandidate(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCandidate() error = %v, want ErrNotFound", err)
	}
	err := db.WithTx(ctx, func(tx *Tx) error { return tx.DeleteCandidate(ctx, c.ID) })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteCandidate() error = %v, want ErrNotFound", err)
	}
}

func TestListCandidates_NewestFirstWithPaging(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		insertCandidate(t, db, testCandidate(fmt.Sprintf("c%d@example.com", i)))
	}

	all, err := db.ListCandidates(ctx, 0, 0)
	if err != nil {
		t.Fatalf("ListCandidates() error = %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("len = %d, want 5", len(all))
	}
	if all[0].Email != "c4@example.com" || all[4].Email != "c0@example.com" {
		t.Errorf("order = %s ... %s, want newest first", all[0].Email, all[4].Email)
	}

	page, err := db.ListCandidates(ctx, 2, 2)
	if err != nil {
		t.Fatalf("ListCandidates() error = %v", err)
	}
	if len(page) != 2 || page[0].Email != "c2@example.com" {
		t.Errorf("page = %+v", page)
	}
}

func TestStats(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	s, err := db.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if s.TotalSubmissions != 0 || s.ExceptionRate != 0 {
		t.Errorf("empty Stats() = %+v", s)
	}

	plain := testCandidate("a@example.com")
	waived := testCandidate("b@example.com")
	waived.ExceptionCount = 1
	flagged := testCandidate("c@example.com")
	flagged.ExceptionCount = 3
	flagged.FlaggedForReview = true
	for _, c := range []*models.Candidate{plain, waived, flagged} {
		insertCandidate(t, db, c)
	}

	s, err = db.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	want := models.DashboardStats{TotalSubmissions: 3, WithExceptions: 2, FlaggedCount: 1, ExceptionRate: 66.7}
	if *s != want {
		t.Errorf("Stats() = %+v, want %+v", *s, want)
	}
}

func TestExceptionRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		with, total int
		want        float64
	}{
		{0, 0, 0},
		{0, 4, 0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{1, 8, 12.5},
		{5, 5, 100},
	}
	for _, tt := range tests {
		if got := exceptionRate(tt.with, tt.total); got != tt.want {
			t.Errorf("exceptionRate(%d, %d) = %v, want %v", tt.with, tt.total, got, tt.want)
		}
	}
}

// ========================================
// Audit log
// ========================================

func seedAudit(t *testing.T, db *DB) {
	t.Helper()
	entries := []models.AuditEntry{
		{CandidateName: "Asha Rao", CandidateEmail: "asha@example.com", Action: models.AuditSubmission},
		{CandidateName: "Vikram Singh", CandidateEmail: "vikram@example.com", Action: models.AuditSubmission, ExceptionCount: 1},
		{CandidateName: "Meera_Iyer", CandidateEmail: "meera@college.edu", Action: models.AuditSubmission, ExceptionCount: 3, FlaggedForReview: true},
		{CandidateName: "Asha Rao", CandidateEmail: "asha@example.com", Action: models.AuditAdminEdit, Actor: "admin"},
	}
	for i := range entries {
		entries[i].CandidateID = uuid.NewString()
		insertAudit(t, db, &entries[i])
	}
}

func TestAuditLog_Filters(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	seedAudit(t, db)
	ctx := context.Background()

	tests := []struct {
		name      string
		query     models.AuditQuery
		wantTotal int
		wantFirst string
	}{
		{"all newest first", models.AuditQuery{}, 4, "asha@example.com"},
		{"explicit all", models.AuditQuery{Filter: "all"}, 4, "asha@example.com"},
		{"flagged", models.AuditQuery{Filter: "flagged"}, 1, "meera@college.edu"},
		{"exceptions", models.AuditQuery{Filter: "EXCEPTIONS"}, 2, "meera@college.edu"},
		{"search name case-insensitive", models.AuditQuery{Search: "VIKRAM"}, 1, "vikram@example.com"},
		{"search email", models.AuditQuery{Search: "college.edu"}, 1, "meera@college.edu"},
		{"search with filter", models.AuditQuery{Filter: "exceptions", Search: "asha"}, 0, ""},
		{"underscore is literal", models.AuditQuery{Search: "asha_rao"}, 0, ""},
		{"underscore matches itself", models.AuditQuery{Search: "meera_"}, 1, "meera@college.edu"},
		{"percent is literal", models.AuditQuery{Search: "%"}, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, total, err := db.AuditLog(ctx, tt.query)
			if err != nil {
				t.Fatalf("AuditLog() error = %v", err)
			}
			if total != tt.wantTotal || len(entries) != tt.wantTotal {
				t.Fatalf("AuditLog() total=%d len=%d, want %d", total, len(entries), tt.wantTotal)
			}
			if tt.wantFirst != "" && entries[0].CandidateEmail != tt.wantFirst {
				t.Errorf("first = %s, want %s", entries[0].CandidateEmail, tt.wantFirst)
			}
		})
	}
}

func TestAuditLog_NewestFirstAndPaging(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	seedAudit(t, db)
	ctx := context.Background()

	entries, total, err := db.AuditLog(ctx, models.AuditQuery{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("AuditLog() error = %v", err)
	}
	if total != 4 || len(entries) != 2 {
		t.Fatalf("total=%d len=%d, want 4 and 2", total, len(entries))
	}
	if entries[0].CandidateEmail != "meera@college.edu" || entries[1].CandidateEmail != "vikram@example.com" {
		t.Errorf("page = %s, %s", entries[0].CandidateEmail, entries[1].CandidateEmail)
	}
	if !entries[0].Timestamp.After(entries[1].Timestamp) {
		t.Errorf("timestamps not descending: %v then %v", entries[0].Timestamp, entries[1].Timestamp)
	}
	if entries[0].Action != models.AuditSubmission || !entries[0].FlaggedForReview {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestAuditLog_UnknownFilter(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)

	_, _, err := db.AuditLog(context.Background(), models.AuditQuery{Filter: "recent"})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("AuditLog() error = %v, want ErrInvalidFilter", err)
	}
}
