// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package models

import "time"

// Candidate is an admitted applicant as stored in the candidates table.
// Field values are in normalized form: trimmed, email lowercased.
type Candidate struct {
	ID                   string    `json:"id"`
	FullName             string    `json:"full_name"`
	Email                string    `json:"email"`
	Phone                string    `json:"phone"`
	DateOfBirth          string    `json:"date_of_birth"`
	HighestQualification string    `json:"highest_qualification"`
	GraduationYear       int       `json:"graduation_year"`
	PercentageCGPA       float64   `json:"percentage_cgpa"`
	ScoreType            string    `json:"score_type"`
	ScreeningTestScore   float64   `json:"screening_test_score"`
	InterviewStatus      string    `json:"interview_status"`
	Aadhaar              string    `json:"aadhaar"`
	OfferLetterSent      string    `json:"offer_letter_sent"`
	Exceptions           []Waiver  `json:"exceptions"`
	ExceptionCount       int       `json:"exception_count"`
	FlaggedForReview     bool      `json:"flagged_for_review"`
	SubmittedAt          time.Time `json:"submitted_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Waiver is an accepted exception: a soft-rule failure excused by a
// rationale.
type Waiver struct {
	Field         string `json:"field"`
	Rationale     string `json:"rationale"`
	OriginalError string `json:"original_error"`
}

// AuditAction names what happened to a candidate.
type AuditAction string

const (
	AuditSubmission  AuditAction = "SUBMISSION"
	AuditAdminEdit   AuditAction = "ADMIN_EDIT"
	AuditAdminDelete AuditAction = "ADMIN_DELETE"
)

// AuditEntry is one append-only row of the audit log. Candidate name and
// email are copied so entries survive deletion of the candidate.
type AuditEntry struct {
	ID               string      `json:"id"`
	CandidateID      string      `json:"candidate_id"`
	CandidateName    string      `json:"candidate_name"`
	CandidateEmail   string      `json:"candidate_email"`
	Action           AuditAction `json:"action"`
	Actor            string      `json:"actor"`
	ExceptionCount   int         `json:"exception_count"`
	FlaggedForReview bool        `json:"flagged_for_review"`
	Exceptions       []Waiver    `json:"exceptions"`
	RequestID        string      `json:"request_id,omitempty"`
	Timestamp        time.Time   `json:"timestamp"`
}

// Audit log filters accepted by AuditQuery.Filter.
const (
	AuditFilterAll        = "all"
	AuditFilterFlagged    = "flagged"
	AuditFilterExceptions = "exceptions"
)

// AuditQuery selects audit entries. Results are always newest first.
type AuditQuery struct {
	Filter string // all (default), flagged, exceptions
	Search string // case-insensitive match on candidate name or email
	Limit  int
	Offset int
}

// DashboardStats summarizes the candidates table.
type DashboardStats struct {
	TotalSubmissions int     `json:"total_submissions"`
	WithExceptions   int     `json:"with_exceptions"`
	FlaggedCount     int     `json:"flagged_count"`
	ExceptionRate    float64 `json:"exception_rate"` // percent, one decimal
}
