// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package candidate

import (
	"context"
	"fmt"
	"maps"

	"github.com/google/uuid"

	"github.com/tomtom215/admitguard/internal/intake"
	"github.com/tomtom215/admitguard/internal/logging"
	"github.com/tomtom215/admitguard/internal/metrics"
	"github.com/tomtom215/admitguard/internal/models"
)

// Actors recorded in the audit log.
const (
	ActorPublic = "public"
)

// Result is the outcome of a Submit or Update. Decision is always set;
// Candidate is set only when the record was stored.
type Result struct {
	Decision  intake.Decision
	Candidate *models.Candidate
}

// Service runs intake decisions and persists admitted candidates.
type Service struct {
	engine *intake.Engine
	store  Store
}

// NewService creates a service deciding with engine and persisting to store.
func NewService(engine *intake.Engine, store Store) *Service {
	return &Service{engine: engine, store: store}
}

// Engine returns the decision engine.
func (s *Service) Engine() *intake.Engine {
	return s.engine
}

// Preview decides sub against the current registrations without storing
// anything.
func (s *Service) Preview(ctx context.Context, sub intake.Submission) (intake.Decision, error) {
	emails, err := s.store.RegisteredEmails(ctx)
	if err != nil {
		return intake.Decision{}, translate(err)
	}
	rec := sub.Record.Normalized()
	d := s.engine.Decide(rec, intake.NewEmailSet(emails...), sub.Waivers)
	logDecision(ctx, "preview", rec, d)
	return d, nil
}

// ValidateField returns the base outcome of one field against the current
// registrations.
func (s *Service) ValidateField(ctx context.Context, f intake.Field, rec intake.Record) (intake.Outcome, error) {
	var registered intake.EmailSet
	if f == intake.FieldEmail {
		emails, err := s.store.RegisteredEmails(ctx)
		if err != nil {
			return intake.Outcome{}, translate(err)
		}
		registered = intake.NewEmailSet(emails...)
	}
	return s.engine.ValidateField(f, rec, registered)
}

// Submit decides sub and, when admitted, stores the candidate and a
// SUBMISSION audit entry. The email snapshot, the decision and the write
// share one transaction.
//
// A record that is not admitted returns ErrRejected with the decision in
// the Result.
func (s *Service) Submit(ctx context.Context, sub intake.Submission, actor string) (*Result, error) {
	rec := sub.Record.Normalized()
	res := &Result{}
	decided := false

	err := s.store.Update(ctx, func(tx Tx) error {
		emails, err := tx.RegisteredEmails(ctx)
		if err != nil {
			return err
		}
		res.Decision = s.engine.Decide(rec, intake.NewEmailSet(emails...), sub.Waivers)
		decided = true
		if !res.Decision.Admit {
			return ErrRejected
		}

		c, err := fromRecord(rec, res.Decision)
		if err != nil {
			return err
		}
		c.ID = uuid.NewString()
		if err := tx.InsertCandidate(ctx, c); err != nil {
			return err
		}
		if err := tx.InsertAudit(ctx, auditEntry(ctx, c, models.AuditSubmission, actor)); err != nil {
			return err
		}
		res.Candidate = c
		return nil
	})

	if decided {
		logDecision(ctx, "submit", rec, res.Decision)
		recordDecision(res.Decision)
	}
	if err != nil {
		return res, translate(err)
	}

	logging.Ctx(ctx).Info().
		Str("candidate_id", res.Candidate.ID).
		Str("email", logging.SanitizeEmail(res.Candidate.Email)).
		Int("waiver_count", res.Candidate.ExceptionCount).
		Bool("flagged", res.Candidate.FlaggedForReview).
		Msg("Candidate admitted")
	return res, nil
}

// Update merges patch over the stored candidate and re-runs the decision.
// The candidate's own email is excluded from the uniqueness snapshot, and
// its stored waivers are requested again unless patch supplies its own for
// the same field. A merged record that is not admitted returns ErrRejected
// and nothing changes.
func (s *Service) Update(ctx context.Context, id string, patch intake.Submission, actor string) (*Result, error) {
	res := &Result{}

	err := s.store.Update(ctx, func(tx Tx) error {
		current, err := tx.GetCandidate(ctx, id)
		if err != nil {
			return err
		}

		rec := toRecord(current)
		maps.Copy(rec, patch.Record)
		rec = rec.Normalized()

		waivers := storedWaivers(current)
		maps.Copy(waivers, patch.Waivers)

		emails, err := tx.RegisteredEmails(ctx)
		if err != nil {
			return err
		}
		registered := intake.NewEmailSet(emails...).Without(current.Email)

		res.Decision = s.engine.Decide(rec, registered, waivers)
		logDecision(ctx, "edit", rec, res.Decision)
		if !res.Decision.Admit {
			return ErrRejected
		}

		updated, err := fromRecord(rec, res.Decision)
		if err != nil {
			return err
		}
		updated.ID = current.ID
		updated.SubmittedAt = current.SubmittedAt
		if err := tx.UpdateCandidate(ctx, updated); err != nil {
			return err
		}
		if err := tx.InsertAudit(ctx, auditEntry(ctx, updated, models.AuditAdminEdit, actor)); err != nil {
			return err
		}
		res.Candidate = updated
		return nil
	})
	if err != nil {
		return res, translate(err)
	}

	logging.Ctx(ctx).Info().
		Str("candidate_id", id).
		Str("actor", actor).
		Msg("Candidate edited")
	return res, nil
}

// Delete removes a candidate and records an ADMIN_DELETE entry. The audit
// entry keeps the candidate's name, email and waivers.
func (s *Service) Delete(ctx context.Context, id, actor string) error {
	err := s.store.Update(ctx, func(tx Tx) error {
		current, err := tx.GetCandidate(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteCandidate(ctx, id); err != nil {
			return err
		}
		return tx.InsertAudit(ctx, auditEntry(ctx, current, models.AuditAdminDelete, actor))
	})
	if err != nil {
		return translate(err)
	}

	logging.Ctx(ctx).Info().Str("candidate_id", id).Str("actor", actor).Msg("Candidate deleted")
	return nil
}

// Get returns one candidate.
func (s *Service) Get(ctx context.Context, id string) (*models.Candidate, error) {
	c, err := s.store.GetCandidate(ctx, id)
	return c, translate(err)
}

// List returns a page of candidates, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Candidate, error) {
	list, err := s.store.ListCandidates(ctx, limit, offset)
	return list, translate(err)
}

// Stats returns dashboard statistics.
func (s *Service) Stats(ctx context.Context) (*models.DashboardStats, error) {
	st, err := s.store.Stats(ctx)
	return st, translate(err)
}

// AuditLog returns a page of the audit log and the total match count.
func (s *Service) AuditLog(ctx context.Context, q models.AuditQuery) ([]models.AuditEntry, int, error) {
	entries, total, err := s.store.AuditLog(ctx, q)
	return entries, total, translate(err)
}

// Ping checks the store.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("store ping: %w", err)
	}
	return nil
}

func auditEntry(ctx context.Context, c *models.Candidate, action models.AuditAction, actor string) *models.AuditEntry {
	return &models.AuditEntry{
		ID:               uuid.NewString(),
		CandidateID:      c.ID,
		CandidateName:    c.FullName,
		CandidateEmail:   c.Email,
		Action:           action,
		Actor:            actor,
		ExceptionCount:   c.ExceptionCount,
		FlaggedForReview: c.FlaggedForReview,
		Exceptions:       c.Exceptions,
		RequestID:        logging.RequestIDFromContext(ctx),
	}
}

// logDecision writes one line per decision: Info when admitted, Warn when
// not. Field values are never logged, only which fields failed.
func logDecision(ctx context.Context, op string, rec intake.Record, d intake.Decision) {
	log := logging.Ctx(ctx)
	event := log.Info()
	if !d.Admit {
		event = log.Warn()
	}

	failed := make([]string, 0, len(d.BlockingErrors))
	for f := range d.BlockingErrors {
		failed = append(failed, string(f))
	}

	event.
		Str("op", op).
		Str("email", logging.SanitizeEmail(rec.Get(intake.FieldEmail))).
		Int("fields", len(rec)).
		Bool("admit", d.Admit).
		Int("blocking_errors", len(d.BlockingErrors)).
		Strs("failed_fields", failed).
		Int("waiver_count", d.WaiverCount).
		Bool("flagged", d.Flagged).
		Str("rules_version", d.RulesVersion).
		Msg("Intake decision")
}

func recordDecision(d intake.Decision) {
	summary := metrics.DecisionSummary{Admitted: d.Admit, Flagged: d.Flagged}
	for _, w := range d.AppliedWaivers() {
		summary.WaivedFields = append(summary.WaivedFields, string(w.Field))
	}
	for f := range d.BlockingErrors {
		if f.IsStrict() {
			summary.StrictFailures = append(summary.StrictFailures, string(f))
		} else {
			summary.SoftFailures = append(summary.SoftFailures, string(f))
		}
	}
	metrics.RecordDecision(summary)
}
