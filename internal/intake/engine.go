// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package intake

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/admitguard/internal/rules"
)

// ErrUnknownField is returned by ValidateField for a field with no validator.
var ErrUnknownField = errors.New("unknown field")

// SoftResult is a soft-field outcome after waiver adjudication.
type SoftResult struct {
	Outcome
	Adjudication Adjudication `json:"adjudication"`
}

// SoftError describes a soft field whose base check failed, whether or not
// a waiver excused it.
type SoftError struct {
	Message        string `json:"message"`
	WaiverEligible bool   `json:"waiver_eligible"`
	Applied        bool   `json:"applied"`
	Rationale      string `json:"rationale,omitempty"`
	RationaleError string `json:"rationale_error,omitempty"`
}

// AppliedWaiver is the persisted record of one accepted waiver.
type AppliedWaiver struct {
	Field         Field  `json:"field"`
	Rationale     string `json:"rationale"`
	OriginalError string `json:"original_error"`
}

// Decision is the verdict on a whole submission.
//
// Admit is true exactly when BlockingErrors is empty. Every soft failure
// that was not waived is also a blocking error. Flagged is true when
// WaiverCount exceeds the configured threshold.
type Decision struct {
	Admit          bool                 `json:"admit"`
	BlockingErrors map[Field]string     `json:"blocking_errors"`
	WaivedErrors   map[Field]SoftError  `json:"waived_errors"`
	WaiverCount    int                  `json:"waiver_count"`
	Flagged        bool                 `json:"flagged"`
	Strict         map[Field]Outcome    `json:"strict"`
	Soft           map[Field]SoftResult `json:"soft"`
	RulesVersion   string               `json:"rules_version"`
}

// AppliedWaivers lists accepted waivers in form order.
func (d Decision) AppliedWaivers() []AppliedWaiver {
	var out []AppliedWaiver
	for _, f := range SoftFields {
		res, ok := d.Soft[f]
		if !ok || !res.Adjudication.Applied {
			continue
		}
		out = append(out, AppliedWaiver{
			Field:         f,
			Rationale:     res.Adjudication.Rationale,
			OriginalError: res.Adjudication.OriginalError,
		})
	}
	return out
}

// Engine evaluates submissions against one immutable rule set. It is safe
// for concurrent use.
type Engine struct {
	rules rules.Rules
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for age calculation.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine returns an engine bound to a private copy of r.
func NewEngine(r rules.Rules, opts ...Option) *Engine {
	e := &Engine{rules: r.Clone(), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns a copy of the engine's rule set.
func (e *Engine) Rules() rules.Rules {
	return e.rules.Clone()
}

// EvaluateStrict runs every strict validator. registered is the snapshot of
// already-registered emails.
func (e *Engine) EvaluateStrict(rec Record, registered EmailSet) map[Field]Outcome {
	out := make(map[Field]Outcome, len(StrictFields))
	for _, f := range StrictFields {
		out[f] = e.strict(f, rec, registered)
	}
	return out
}

func (e *Engine) strict(f Field, rec Record, registered EmailSet) Outcome {
	r := &e.rules
	switch f {
	case FieldFullName:
		return ValidateFullName(r.Name, rec.Get(f))
	case FieldEmail:
		return ValidateEmail(r.Email, rec.Get(f), registered)
	case FieldPhone:
		return ValidatePhone(r.Phone, rec.Get(f))
	case FieldQualification:
		return ValidateQualification(r.Qualification, rec.Get(f))
	case FieldInterviewStatus:
		return ValidateInterviewStatus(r.Interview, rec.Get(f))
	case FieldAadhaar:
		return ValidateAadhaar(r.Aadhaar, rec.Get(f))
	case FieldOfferLetter:
		return ValidateOfferLetter(r.OfferLetter, rec.Get(f), rec.Get(FieldInterviewStatus))
	}
	panic(fmt.Sprintf("intake: no strict validator for %q", f))
}

// soft returns the base outcome for a soft field, before any waiver.
func (e *Engine) soft(f Field, rec Record) Outcome {
	r := &e.rules
	switch f {
	case FieldDateOfBirth:
		return ValidateDateOfBirth(r.Age, rec.Get(f), e.now())
	case FieldGraduationYear:
		return ValidateGraduationYear(r.GraduationYear, rec.Get(f))
	case FieldScore:
		return ValidateScore(r.Score, rec.Get(f), rec.Get(FieldScoreType))
	case FieldScreeningScore:
		return ValidateScreeningScore(r.Screening, rec.Get(f))
	}
	panic(fmt.Sprintf("intake: no soft validator for %q", f))
}

// Adjudicate applies the engine's rationale policy to one soft outcome.
func (e *Engine) Adjudicate(outcome Outcome, req WaiverRequest) (Outcome, Adjudication) {
	return Adjudicate(e.rules.Rationale, outcome, req)
}

// EvaluateSoft runs every soft validator and adjudicates any requested
// waivers for waiver-eligible failures.
func (e *Engine) EvaluateSoft(rec Record, waivers Waivers) map[Field]SoftResult {
	out := make(map[Field]SoftResult, len(SoftFields))
	for _, f := range SoftFields {
		o, adj := e.Adjudicate(e.soft(f, rec), waivers[f])
		out[f] = SoftResult{Outcome: o, Adjudication: adj}
	}
	return out
}

// ValidateField runs the base validator of a single field, without waivers.
// Cross-field context (interview status, score type) is read from rec.
func (e *Engine) ValidateField(f Field, rec Record, registered EmailSet) (Outcome, error) {
	switch {
	case f.IsStrict():
		return e.strict(f, rec, registered), nil
	case f.IsSoft():
		return e.soft(f, rec), nil
	default:
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
}

// Decide evaluates every field and aggregates the results. Strict failures
// block regardless of how the soft fields fared.
func (e *Engine) Decide(rec Record, registered EmailSet, waivers Waivers) Decision {
	d := Decision{
		BlockingErrors: make(map[Field]string),
		WaivedErrors:   make(map[Field]SoftError),
		Strict:         e.EvaluateStrict(rec, registered),
		Soft:           e.EvaluateSoft(rec, waivers),
		RulesVersion:   e.rules.Version,
	}

	for f, o := range d.Strict {
		if !o.Valid {
			d.BlockingErrors[f] = o.Error
		}
	}

	for f, res := range d.Soft {
		adj := res.Adjudication
		switch {
		case adj.Applied:
			d.WaiverCount++
			d.WaivedErrors[f] = SoftError{
				Message:        adj.OriginalError,
				WaiverEligible: true,
				Applied:        true,
				Rationale:      adj.Rationale,
			}
		case !res.Valid:
			d.BlockingErrors[f] = res.Error
			d.WaivedErrors[f] = SoftError{
				Message:        res.Error,
				WaiverEligible: res.WaiverEligible,
				RationaleError: adj.RationaleError,
			}
		}
	}

	d.Admit = len(d.BlockingErrors) == 0
	d.Flagged = d.WaiverCount > e.rules.Review.MaxWaiversBeforeFlag
	return d
}
