// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/admitguard/internal/intake"
)

// FieldResult is the per-field entry of a validation response. Soft
// fields also carry their waiver adjudication.
type FieldResult struct {
	intake.Outcome
	Adjudication *intake.Adjudication `json:"adjudication,omitempty"`
}

// ValidateResponse is the body of POST /api/validate.
type ValidateResponse struct {
	Valid        bool                              `json:"valid"`
	Errors       map[intake.Field]string           `json:"errors"`
	SoftErrors   map[intake.Field]intake.SoftError `json:"soft_errors"`
	Results      map[intake.Field]FieldResult      `json:"results"`
	WaiverCount  int                               `json:"waiver_count"`
	Flagged      bool                              `json:"flagged"`
	RulesVersion string                            `json:"rules_version"`
}

func newValidateResponse(d intake.Decision) ValidateResponse {
	results := make(map[intake.Field]FieldResult, len(d.Strict)+len(d.Soft))
	for f, o := range d.Strict {
		results[f] = FieldResult{Outcome: o}
	}
	for f, res := range d.Soft {
		adj := res.Adjudication
		results[f] = FieldResult{Outcome: res.Outcome, Adjudication: &adj}
	}
	return ValidateResponse{
		Valid:        d.Admit,
		Errors:       d.BlockingErrors,
		SoftErrors:   d.WaivedErrors,
		Results:      results,
		WaiverCount:  d.WaiverCount,
		Flagged:      d.Flagged,
		RulesVersion: d.RulesVersion,
	}
}

// Validate decides a submission without storing it. The response is 200
// whether or not the record would be admitted; see "valid".
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sub, err := decodeSubmission(w, r)
	if err != nil {
		respondBodyError(w, r, err)
		return
	}

	d, err := h.service.Preview(r.Context(), sub)
	if err != nil {
		respondServiceError(w, r, nil, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, newValidateResponse(d), start)
}

// ValidateField returns the base outcome of the field named in the path.
// The body is the form so far; cross-field checks read from it.
func (h *Handler) ValidateField(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	field := intake.Field(chi.URLParam(r, "field"))
	if !field.IsStrict() && !field.IsSoft() {
		respondErrorDetails(w, r, http.StatusBadRequest, ErrCodeValidation,
			"Unknown field", map[string]interface{}{"field": string(field)}, nil)
		return
	}

	sub, err := decodeSubmission(w, r)
	if err != nil {
		respondBodyError(w, r, err)
		return
	}

	outcome, err := h.service.ValidateField(r.Context(), field, sub.Record.Normalized())
	if errors.Is(err, intake.ErrUnknownField) {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "Unknown field", nil)
		return
	}
	if err != nil {
		respondServiceError(w, r, nil, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"field":  field,
		"result": outcome,
	}, start)
}
