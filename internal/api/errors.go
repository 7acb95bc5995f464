// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/admitguard/internal/candidate"
	"github.com/tomtom215/admitguard/internal/intake"
)

// respondServiceError maps candidate service errors to HTTP responses.
// A rejected decision carries its blocking and waived errors in details.
func respondServiceError(w http.ResponseWriter, r *http.Request, res *candidate.Result, err error) {
	switch {
	case errors.Is(err, candidate.ErrRejected):
		var details map[string]interface{}
		if res != nil {
			details = rejectionDetails(res.Decision)
		}
		respondErrorDetails(w, r, http.StatusUnprocessableEntity, ErrCodeValidation,
			"Submission rejected", details, nil)
	case errors.Is(err, candidate.ErrEmailTaken):
		respondErrorDetails(w, r, http.StatusConflict, ErrCodeConflict,
			"Email is already registered",
			map[string]interface{}{"blocking_errors": map[intake.Field]string{
				intake.FieldEmail: "This email is already registered.",
			}}, nil)
	case errors.Is(err, candidate.ErrNotFound):
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Candidate not found", nil)
	case errors.Is(err, candidate.ErrInvalidQuery):
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "Invalid query", err)
	case errors.Is(err, candidate.ErrUnavailable):
		w.Header().Set("Retry-After", "30")
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Candidate storage is temporarily unavailable", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Request canceled", err)
	default:
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal,
			"Internal server error", err)
	}
}

func rejectionDetails(d intake.Decision) map[string]interface{} {
	return map[string]interface{}{
		"blocking_errors": d.BlockingErrors,
		"waived_errors":   d.WaivedErrors,
		"waiver_count":    d.WaiverCount,
		"flagged":         d.Flagged,
		"rules_version":   d.RulesVersion,
	}
}
