// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tomtom215/admitguard/internal/auth"
	"github.com/tomtom215/admitguard/internal/logging"
	"github.com/tomtom215/admitguard/internal/models"
)

// getIntParam extracts an integer query parameter. Absent values yield
// defaultValue, malformed ones -1.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}
	return intValue
}

// respondBodyError answers a body that could not be read or decoded.
func respondBodyError(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		respondError(w, r, http.StatusRequestEntityTooLarge, ErrCodeValidation, "Request body too large", nil)
	case errors.Is(err, errEmptyBody):
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "Request body is required", nil)
	default:
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Malformed request body")
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "Request body must be a JSON object", nil)
	}
}

// respondValidation answers a request that failed struct validation.
func respondValidation(w http.ResponseWriter, r *http.Request, apiErr *models.APIError) {
	respondErrorDetails(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
}

// actorName returns the audit actor for an admin request.
func actorName(r *http.Request) string {
	if s := auth.SubjectFromContext(r.Context()); s != nil {
		return "admin:" + s.Username
	}
	return "admin"
}
