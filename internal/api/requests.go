// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tomtom215/admitguard/internal/intake"
	"github.com/tomtom215/admitguard/internal/models"
	"github.com/tomtom215/admitguard/internal/validation"
)

// maxBodyBytes caps request bodies. An intake form is well under 4 KiB.
const maxBodyBytes = 64 << 10

// Page size defaults for list endpoints.
const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

var errEmptyBody = errors.New("request body is empty")

// readBody reads a size-limited request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return nil, errEmptyBody
	}
	return body, nil
}

// decodeSubmission reads an intake form body.
func decodeSubmission(w http.ResponseWriter, r *http.Request) (intake.Submission, error) {
	var sub intake.Submission
	body, err := readBody(w, r)
	if err != nil {
		return sub, err
	}
	if err := json.Unmarshal(body, &sub); err != nil {
		return sub, err
	}
	return sub, nil
}

// decodePatch reads an admin edit body: a partial intake form. Every key
// other than "exceptions" must name an intake field, and the body must
// change something.
func decodePatch(w http.ResponseWriter, r *http.Request) (intake.Submission, *models.APIError, error) {
	var sub intake.Submission
	body, err := readBody(w, r)
	if err != nil {
		return sub, nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return sub, nil, err
	}

	_, hasExceptions := raw["exceptions"]
	keys := make([]string, 0, len(raw))
	for k := range raw {
		if k != "exceptions" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	if len(keys) > 0 || !hasExceptions {
		if apiErr := validateRequest(&models.CandidatePatch{Fields: keys}); apiErr != nil {
			return sub, apiErr, nil
		}
	}

	if err := json.Unmarshal(body, &sub); err != nil {
		return sub, nil, err
	}
	return sub, nil, nil
}

// decodeJSON reads a body into v and runs struct validation on it.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) (*models.APIError, error) {
	body, err := readBody(w, r)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return nil, err
	}
	return validateRequest(v), nil
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// pageParams reads limit and offset from the query string. Unparseable
// values become -1 so validation reports them.
func pageParams(r *http.Request) models.PageParams {
	return models.PageParams{
		Limit:  getIntParam(r, "limit", 0),
		Offset: getIntParam(r, "offset", 0),
	}
}

// effectiveLimit applies the default page size.
func effectiveLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}
