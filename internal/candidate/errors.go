// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package candidate

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/admitguard/internal/database"
)

var (
	// ErrNotFound is returned when no candidate has the requested id.
	ErrNotFound = errors.New("candidate not found")

	// ErrEmailTaken is returned when another candidate registered the same
	// email between the decision and the write.
	ErrEmailTaken = errors.New("email already registered")

	// ErrRejected is returned when the decision does not admit the record.
	// The accompanying Result carries the decision.
	ErrRejected = errors.New("submission rejected")

	// ErrInvalidQuery is returned for an unknown audit log filter.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrUnavailable is returned while the storage circuit breaker is open.
	ErrUnavailable = errors.New("candidate storage unavailable")
)

// translate maps storage and breaker errors to this package's sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrRejected), errors.Is(err, ErrInvalidQuery),
		errors.Is(err, ErrUnavailable):
		return err
	case errors.Is(err, database.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, database.ErrDuplicateEmail):
		return ErrEmailTaken
	case errors.Is(err, database.ErrInvalidFilter):
		return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

// isExpected reports whether err is an outcome of valid use rather than a
// storage fault. Expected errors do not count against the circuit breaker.
func isExpected(err error) bool {
	return err == nil ||
		errors.Is(err, database.ErrNotFound) ||
		errors.Is(err, database.ErrDuplicateEmail) ||
		errors.Is(err, database.ErrInvalidFilter) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrRejected) ||
		errors.Is(err, context.Canceled)
}
