// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

/*
Package candidate connects the intake decision engine to storage.

Service.Submit takes a snapshot of registered emails, runs the decision and
writes the admitted candidate together with its audit entry, all inside one
immediate-mode SQLite transaction. Two concurrent submissions with the same
email therefore cannot both be admitted; the second one sees the first in
its snapshot.

Admin edits merge a partial record over the stored one and decide again.
The candidate's own email is removed from the snapshot, and the waivers it
was admitted with are requested again with their stored rationales.

# Circuit Breaker

BreakerStore wraps any Store with a sony/gobreaker circuit breaker:

	store := candidate.NewBreakerStore(candidate.NewSQLStore(db), candidate.BreakerConfig{
	    MaxFailures: 5,
	    Timeout:     30 * time.Second,
	})

While open, calls fail with an error matching ErrUnavailable after
translation. Ping always reaches the database.

# Errors

	ErrRejected     - the decision did not admit the record (Result carries it)
	ErrNotFound     - unknown candidate id
	ErrEmailTaken   - unique constraint hit on write
	ErrInvalidQuery - unknown audit filter
	ErrUnavailable  - circuit open
*/
package candidate
