// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

/*
Package auth provides admin authentication for AdmitGuard.

There is a single configured admin account. Its password is held only as a
bcrypt hash (AdminCredentials). A successful login creates a server-side
Session and sets the HttpOnly cookie admitguard_session; every later
request resolves the cookie back to a Subject on the request context.

# Session Stores

	memory - MemorySessionStore, lost on restart (default)
	badger - BadgerSessionStore, persisted under SESSION_STORE_PATH

Sessions slide: each authenticated request moves the expiry forward by the
configured TTL.

# Login Throttling

LoginLimiter keeps a golang.org/x/time/rate token bucket per client IP.
Each failed login spends a token; when the bucket is empty, Check reports
how long the client must wait. A successful login clears the bucket.

# Usage

	sessions := auth.NewSessionMiddleware(store, cfg)
	r.With(sessions.RequireAuth).Get("/api/admin/status", handler)

	subject := auth.SubjectFromContext(r.Context())
*/
package auth
