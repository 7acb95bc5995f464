// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

// Package audit records security events for the admin surface: logins,
// throttled logins, logouts, authorization denials and admin mutations.
//
// The candidate audit trail (SUBMISSION, ADMIN_EDIT, ADMIN_DELETE) is part
// of the data and lives in the SQLite audit_log table, written in the same
// transaction as the change it describes. This package is the operational
// complement: it answers "who tried to log in from where" and is served to
// admins at /api/admin/security-events.
//
// # Usage
//
//	logger := audit.NewLogger(audit.NewMemoryStore(10000), audit.DefaultConfig())
//	defer logger.Close()
//
//	logger.LogAuthFailure(ctx, "admin", audit.SourceFromRequest(r), "invalid credentials")
//
// Writes are asynchronous and buffered. Close drains the buffer.
package audit
