// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

/*
Package api provides the HTTP REST API for AdmitGuard.

Every response uses the models.APIResponse envelope:

	{"status": "success", "data": {...}, "metadata": {"timestamp": "...", "request_id": "..."}}
	{"status": "error", "data": null, "error": {"code": "CONFLICT", "message": "..."}, "metadata": {...}}

Endpoints:

Public (rate limited per IP):

  - GET  /api/health
  - POST /api/validate            decide a form without storing it
  - POST /api/validate/{field}    base outcome of one field
  - POST /api/candidates          decide and store; 201, 422 or 409
  - GET  /api/candidates          phone and Aadhaar masked
  - GET  /api/candidates/{id}
  - GET  /api/audit-log           ?filter=all|flagged|exceptions&search=
  - GET  /api/dashboard

Admin (session cookie, plus the Casbin admin role below login/status):

  - POST /api/admin/login, /api/admin/logout
  - GET  /api/admin/status
  - GET  /api/admin/candidates
  - GET|PUT|DELETE /api/admin/candidates/{id}
  - GET  /api/admin/security-events

Prometheus metrics are served at /metrics.

Error mapping:

	candidate.ErrRejected     422 VALIDATION_ERROR (details: blocking_errors, waived_errors)
	candidate.ErrEmailTaken   409 CONFLICT
	candidate.ErrNotFound     404 NOT_FOUND
	candidate.ErrInvalidQuery 400 VALIDATION_ERROR
	candidate.ErrUnavailable  503 SERVICE_UNAVAILABLE
*/
package api
