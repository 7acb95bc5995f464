// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package api

import (
	"time"

	"github.com/tomtom215/admitguard/internal/audit"
	"github.com/tomtom215/admitguard/internal/auth"
	"github.com/tomtom215/admitguard/internal/candidate"
)

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: shared helpers
//   - handlers_health.go: health endpoint
//   - handlers_validate.go: stateless validation endpoints
//   - handlers_candidates.go: submission, candidate reads, dashboard
//   - handlers_audit.go: audit log and security events
//   - handlers_admin.go: admin login and candidate management
type Handler struct {
	service     *candidate.Service
	sessions    *auth.SessionMiddleware
	credentials *auth.AdminCredentials
	limiter     *auth.LoginLimiter
	events      *audit.Logger
	version     string
	startTime   time.Time
}

// HandlerDeps are the collaborators of a Handler. All are required.
type HandlerDeps struct {
	Service     *candidate.Service
	Sessions    *auth.SessionMiddleware
	Credentials *auth.AdminCredentials
	Limiter     *auth.LoginLimiter
	Events      *audit.Logger
	Version     string
}

// NewHandler creates a new API handler.
//
// Example:
//
//	handler := api.NewHandler(api.HandlerDeps{Service: svc, ...})
//	router := api.NewRouter(handler, authzMW, chiMW)
//	srv := &http.Server{Handler: router.SetupChi()}
func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		service:     deps.Service,
		sessions:    deps.Sessions,
		credentials: deps.Credentials,
		limiter:     deps.Limiter,
		events:      deps.Events,
		version:     deps.Version,
		startTime:   time.Now(),
	}
}
