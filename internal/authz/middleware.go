// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package authz

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/admitguard/internal/auth"
	"github.com/tomtom215/admitguard/internal/logging"
	"github.com/tomtom215/admitguard/internal/metrics"
	"github.com/tomtom215/admitguard/internal/models"
)

// DenyFunc is called for every denied request, after the response is
// chosen and before it is written.
type DenyFunc func(r *http.Request, subject *auth.Subject, object, action string)

// Middleware authorizes requests by path and method.
type Middleware struct {
	enforcer *Enforcer
	onDeny   DenyFunc
}

// NewMiddleware creates a new authorization middleware. onDeny may be nil.
func NewMiddleware(enforcer *Enforcer, onDeny DenyFunc) *Middleware {
	return &Middleware{enforcer: enforcer, onDeny: onDeny}
}

// AuthorizeRequest maps the HTTP method to an action and enforces it on
// the request path. It must run after session authentication; a request
// with no subject is 401, an unauthorized one 403.
func (m *Middleware) AuthorizeRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject := auth.SubjectFromContext(r.Context())
		if subject == nil {
			auth.WriteUnauthorized(w, r)
			return
		}

		action := methodToAction(r.Method)
		object := r.URL.Path

		allowed, err := m.enforcer.EnforceWithRoles(subject.Username, subject.Roles, object, action)
		if err != nil {
			metrics.AuthzDecisions.WithLabelValues("error").Inc()
			logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
			writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Authorization failed")
			return
		}
		if !allowed {
			metrics.AuthzDecisions.WithLabelValues("denied").Inc()
			logging.Ctx(r.Context()).Warn().
				Str("username", logging.SanitizeUsername(subject.Username)).
				Str("object", object).
				Str("action", action).
				Msg("Authorization denied")
			if m.onDeny != nil {
				m.onDeny(r, subject, object, action)
			}
			writeError(w, r, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
			return
		}

		metrics.AuthzDecisions.WithLabelValues("allowed").Inc()
		next.ServeHTTP(w, r)
	})
}

// methodToAction maps HTTP methods to Casbin actions.
func methodToAction(method string) string {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return "write"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	resp := models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
		Error: &models.APIError{Code: code, Message: message},
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode error response")
	}
}
