// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/admitguard/internal/authz"
	"github.com/tomtom215/admitguard/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	authz         *authz.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router.
func NewRouter(handler *Handler, authzMiddleware *authz.Middleware, chiMiddleware *ChiMiddleware) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		authz:         authzMiddleware,
		chiMiddleware: chiMiddleware,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeValidation, "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SecurityHeaders)

		r.Get("/health", h.Health)

		// ========================
		// Public Intake Endpoints
		// ========================
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit("public"))

			r.Post("/validate", h.Validate)
			r.Post("/validate/{field}", h.ValidateField)

			r.Post("/candidates", h.CreateCandidate)
			r.Get("/candidates", h.ListCandidates)
			r.Get("/candidates/{id}", h.GetCandidate)

			r.Get("/audit-log", h.AuditLog)
			r.Get("/dashboard", h.Dashboard)
		})

		// ========================
		// Admin Endpoints
		// ========================
		r.Route("/admin", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit("admin"))
			r.Use(h.sessions.Authenticate)

			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/status", h.Status)

			r.Group(func(r chi.Router) {
				r.Use(router.authz.AuthorizeRequest)

				r.Get("/candidates", h.AdminListCandidates)
				r.Get("/candidates/{id}", h.AdminGetCandidate)
				r.Put("/candidates/{id}", h.AdminUpdateCandidate)
				r.Delete("/candidates/{id}", h.AdminDeleteCandidate)

				r.Get("/security-events", h.SecurityEvents)
			})
		})
	})

	return r
}
