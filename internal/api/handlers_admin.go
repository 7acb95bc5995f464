// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package api

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/admitguard/internal/audit"
	"github.com/tomtom215/admitguard/internal/auth"
	"github.com/tomtom215/admitguard/internal/logging"
	"github.com/tomtom215/admitguard/internal/metrics"
	"github.com/tomtom215/admitguard/internal/models"
)

// AdminStatus is the body of login and status responses.
type AdminStatus struct {
	Authenticated bool       `json:"authenticated"`
	Username      string     `json:"username,omitempty"`
	Roles         []string   `json:"roles,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// AdminCandidates is the body of GET /api/admin/candidates.
type AdminCandidates struct {
	Candidates []models.Candidate     `json:"candidates"`
	Stats      *models.DashboardStats `json:"stats"`
}

// Login authenticates the admin and starts a session. Failed attempts are
// throttled per client IP; a throttled client gets 429 with Retry-After
// before its credentials are checked.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	source := audit.SourceFromRequest(r)

	if allowed, retryAfter := h.limiter.Check(source.IPAddress); !allowed {
		metrics.RecordLoginAttempt("throttled")
		h.events.LogAuthThrottled(ctx, source, retryAfter)
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		respondError(w, r, http.StatusTooManyRequests, ErrCodeRateLimited,
			"Too many failed login attempts", nil)
		return
	}

	var req models.LoginRequest
	apiErr, err := decodeJSON(w, r, &req)
	if err != nil {
		respondBodyError(w, r, err)
		return
	}
	if apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	if err := h.credentials.Verify(req.Username, req.Password); err != nil {
		h.limiter.Failure(source.IPAddress)
		metrics.RecordLoginAttempt("failure")
		h.events.LogAuthFailure(ctx, logging.SanitizeUsername(req.Username), source, "invalid credentials")
		respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid username or password", nil)
		return
	}

	session, err := h.sessions.CreateSession(ctx, w, r, h.credentials.Username(), h.credentials.Roles())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to create session", err)
		return
	}

	h.limiter.Success(source.IPAddress)
	metrics.RecordLoginAttempt("success")
	h.events.LogAuthSuccess(ctx, audit.AdminActor(session.Username, session.Roles, logging.SanitizeSessionID(session.ID)), source)
	logging.Ctx(ctx).Info().
		Str("username", logging.SanitizeUsername(session.Username)).
		Str("session_id", logging.SanitizeSessionID(session.ID)).
		Msg("Admin logged in")

	expires := session.ExpiresAt
	respondSuccess(w, r, http.StatusOK, AdminStatus{
		Authenticated: true,
		Username:      session.Username,
		Roles:         session.Roles,
		ExpiresAt:     &expires,
	}, time.Time{})
}

// Logout ends the current session, if any. It always succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject := auth.SubjectFromContext(ctx)

	if err := h.sessions.DestroySession(ctx, w, r); err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to end session", err)
		return
	}
	if subject != nil {
		h.events.LogLogout(ctx, subjectActor(subject), audit.SourceFromRequest(r))
	}
	respondSuccess(w, r, http.StatusOK, AdminStatus{Authenticated: false}, time.Time{})
}

// Status reports whether the request carries a valid admin session.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())
	if subject == nil {
		respondSuccess(w, r, http.StatusOK, AdminStatus{Authenticated: false}, time.Time{})
		return
	}
	respondSuccess(w, r, http.StatusOK, AdminStatus{
		Authenticated: true,
		Username:      subject.Username,
		Roles:         subject.Roles,
	}, time.Time{})
}

// AdminListCandidates returns unmasked candidates and dashboard stats.
func (h *Handler) AdminListCandidates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params := pageParams(r)
	if apiErr := validateRequest(&params); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}
	limit := effectiveLimit(params.Limit)

	list, err := h.service.List(r.Context(), limit, params.Offset)
	if err != nil {
		respondServiceError(w, r, nil, err)
		return
	}
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondServiceError(w, r, nil, err)
		return
	}
	if list == nil {
		list = []models.Candidate{}
	}
	respondPage(w, r, AdminCandidates{Candidates: list, Stats: stats},
		newPage(limit, params.Offset, len(list), stats.TotalSubmissions), start)
}

// AdminGetCandidate returns one unmasked candidate.
func (h *Handler) AdminGetCandidate(w http.ResponseWriter, r *http.Request) {
	h.getCandidate(w, r, false)
}

// AdminUpdateCandidate merges a partial form over a stored candidate and
// re-runs the decision. A merged record that is not admitted answers 422
// and changes nothing.
func (h *Handler) AdminUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	patch, apiErr, err := decodePatch(w, r)
	if err != nil {
		respondBodyError(w, r, err)
		return
	}
	if apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	res, err := h.service.Update(r.Context(), id, patch, actorName(r))
	if err != nil {
		respondServiceError(w, r, res, err)
		return
	}

	h.logAdminAction(r, "edit", id)
	respondSuccess(w, r, http.StatusOK, SubmitResponse{
		Candidate: res.Candidate,
		Decision:  newValidateResponse(res.Decision),
	}, start)
}

// AdminDeleteCandidate removes a candidate. The audit trail keeps its
// name, email and waivers.
func (h *Handler) AdminDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id, actorName(r)); err != nil {
		respondServiceError(w, r, nil, err)
		return
	}

	h.logAdminAction(r, "delete", id)
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{"deleted": id}, time.Time{})
}

func (h *Handler) logAdminAction(r *http.Request, action, candidateID string) {
	subject := auth.SubjectFromContext(r.Context())
	if subject == nil {
		return
	}
	h.events.LogAdminAction(r.Context(), subjectActor(subject), audit.SourceFromRequest(r), action, candidateID)
}

func subjectActor(s *auth.Subject) audit.Actor {
	return audit.AdminActor(s.Username, s.Roles, logging.SanitizeSessionID(s.SessionID))
}
