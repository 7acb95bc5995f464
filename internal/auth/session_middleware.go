// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/admitguard/internal/logging"
	"github.com/tomtom215/admitguard/internal/metrics"
	"github.com/tomtom215/admitguard/internal/models"
)

// DefaultCookieName is the admin session cookie.
const DefaultCookieName = "admitguard_session"

// SessionMiddlewareConfig holds configuration for the session middleware.
type SessionMiddlewareConfig struct {
	CookieName string
	SessionTTL time.Duration

	// SlidingSession extends the expiry on every authenticated request.
	SlidingSession bool

	CookiePath     string
	CookieSecure   bool
	CookieSameSite http.SameSite
}

// DefaultSessionMiddlewareConfig returns the defaults: an HttpOnly,
// SameSite=Lax cookie with a sliding 8 hour TTL.
func DefaultSessionMiddlewareConfig() *SessionMiddlewareConfig {
	return &SessionMiddlewareConfig{
		CookieName:     DefaultCookieName,
		SessionTTL:     8 * time.Hour,
		SlidingSession: true,
		CookiePath:     "/",
		CookieSecure:   true,
		CookieSameSite: http.SameSiteLaxMode,
	}
}

// SessionMiddleware resolves the session cookie to a Subject and manages
// the session lifecycle.
type SessionMiddleware struct {
	store  SessionStore
	config *SessionMiddlewareConfig
	now    func() time.Time
}

// NewSessionMiddleware creates a new session middleware.
func NewSessionMiddleware(store SessionStore, config *SessionMiddlewareConfig) *SessionMiddleware {
	if config == nil {
		config = DefaultSessionMiddlewareConfig()
	}
	if config.CookieName == "" {
		config.CookieName = DefaultCookieName
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 8 * time.Hour
	}
	return &SessionMiddleware{store: store, config: config, now: time.Now}
}

// SetClock replaces the middleware's time source.
func (m *SessionMiddleware) SetClock(now func() time.Time) {
	m.now = now
}

// Store returns the session store.
func (m *SessionMiddleware) Store() SessionStore {
	return m.store
}

// Authenticate attaches the Subject of a valid session cookie to the
// request context. Requests without one continue anonymously.
func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := m.sessionID(r)
		if sessionID == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.store.Get(r.Context(), sessionID)
		if err != nil {
			if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionExpired) {
				logging.Ctx(r.Context()).Error().Err(err).Msg("Session lookup error")
			}
			next.ServeHTTP(w, r)
			return
		}

		if m.config.SlidingSession {
			newExpiry := m.now().Add(m.config.SessionTTL)
			if err := m.store.Touch(r.Context(), sessionID, newExpiry); err != nil {
				logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to touch session")
			}
		}

		ctx := WithSubject(r.Context(), session.Subject())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth responds 401 unless the request carries a valid session.
func (m *SessionMiddleware) RequireAuth(next http.Handler) http.Handler {
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SubjectFromContext(r.Context()) == nil {
			WriteUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// CreateSession starts a session for username and sets the cookie. Any
// session the request already carried is deleted first, so a login always
// issues a fresh token.
func (m *SessionMiddleware) CreateSession(ctx context.Context, w http.ResponseWriter, r *http.Request, username string, roles []string) (*Session, error) {
	if old := m.sessionID(r); old != "" {
		if err := m.store.Delete(ctx, old); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to delete previous session")
		}
	}

	session := NewSession(username, roles, m.config.SessionTTL, m.now())
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}
	m.setCookie(w, session.ID, int(m.config.SessionTTL.Seconds()))
	m.refreshGauge(ctx)
	return session, nil
}

// DestroySession deletes the request's session, if any, and clears the
// cookie.
func (m *SessionMiddleware) DestroySession(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if id := m.sessionID(r); id != "" {
		if err := m.store.Delete(ctx, id); err != nil {
			return err
		}
	}
	m.setCookie(w, "", -1)
	m.refreshGauge(ctx)
	return nil
}

// Cleanup removes expired sessions and refreshes the active session gauge.
func (m *SessionMiddleware) Cleanup(ctx context.Context) (int, error) {
	n, err := m.store.CleanupExpired(ctx)
	if err != nil {
		return 0, err
	}
	m.refreshGauge(ctx)
	return n, nil
}

func (m *SessionMiddleware) refreshGauge(ctx context.Context) {
	n, err := m.store.Count(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to count sessions")
		return
	}
	metrics.ActiveSessions.Set(float64(n))
}

func (m *SessionMiddleware) sessionID(r *http.Request) string {
	cookie, err := r.Cookie(m.config.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (m *SessionMiddleware) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    value,
		Path:     m.config.CookiePath,
		MaxAge:   maxAge,
		Secure:   m.config.CookieSecure,
		HttpOnly: true,
		SameSite: m.config.CookieSameSite,
	})
}

// WriteUnauthorized writes a 401 UNAUTHORIZED error envelope.
func WriteUnauthorized(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
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
