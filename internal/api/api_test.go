// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/admitguard/internal/audit"
	"github.com/tomtom215/admitguard/internal/auth"
	"github.com/tomtom215/admitguard/internal/authz"
	"github.com/tomtom215/admitguard/internal/candidate"
	"github.com/tomtom215/admitguard/internal/config"
	"github.com/tomtom215/admitguard/internal/database"
	"github.com/tomtom215/admitguard/internal/intake"
	"github.com/tomtom215/admitguard/internal/models"
	"github.com/tomtom215/admitguard/internal/rules"
)

const (
	testAdmin     = "registrar"
	testPassword  = "correct-horse-battery"
	testRationale = "Special case approved by the program director"
)

var evalDate = time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

type testServer struct {
	handler http.Handler
	service *candidate.Service
	events  *audit.Logger
}

func newTestServer(t *testing.T, mutate func(*config.SecurityConfig)) *testServer {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{
		Path:         filepath.Join(t.TempDir(), "admitguard.db"),
		MaxOpenConns: 2,
	})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	sec := config.SecurityConfig{
		RateLimitReqs:    1000,
		RateLimitWindow:  time.Minute,
		LoginMaxAttempts: 3,
		LoginWindow:      time.Minute,
	}
	if mutate != nil {
		mutate(&sec)
	}

	engine := intake.NewEngine(rules.Default(), intake.WithClock(func() time.Time { return evalDate }))
	svc := candidate.NewService(engine, candidate.NewSQLStore(db))

	creds, err := auth.NewAdminCredentials(testAdmin, testPassword, auth.RoleAdmin)
	if err != nil {
		t.Fatalf("NewAdminCredentials() error = %v", err)
	}

	events := audit.NewLogger(audit.NewMemoryStore(100), &audit.Config{
		Enabled:    true,
		LogLevel:   audit.SeverityInfo,
		BufferSize: 100,
	})
	t.Cleanup(func() { _ = events.Close() })

	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	authzMW := authz.NewMiddleware(enforcer, func(r *http.Request, s *auth.Subject, object, action string) {
		events.LogAuthzDenied(r.Context(), audit.AdminActor(s.Username, s.Roles, ""), audit.SourceFromRequest(r), object, action)
	})

	handler := NewHandler(HandlerDeps{
		Service:     svc,
		Sessions:    auth.NewSessionMiddleware(auth.NewMemorySessionStore(), auth.DefaultSessionMiddlewareConfig()),
		Credentials: creds,
		Limiter:     auth.NewLoginLimiter(sec.LoginMaxAttempts, sec.LoginWindow),
		Events:      events,
		Version:     "test",
	})
	router := NewRouter(handler, authzMW, NewChiMiddleware(NewChiMiddlewareConfig(sec)))

	return &testServer{handler: router.SetupChi(), service: svc, events: events}
}

// envelope is the decoded models.APIResponse with Data left raw.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	var env envelope
	if ct := rec.Header().Get("Content-Type"); ct == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v (data %s)", err, env.Data)
	}
}

func validForm(email string) map[string]interface{} {
	return map[string]interface{}{
		"full_name":             "Asha Rao",
		"email":                 email,
		"phone":                 "9876543210",
		"highest_qualification": "B.Tech",
		"interview_status":      "Cleared",
		"aadhaar":               "123456789012",
		"offer_letter_sent":     "Yes",
		"date_of_birth":         "1998-04-10",
		"graduation_year":       2020,
		"percentage_cgpa":       78.5,
		"score_type":            "percentage",
		"screening_test_score":  72,
	}
}

func withWaiver(form map[string]interface{}, field string, value interface{}) map[string]interface{} {
	form[field] = value
	exc, _ := form["exceptions"].(map[string]interface{})
	if exc == nil {
		exc = map[string]interface{}{}
		form["exceptions"] = exc
	}
	exc[field] = map[string]interface{}{"enabled": true, "rationale": testRationale}
	return form
}

func (ts *testServer) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec, env := ts.do(t, http.MethodPost, "/api/admin/login", models.LoginRequest{Username: testAdmin, Password: testPassword})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	if env.Status != "success" {
		t.Fatalf("login envelope status = %q", env.Status)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.DefaultCookieName {
			return c
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

// eventually polls cond until it holds or a second has passed.
func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within 1s")
}

func (ts *testServer) eventCount(t *testing.T, typ audit.EventType) int64 {
	t.Helper()
	n, err := ts.events.Count(context.Background(), audit.QueryFilter{Types: []audit.EventType{typ}})
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	return n
}
