// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package authz

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/admitguard/internal/auth"
)

func TestMiddleware_AuthorizeRequest(t *testing.T) {
	e, err := NewEnforcer(nil)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	var denied []string
	m := NewMiddleware(e, func(r *http.Request, s *auth.Subject, object, action string) {
		denied = append(denied, s.Username+" "+action+" "+object)
	})
	h := m.AuthorizeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		method     string
		path       string
		subject    *auth.Subject
		wantStatus int
		wantCode   string
	}{
		{"admin read", http.MethodGet, "/api/admin/candidates", &auth.Subject{Username: "admin", Roles: []string{auth.RoleAdmin}}, http.StatusNoContent, ""},
		{"admin delete", http.MethodDelete, "/api/admin/candidates/1", &auth.Subject{Username: "admin", Roles: []string{auth.RoleAdmin}}, http.StatusNoContent, ""},
		{"no subject", http.MethodGet, "/api/admin/candidates", nil, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"no role", http.MethodPut, "/api/admin/candidates/1", &auth.Subject{Username: "guest"}, http.StatusForbidden, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.subject != nil {
				req = req.WithContext(auth.WithSubject(req.Context(), tt.subject))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantCode != "" && !strings.Contains(rec.Body.String(), `"`+tt.wantCode+`"`) {
				t.Errorf("body = %s, want code %s", rec.Body.String(), tt.wantCode)
			}
		})
	}

	if len(denied) != 1 || denied[0] != "guest write /api/admin/candidates/1" {
		t.Errorf("deny callbacks = %v", denied)
	}
}
