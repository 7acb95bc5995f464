// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package auth

import (
	"context"
	"slices"
)

// RoleAdmin is the role granted to the configured admin account.
const RoleAdmin = "admin"

type contextKey string

// SubjectContextKey is the context key for the authenticated *Subject.
const SubjectContextKey contextKey = "auth_subject"

// Subject is the authenticated identity of a request.
type Subject struct {
	Username  string   `json:"username"`
	Roles     []string `json:"roles,omitempty"`
	SessionID string   `json:"-"`
}

// HasRole checks if the subject has role.
func (s *Subject) HasRole(role string) bool {
	if s == nil || role == "" {
		return false
	}
	return slices.Contains(s.Roles, role)
}

// WithSubject returns ctx carrying s.
func WithSubject(ctx context.Context, s *Subject) context.Context {
	return context.WithValue(ctx, SubjectContextKey, s)
}

// SubjectFromContext returns the authenticated subject, or nil.
func SubjectFromContext(ctx context.Context) *Subject {
	s, _ := ctx.Value(SubjectContextKey).(*Subject)
	return s
}
