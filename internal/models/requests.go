// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package models

// LoginRequest is the body of POST /api/admin/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// PageParams are the limit/offset query parameters shared by list
// endpoints. A zero Limit selects the endpoint default.
type PageParams struct {
	Limit  int `json:"limit" validate:"min=0,max=500"`
	Offset int `json:"offset" validate:"min=0,max=1000000"`
}

// AuditLogParams are the query parameters of GET /api/audit-log.
type AuditLogParams struct {
	PageParams
	Filter string `json:"filter" validate:"omitempty,oneof=all flagged exceptions"`
	Search string `json:"search" validate:"max=200"`
}

// SecurityEventParams are the query parameters of
// GET /api/admin/security-events.
type SecurityEventParams struct {
	PageParams
	Type    string `json:"type" validate:"omitempty,oneof=auth.success auth.failure auth.throttled auth.logout authz.denied admin.action"`
	Outcome string `json:"outcome" validate:"omitempty,oneof=success failure"`
}

// CandidatePatch is the shape check for PUT /api/admin/candidates/{id}:
// every key must name an intake field, and at least one must be present.
type CandidatePatch struct {
	Fields []string `json:"fields" validate:"required,min=1,dive,intake_field"`
}
