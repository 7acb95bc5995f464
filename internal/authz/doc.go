// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

// Package authz guards the admin API with Casbin RBAC.
//
// The model (model.conf) and policy (policy.csv) are embedded. Objects are
// URL paths matched with keyMatch2, and actions come from the HTTP method:
//
//	GET, HEAD, OPTIONS  -> read
//	POST, PUT, PATCH    -> write
//	DELETE              -> delete
//
// The admin role may read, write and delete under /api/admin/*. Denials
// are counted in admitguard_authz_decisions_total and passed to the
// DenyFunc, which the server uses to record a security event.
package authz
