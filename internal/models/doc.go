// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

// Package models defines the data structures shared by the storage, service
// and HTTP layers: stored candidates, audit entries, dashboard statistics
// and the API response envelope.
//
// The package has no dependencies on other internal packages so any layer
// can import it.
package models
