// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

// Package query builds parameterized SQL WHERE clauses for the database
// package. User input only ever reaches SQL as a bound argument; column
// names passed to the builder must be constants.
package query
