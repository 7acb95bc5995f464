// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

// Package logging provides centralized zerolog-based structured logging for
// AdmitGuard.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger, JSON in production and console in development
//   - Request and correlation IDs carried on the context (Ctx)
//   - An slog adapter so the suture supervisor logs through zerolog
//   - Redaction helpers for candidate personal data (redact.go)
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("candidate_id", id).Msg("Candidate admitted")
//	logging.Ctx(ctx).Warn().Str("email", logging.SanitizeEmail(email)).Msg("Submission rejected")
//
// # Configuration
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Personal Data
//
// Email addresses, phone numbers and Aadhaar numbers are never logged in
// clear. Use SanitizeEmail, MaskDigits or SanitizeValue.
package logging
