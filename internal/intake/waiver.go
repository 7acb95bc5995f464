// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package intake

import (
	"strings"

	"github.com/tomtom215/admitguard/internal/rules"
)

// Adjudication records what happened to a soft-field failure when a waiver
// was (or was not) considered.
type Adjudication struct {
	// Applied is true when the failure was excused.
	Applied bool `json:"applied"`
	// RationaleValid is nil when no rationale was evaluated.
	RationaleValid *bool  `json:"rationale_valid"`
	RationaleError string `json:"rationale_error,omitempty"`
	// Rationale is the trimmed justification that was evaluated.
	Rationale string `json:"rationale,omitempty"`
	// OriginalError keeps the failure message a waiver masked, for audit.
	OriginalError string `json:"original_error,omitempty"`
}

// Adjudicate decides whether req excuses outcome. It returns a new outcome
// and never modifies its arguments, so repeated calls with the same inputs
// give the same result.
//
// The rationale is only consulted when the outcome is an invalid,
// waiver-eligible failure and a waiver was requested. When the rationale
// passes, the returned outcome is valid with its error cleared and the
// adjudication carries the original message.
func Adjudicate(policy rules.RationaleRules, outcome Outcome, req WaiverRequest) (Outcome, Adjudication) {
	if outcome.Valid || !outcome.WaiverEligible || !req.Requested {
		return outcome, Adjudication{}
	}

	verdict := CheckRationale(policy, req.Rationale)
	valid := verdict.Valid
	adj := Adjudication{
		RationaleValid: &valid,
		RationaleError: verdict.Error,
		Rationale:      strings.TrimSpace(req.Rationale),
	}
	if !verdict.Valid {
		return outcome, adj
	}

	adj.Applied = true
	adj.OriginalError = outcome.Error

	waived := outcome
	waived.Valid = true
	waived.Error = ""
	return waived, adj
}
