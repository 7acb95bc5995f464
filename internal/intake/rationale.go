// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package intake

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/admitguard/internal/rules"
)

// RationaleResult is the verdict of the rationale policy.
type RationaleResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// CheckRationale applies the rationale policy to a waiver justification. It
// does not know which field is being justified.
func CheckRationale(r rules.RationaleRules, text string) RationaleResult {
	t := strings.TrimSpace(text)
	if t == "" {
		return RationaleResult{Error: "Rationale is required when requesting an exception."}
	}

	n := utf8.RuneCountInString(t)
	if n < r.MinLength {
		return RationaleResult{Error: fmt.Sprintf("Rationale must be at least %d characters. Currently: %d.", r.MinLength, n)}
	}

	lower := strings.ToLower(t)
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return RationaleResult{Valid: true}
		}
	}
	return RationaleResult{Error: fmt.Sprintf("Rationale must include at least one keyword: \"%s\".",
		strings.Join(r.Keywords, "\", \""))}
}
