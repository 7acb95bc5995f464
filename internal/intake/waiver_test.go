// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package intake

import (
	"reflect"
	"testing"

	"github.com/tomtom215/admitguard/internal/rules"
)

func eligibleFailure() Outcome {
	return ValidateGraduationYear(rules.Default().GraduationYear, "2012")
}

func TestAdjudicate_Passthrough(t *testing.T) {
	t.Parallel()

	policy := rules.Default().Rationale
	good := WaiverRequest{Requested: true, Rationale: goodRationale}

	tests := []struct {
		name    string
		outcome Outcome
		req     WaiverRequest
	}{
		{"valid outcome", ValidateGraduationYear(rules.Default().GraduationYear, "2020"), good},
		{"format failure", ValidateScreeningScore(rules.Default().Screening, "abc"), good},
		{"missing value", ValidateScreeningScore(rules.Default().Screening, ""), good},
		{"bound failure", ValidateScreeningScore(rules.Default().Screening, "140"), good},
		{"not requested", eligibleFailure(), WaiverRequest{Rationale: goodRationale}},
		{"strict failure", ValidateFullName(rules.Default().Name, "J"), good},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, adj := Adjudicate(policy, tt.outcome, tt.req)
			if got != tt.outcome {
				t.Errorf("outcome changed: got %+v, want %+v", got, tt.outcome)
			}
			if !reflect.DeepEqual(adj, Adjudication{}) {
				t.Errorf("adjudication = %+v, want zero", adj)
			}
		})
	}
}

func TestAdjudicate_RejectedRationale(t *testing.T) {
	t.Parallel()

	in := eligibleFailure()
	got, adj := Adjudicate(rules.Default().Rationale, in, WaiverRequest{Requested: true, Rationale: "please"})

	if got.Valid {
		t.Fatal("weak rationale must not excuse the failure")
	}
	if got.Error != in.Error {
		t.Errorf("Error = %q, want original %q", got.Error, in.Error)
	}
	if adj.Applied {
		t.Error("Applied = true, want false")
	}
	if adj.RationaleValid == nil || *adj.RationaleValid {
		t.Errorf("RationaleValid = %v, want false", adj.RationaleValid)
	}
	if adj.RationaleError != "Rationale must be at least 30 characters. Currently: 6." {
		t.Errorf("RationaleError = %q", adj.RationaleError)
	}
	if adj.OriginalError != "" {
		t.Errorf("OriginalError = %q, want empty when not applied", adj.OriginalError)
	}
}

func TestAdjudicate_Applied(t *testing.T) {
	t.Parallel()

	in := eligibleFailure()
	got, adj := Adjudicate(rules.Default().Rationale, in, WaiverRequest{Requested: true, Rationale: "  " + goodRationale + " "})

	if !got.Valid || got.Error != "" {
		t.Errorf("outcome = %+v, want valid with cleared error", got)
	}
	if got.Tier != TierSoft || !got.WaiverEligible {
		t.Errorf("outcome lost tier metadata: %+v", got)
	}
	if !adj.Applied {
		t.Error("Applied = false, want true")
	}
	if adj.RationaleValid == nil || !*adj.RationaleValid {
		t.Errorf("RationaleValid = %v, want true", adj.RationaleValid)
	}
	if adj.OriginalError != in.Error {
		t.Errorf("OriginalError = %q, want %q", adj.OriginalError, in.Error)
	}
	if adj.Rationale != goodRationale {
		t.Errorf("Rationale = %q, want trimmed text", adj.Rationale)
	}

	// The input is untouched.
	if in.Valid || in.Error == "" {
		t.Errorf("input outcome was modified: %+v", in)
	}
}

func TestAdjudicate_Idempotent(t *testing.T) {
	t.Parallel()

	policy := rules.Default().Rationale
	in := eligibleFailure()
	req := WaiverRequest{Requested: true, Rationale: goodRationale}

	o1, a1 := Adjudicate(policy, in, req)
	o2, a2 := Adjudicate(policy, in, req)
	if o1 != o2 || !reflect.DeepEqual(a1, a2) {
		t.Errorf("repeat adjudication differs:\n%+v %+v\n%+v %+v", o1, a1, o2, a2)
	}

	// Adjudicating an already-waived outcome is a no-op.
	o3, a3 := Adjudicate(policy, o1, req)
	if o3 != o1 {
		t.Errorf("re-adjudicated outcome = %+v, want %+v", o3, o1)
	}
	if a3.Applied {
		t.Error("a valid outcome cannot have a waiver applied")
	}
}
