// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package intake

import "fmt"

// Tier is the rule tier that produced an outcome.
type Tier string

const (
	TierStrict Tier = "strict"
	TierSoft   Tier = "soft"
)

// FailureKind classifies why a field failed. Only FailureRange is ever
// excusable by a waiver.
type FailureKind uint8

const (
	FailureNone FailureKind = iota
	// FailureMissing: a required value was absent or blank.
	FailureMissing
	// FailureFormat: the value could not be parsed or had the wrong shape.
	FailureFormat
	// FailureBound: the value parsed but lies outside its physical domain,
	// e.g. a percentage of 140.
	FailureBound
	// FailureRange: the value is well-formed but misses a policy threshold.
	FailureRange
	// FailurePolicy: a strict business rule rejected the value.
	FailurePolicy
)

var failureKindNames = map[FailureKind]string{
	FailureNone:    "",
	FailureMissing: "missing",
	FailureFormat:  "format",
	FailureBound:   "bound",
	FailureRange:   "range",
	FailurePolicy:  "policy",
}

func (k FailureKind) String() string { return failureKindNames[k] }

// MarshalText renders the kind by name in JSON.
func (k FailureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name. Unknown names are an error.
func (k *FailureKind) UnmarshalText(b []byte) error {
	for kind, name := range failureKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown failure kind %q", b)
}

// Outcome is the result of validating one field.
//
// Error is non-empty exactly when Valid is false. WaiverEligible is only
// ever true for soft-tier range failures.
type Outcome struct {
	Valid          bool        `json:"valid"`
	Error          string      `json:"error,omitempty"`
	Tier           Tier        `json:"rule_tier"`
	WaiverEligible bool        `json:"waiver_eligible"`
	Kind           FailureKind `json:"failure_kind,omitempty"`
}

func pass(tier Tier) Outcome {
	return Outcome{Valid: true, Tier: tier}
}

func strictFail(kind FailureKind, msg string) Outcome {
	return Outcome{Tier: TierStrict, Error: msg, Kind: kind}
}

// softFailure is the tagged result of a soft check before it becomes an
// Outcome. Eligibility is derived from the kind, never set by hand.
type softFailure struct {
	kind FailureKind
	msg  string
}

func (f softFailure) outcome(waiverAllowed bool) Outcome {
	if f.kind == FailureNone {
		return pass(TierSoft)
	}
	return Outcome{
		Tier:           TierSoft,
		Error:          f.msg,
		Kind:           f.kind,
		WaiverEligible: waiverAllowed && f.kind == FailureRange,
	}
}

var softOK = softFailure{}

func missing(msg string) softFailure     { return softFailure{kind: FailureMissing, msg: msg} }
func badFormat(msg string) softFailure   { return softFailure{kind: FailureFormat, msg: msg} }
func outOfBounds(msg string) softFailure { return softFailure{kind: FailureBound, msg: msg} }
func outOfRange(msg string) softFailure  { return softFailure{kind: FailureRange, msg: msg} }
