// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

// Package intake is the two-tier validation and waiver engine behind every
// candidate submission.
//
// # Tiers
//
// Strict fields (name, email, phone, qualification, interview status,
// Aadhaar, offer letter) must be correct. Any strict failure blocks the
// submission and cannot be waived.
//
// Soft fields (date of birth, graduation year, percentage/CGPA, screening
// score) carry policy thresholds. A value that is well-formed but misses a
// threshold is waiver-eligible: the caller may request a waiver with a
// written rationale. A value that is missing or cannot be parsed is never
// waiver-eligible.
//
// # Flow
//
//	engine := intake.NewEngine(rules.Default())
//	decision := engine.Decide(record, registeredEmails, waivers)
//	if !decision.Admit {
//	    // decision.BlockingErrors is keyed by field
//	}
//	if decision.Flagged {
//	    // more waivers than the review threshold allows
//	}
//
// Decide runs every validator (no short circuit across fields), adjudicates
// waivers with Adjudicate, counts accepted waivers and derives the review
// flag. All functions are pure; the only inputs besides the record are the
// rule set captured by NewEngine, the registered-email snapshot, and the
// engine clock used for age.
//
// # Concurrency
//
// The email snapshot is only as fresh as the caller makes it. Callers that
// need validate-then-commit atomicity must take the snapshot and write the
// record inside one storage transaction; see internal/candidate.
package intake
