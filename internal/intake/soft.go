// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package intake

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/admitguard/internal/rules"
)

// Soft validators parse first, then range-check. A parse failure is tagged
// FailureFormat (or FailureMissing / FailureBound) and can never be waived;
// only a FailureRange result becomes waiver-eligible, and only when the
// field's rules allow waivers.

const (
	ScoreTypePercentage = "percentage"
	ScoreTypeCGPA       = "cgpa"

	isoDate = "2006-01-02"
)

// ValidateDateOfBirth checks the candidate's age on the date of now.
func ValidateDateOfBirth(r rules.AgeRules, value string, now time.Time) Outcome {
	return checkDateOfBirth(r, value, now).outcome(r.WaiverAllowed)
}

func checkDateOfBirth(r rules.AgeRules, value string, now time.Time) softFailure {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return missing("Date of Birth is required.")
	}
	dob, err := time.Parse(isoDate, raw)
	if err != nil {
		return badFormat("Date of Birth must be in YYYY-MM-DD format.")
	}
	if !r.CheckEnabled {
		return softOK
	}

	age := AgeOn(dob, now)
	if age < r.Min {
		return outOfRange(fmt.Sprintf("Candidate must be at least %d years old. Current age: %d.", r.Min, age))
	}
	if age > r.Max {
		return outOfRange(fmt.Sprintf("Candidate must be at most %d years old. Current age: %d.", r.Max, age))
	}
	return softOK
}

// AgeOn returns completed years between dob and the calendar date of now.
func AgeOn(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

func ValidateGraduationYear(r rules.GraduationYearRules, value string) Outcome {
	return checkGraduationYear(r, value).outcome(r.WaiverAllowed)
}

func checkGraduationYear(r rules.GraduationYearRules, value string) softFailure {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return missing("Graduation Year is required.")
	}
	year, ok := parseYear(raw)
	if !ok {
		return badFormat("Graduation Year must be a valid number.")
	}
	if !r.CheckEnabled {
		return softOK
	}
	if year < r.Min || year > r.Max {
		return outOfRange(fmt.Sprintf("Graduation Year must be between %d and %d. Got: %d.", r.Min, r.Max, year))
	}
	return softOK
}

// ValidateScore reads value as a CGPA when scoreType is "cgpa" (any case)
// and as a percentage otherwise.
func ValidateScore(r rules.ScoreRules, value, scoreType string) Outcome {
	return checkScore(r, value, scoreType).outcome(r.WaiverAllowed)
}

func checkScore(r rules.ScoreRules, value, scoreType string) softFailure {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return missing("Percentage/CGPA is required.")
	}
	score, ok := parseNumber(raw)
	if !ok {
		return badFormat("Percentage/CGPA must be a valid number.")
	}
	if !r.CheckEnabled {
		return softOK
	}

	if strings.EqualFold(strings.TrimSpace(scoreType), ScoreTypeCGPA) {
		if score < 0 || score > r.CGPAScale {
			return outOfBounds(fmt.Sprintf("CGPA must be between 0 and %s.", formatNumber(r.CGPAScale)))
		}
		if score < r.CGPAMin {
			return outOfRange(fmt.Sprintf("CGPA must be at least %s. Got: %s.",
				formatDecimal(r.CGPAMin), formatDecimal(score)))
		}
		return softOK
	}

	if score < 0 || score > 100 {
		return outOfBounds("Percentage must be between 0 and 100.")
	}
	if score < r.PercentageMin {
		return outOfRange(fmt.Sprintf("Percentage must be at least %s%%. Got: %s%%.",
			formatNumber(r.PercentageMin), formatDecimal(score)))
	}
	return softOK
}

func ValidateScreeningScore(r rules.ScreeningRules, value string) Outcome {
	return checkScreeningScore(r, value).outcome(r.WaiverAllowed)
}

func checkScreeningScore(r rules.ScreeningRules, value string) softFailure {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return missing("Screening Test Score is required.")
	}
	score, ok := parseNumber(raw)
	if !ok {
		return badFormat("Screening Test Score must be a valid number.")
	}
	if !r.CheckEnabled {
		return softOK
	}
	if score < 0 || score > r.Max {
		return outOfBounds(fmt.Sprintf("Screening Test Score must be between 0 and %s.", formatNumber(r.Max)))
	}
	if score < r.Min {
		return outOfRange(fmt.Sprintf("Screening Test Score must be at least %s. Got: %s.",
			formatNumber(r.Min), formatDecimal(score)))
	}
	return softOK
}

// decimalPattern is plain decimal notation with an optional exponent.
// strconv.ParseFloat alone would also take hex floats such as "0x1p5".
var decimalPattern = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// parseNumber accepts finite decimal numbers only. NaN and infinities would
// slip through every comparison, so they count as malformed.
func parseNumber(s string) (float64, bool) {
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseYear accepts an integer, or a decimal with no fractional part since
// JSON clients may send 2020.0.
func parseYear(s string) (int, bool) {
	if year, err := strconv.Atoi(s); err == nil {
		return year, true
	}
	f, ok := parseNumber(s)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// formatNumber prints a configured bound without a trailing ".0".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatDecimal always shows a fractional part: 55 -> "55.0", 5.25 -> "5.25".
func formatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
