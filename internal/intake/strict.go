// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package intake

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tomtom215/admitguard/internal/rules"
)

// Strict validators. Each checks one field in order and stops at the first
// failure. A blank value for a field that is not required passes.

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidateFullName(r rules.NameRules, value string) Outcome {
	name := strings.TrimSpace(value)
	if name == "" {
		if r.Required {
			return strictFail(FailureMissing, "Full Name is required.")
		}
		return pass(TierStrict)
	}
	if r.MinLength > 0 && utf8.RuneCountInString(name) < r.MinLength {
		return strictFail(FailureFormat, fmt.Sprintf("Full Name must be at least %d characters.", r.MinLength))
	}
	if r.NoNumbers && strings.IndexFunc(name, unicode.IsDigit) >= 0 {
		return strictFail(FailureFormat, "Full Name must not contain numbers.")
	}
	return pass(TierStrict)
}

// ValidateEmail checks shape and, when uniqueness is on, that the address is
// not in registered. The comparison ignores case.
func ValidateEmail(r rules.EmailRules, value string, registered EmailSet) Outcome {
	email := strings.ToLower(strings.TrimSpace(value))
	if email == "" {
		if r.Required {
			return strictFail(FailureMissing, "Email is required.")
		}
		return pass(TierStrict)
	}
	if !emailPattern.MatchString(email) {
		return strictFail(FailureFormat, "Please enter a valid email address.")
	}
	if r.Unique && registered.Contains(email) {
		return strictFail(FailurePolicy, "This email is already registered.")
	}
	return pass(TierStrict)
}

// ValidatePhone strips spaces and dashes before checking digits,
// length, and the leading digit.
func ValidatePhone(r rules.PhoneRules, value string) Outcome {
	phone := strings.TrimSpace(value)
	if phone == "" {
		if r.Required {
			return strictFail(FailureMissing, "Phone number is required.")
		}
		return pass(TierStrict)
	}

	cleaned := strings.Map(func(c rune) rune {
		if c == '-' || unicode.IsSpace(c) {
			return -1
		}
		return c
	}, phone)

	if !isASCIIDigits(cleaned) {
		return strictFail(FailureFormat, "Phone number must contain only digits.")
	}
	if r.Length > 0 && len(cleaned) != r.Length {
		return strictFail(FailureFormat, fmt.Sprintf("Phone number must be exactly %d digits.", r.Length))
	}
	if len(r.ValidStartDigits) > 0 {
		first := int(cleaned[0] - '0')
		allowed := false
		for _, d := range r.ValidStartDigits {
			if d == first {
				allowed = true
				break
			}
		}
		if !allowed {
			return strictFail(FailureFormat, fmt.Sprintf("Phone number must start with %s.", joinInts(r.ValidStartDigits)))
		}
	}
	return pass(TierStrict)
}

// ValidateQualification requires an exact, case-sensitive match.
func ValidateQualification(r rules.QualificationRules, value string) Outcome {
	q := strings.TrimSpace(value)
	if q == "" {
		if r.Required {
			return strictFail(FailureMissing, "Highest Qualification is required.")
		}
		return pass(TierStrict)
	}
	if len(r.Allowed) > 0 && !containsString(r.Allowed, q) {
		return strictFail(FailureFormat, fmt.Sprintf("Qualification must be one of: %s.", strings.Join(r.Allowed, ", ")))
	}
	return pass(TierStrict)
}

// ValidateInterviewStatus rejects the configured rejected sentinel even
// though it is a listed value.
func ValidateInterviewStatus(r rules.InterviewRules, value string) Outcome {
	status := strings.TrimSpace(value)
	if status == "" {
		if r.Required {
			return strictFail(FailureMissing, "Interview Status is required.")
		}
		return pass(TierStrict)
	}
	if len(r.Valid) > 0 && !containsString(r.Valid, status) {
		return strictFail(FailureFormat, fmt.Sprintf("Interview Status must be one of: %s.", strings.Join(r.Valid, ", ")))
	}
	if r.BlockOnRejected && status == r.RejectedValue {
		return strictFail(FailurePolicy, fmt.Sprintf("Candidate with '%s' interview status cannot be submitted.", r.RejectedValue))
	}
	return pass(TierStrict)
}

func ValidateAadhaar(r rules.AadhaarRules, value string) Outcome {
	id := strings.TrimSpace(value)
	if id == "" {
		if r.Required {
			return strictFail(FailureMissing, "Aadhaar Number is required.")
		}
		return pass(TierStrict)
	}
	if r.DigitsOnly && !isASCIIDigits(id) {
		return strictFail(FailureFormat, "Aadhaar Number must contain only digits.")
	}
	if r.Length > 0 && utf8.RuneCountInString(id) != r.Length {
		return strictFail(FailureFormat, fmt.Sprintf("Aadhaar Number must be exactly %d digits.", r.Length))
	}
	return pass(TierStrict)
}

// ValidateOfferLetter needs the interview status: an offer may only be
// marked sent for a positive interview outcome.
func ValidateOfferLetter(r rules.OfferLetterRules, value, interviewStatus string) Outcome {
	offer := strings.TrimSpace(value)
	if offer == "" {
		if r.Required {
			return strictFail(FailureMissing, "Offer Letter Sent status is required.")
		}
		return pass(TierStrict)
	}
	if len(r.Valid) > 0 && !containsString(r.Valid, offer) {
		return strictFail(FailureFormat, fmt.Sprintf("Offer Letter Sent must be one of: %s.", strings.Join(r.Valid, ", ")))
	}
	if r.RequiresPositiveInterview && offer == "Yes" &&
		!containsString(r.PositiveInterview, strings.TrimSpace(interviewStatus)) {
		return strictFail(FailurePolicy, fmt.Sprintf("Offer Letter can only be 'Yes' if Interview Status is %s.",
			quoteOr(r.PositiveInterview)))
	}
	return pass(TierStrict)
}

func isASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// quoteOr renders ["Cleared", "Waitlisted"] as 'Cleared' or 'Waitlisted'.
func quoteOr(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	if len(quoted) <= 1 {
		return strings.Join(quoted, "")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}
