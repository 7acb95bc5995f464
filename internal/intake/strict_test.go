// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package intake

import (
	"testing"

	"github.com/tomtom215/admitguard/internal/rules"
)

// assertOutcome checks an outcome against the expected error text ("" means
// valid) and the error/valid invariant.
func assertOutcome(t *testing.T, got Outcome, wantErr string) {
	t.Helper()

	if got.Valid == (got.Error != "") {
		t.Errorf("invariant broken: Valid=%v Error=%q", got.Valid, got.Error)
	}
	if wantErr == "" {
		if !got.Valid {
			t.Errorf("got invalid (%q), want valid", got.Error)
		}
		return
	}
	if got.Valid {
		t.Errorf("got valid, want error %q", wantErr)
		return
	}
	if got.Error != wantErr {
		t.Errorf("Error = %q, want %q", got.Error, wantErr)
	}
}

func assertStrict(t *testing.T, got Outcome, wantErr string) {
	t.Helper()
	assertOutcome(t, got, wantErr)
	if got.Tier != TierStrict {
		t.Errorf("Tier = %q, want strict", got.Tier)
	}
	if got.WaiverEligible {
		t.Error("strict outcome must never be waiver-eligible")
	}
}

// ===================================================================================================
// Name
// ===================================================================================================

func TestValidateFullName(t *testing.T) {
	t.Parallel()

	r := rules.Default().Name
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", "Full Name is required."},
		{"whitespace only", "   ", "Full Name is required."},
		{"too short", "J", "Full Name must be at least 2 characters."},
		{"minimum length", "Jo", ""},
		{"trimmed before length check", "  J  ", "Full Name must be at least 2 characters."},
		{"digits", "R2D2 Unit", "Full Name must not contain numbers."},
		{"normal", "Asha Rao", ""},
		{"unicode letters", "Zoë Ñúñez", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertStrict(t, ValidateFullName(r, tt.value), tt.want)
		})
	}
}

func TestValidateFullName_NotRequired(t *testing.T) {
	t.Parallel()

	r := rules.Default().Name
	r.Required = false
	assertStrict(t, ValidateFullName(r, ""), "")
}

// ===================================================================================================
// Email
// ===================================================================================================

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	r := rules.Default().Email
	registered := NewEmailSet("a@b.com", "Taken@Example.org")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", "Email is required."},
		{"no at sign", "not-an-email", "Please enter a valid email address."},
		{"one letter tld", "a@b.c", "Please enter a valid email address."},
		{"space inside", "as ha@example.com", "Please enter a valid email address."},
		{"already registered", "a@b.com", "This email is already registered."},
		{"registered differs in case", "TAKEN@example.ORG", "This email is already registered."},
		{"registered with padding", "  a@b.com ", "This email is already registered."},
		{"fresh", "asha.rao+intake@example.co.in", ""},
		{"fresh uppercase", " NEW@Example.COM ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertStrict(t, ValidateEmail(r, tt.value, registered), tt.want)
		})
	}
}

func TestValidateEmail_UniquenessDisabled(t *testing.T) {
	t.Parallel()

	r := rules.Default().Email
	r.Unique = false
	assertStrict(t, ValidateEmail(r, "a@b.com", NewEmailSet("a@b.com")), "")
}

func TestValidateEmail_NilSet(t *testing.T) {
	t.Parallel()

	assertStrict(t, ValidateEmail(rules.Default().Email, "a@b.com", nil), "")
}

// ===================================================================================================
// Phone
// ===================================================================================================

func TestValidatePhone(t *testing.T) {
	t.Parallel()

	r := rules.Default().Phone
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", "Phone number is required."},
		{"letters", "98765abcde", "Phone number must contain only digits."},
		{"only dashes", "---", "Phone number must contain only digits."},
		{"plus prefix", "+919876543210", "Phone number must contain only digits."},
		{"too short", "98765 4321", "Phone number must be exactly 10 digits."},
		{"too long", "98765432101", "Phone number must be exactly 10 digits."},
		{"bad leading digit", "5123456789", "Phone number must start with 6, 7, 8, 9."},
		{"valid", "9123456789", ""},
		{"dashes and spaces stripped", "98765-432 10", ""},
		{"leading six", "6000000000", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertStrict(t, ValidatePhone(r, tt.value), tt.want)
		})
	}
}

// ===================================================================================================
// Qualification / Interview / Aadhaar / Offer letter
// ===================================================================================================

func TestValidateQualification(t *testing.T) {
	t.Parallel()

	r := rules.Default().Qualification
	tests := []struct {
		value string
		want  string
	}{
		{"", "Highest Qualification is required."},
		{"b.tech", "Qualification must be one of: B.Tech, B.E., B.Sc, BCA, M.Tech, M.Sc, MCA, MBA."},
		{"PhD", "Qualification must be one of: B.Tech, B.E., B.Sc, BCA, M.Tech, M.Sc, MCA, MBA."},
		{"MCA", ""},
		{" B.E. ", ""},
	}
	for _, tt := range tests {
		assertStrict(t, ValidateQualification(r, tt.value), tt.want)
	}
}

func TestValidateInterviewStatus(t *testing.T) {
	t.Parallel()

	r := rules.Default().Interview
	tests := []struct {
		value string
		want  string
	}{
		{"", "Interview Status is required."},
		{"Pending", "Interview Status must be one of: Cleared, Waitlisted, Rejected."},
		{"cleared", "Interview Status must be one of: Cleared, Waitlisted, Rejected."},
		{"Rejected", "Candidate with 'Rejected' interview status cannot be submitted."},
		{"Cleared", ""},
		{"Waitlisted", ""},
	}
	for _, tt := range tests {
		assertStrict(t, ValidateInterviewStatus(r, tt.value), tt.want)
	}
}

func TestValidateInterviewStatus_RejectedAllowedWhenNotBlocking(t *testing.T) {
	t.Parallel()

	r := rules.Default().Interview
	r.BlockOnRejected = false
	assertStrict(t, ValidateInterviewStatus(r, "Rejected"), "")
}

func TestValidateAadhaar(t *testing.T) {
	t.Parallel()

	r := rules.Default().Aadhaar
	tests := []struct {
		value string
		want  string
	}{
		{"", "Aadhaar Number is required."},
		{"1234 5678 9012", "Aadhaar Number must contain only digits."},
		{"12345678901A", "Aadhaar Number must contain only digits."},
		{"12345678901", "Aadhaar Number must be exactly 12 digits."},
		{"1234567890123", "Aadhaar Number must be exactly 12 digits."},
		{"123456789012", ""},
	}
	for _, tt := range tests {
		assertStrict(t, ValidateAadhaar(r, tt.value), tt.want)
	}
}

func TestValidateOfferLetter(t *testing.T) {
	t.Parallel()

	r := rules.Default().OfferLetter
	tests := []struct {
		name      string
		offer     string
		interview string
		want      string
	}{
		{"empty", "", "Cleared", "Offer Letter Sent status is required."},
		{"unknown value", "Maybe", "Cleared", "Offer Letter Sent must be one of: Yes, No."},
		{"lowercase yes", "yes", "Cleared", "Offer Letter Sent must be one of: Yes, No."},
		{"yes after rejection", "Yes", "Rejected", "Offer Letter can only be 'Yes' if Interview Status is 'Cleared' or 'Waitlisted'."},
		{"yes without interview", "Yes", "", "Offer Letter can only be 'Yes' if Interview Status is 'Cleared' or 'Waitlisted'."},
		{"yes after clearing", "Yes", "Cleared", ""},
		{"yes while waitlisted", "Yes", " Waitlisted ", ""},
		{"no after rejection", "No", "Rejected", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertStrict(t, ValidateOfferLetter(r, tt.offer, tt.interview), tt.want)
		})
	}
}

func TestQuoteOr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"Cleared"}, "'Cleared'"},
		{[]string{"Cleared", "Waitlisted"}, "'Cleared' or 'Waitlisted'"},
		{[]string{"A", "B", "C"}, "'A', 'B' or 'C'"},
	}
	for _, tt := range tests {
		if got := quoteOr(tt.in); got != tt.want {
			t.Errorf("quoteOr(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
