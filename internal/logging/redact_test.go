// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package logging

import "testing"

func TestSanitizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"asha.rao@example.com", "as***@example.com"},
		{"ab@example.com", "***@example.com"},
		{"no-at-sign", "***"},
		{"@example.com", "***"},
		{"éloïse@example.fr", "él***@example.fr"},
	}

	for _, tt := range tests {
		if got := SanitizeEmail(tt.input); got != tt.expected {
			t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestMaskDigits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"123", "***"},
		{"1234", "****"},
		{"9876543210", "******3210"},
		{"123456789012", "********9012"},
	}

	for _, tt := range tests {
		if got := MaskDigits(tt.input); got != tt.expected {
			t.Errorf("MaskDigits(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSanitizeSessionID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"short123", "***"},
		{"exactlytwelv", "***"},
		{"3f9a1c2e-77b0-4c1d-9e55-0a2b6f1d8c44", "3f9a...8c44"},
	}

	for _, tt := range tests {
		if got := SanitizeSessionID(tt.input); got != tt.expected {
			t.Errorf("SanitizeSessionID(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSanitizeUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"ab", "***"},
		{"registrar", "re***"},
	}

	for _, tt := range tests {
		if got := SanitizeUsername(tt.input); got != tt.expected {
			t.Errorf("SanitizeUsername(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSanitizeValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key, value, expected string
	}{
		{"email", "asha@example.com", "as***@example.com"},
		{"Aadhaar", "123456789012", "********9012"},
		{"phone", "9876543210", "******3210"},
		{"password", "hunter2", "***"},
		{"password", "", ""},
		{"full_name", "Asha Rao", "Asha Rao"},
	}

	for _, tt := range tests {
		if got := SanitizeValue(tt.key, tt.value); got != tt.expected {
			t.Errorf("SanitizeValue(%q, %q) = %q, want %q", tt.key, tt.value, got, tt.expected)
		}
	}
}
