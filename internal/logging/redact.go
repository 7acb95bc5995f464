// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package logging

import (
	"strings"
	"unicode/utf8"
)

// Candidate records carry personal data (email, phone, Aadhaar number).
// These helpers mask it before it reaches a log line.

// SanitizeEmail masks the local part of an email address.
// Example: "asha.rao@example.com" -> "as***@example.com"
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}

	atIndex := strings.Index(email, "@")
	if atIndex <= 0 {
		return "***"
	}

	localPart := email[:atIndex]
	domain := email[atIndex:]

	if utf8.RuneCountInString(localPart) <= 2 {
		return "***" + domain
	}
	r1, n1 := utf8.DecodeRuneInString(localPart)
	r2, _ := utf8.DecodeRuneInString(localPart[n1:])
	return string(r1) + string(r2) + "***" + domain
}

// MaskDigits keeps only the last four characters of an identifier such as
// a phone or Aadhaar number.
// Example: "123456789012" -> "********9012"
func MaskDigits(s string) string {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return ""
	}
	if n <= 4 {
		return strings.Repeat("*", n)
	}
	runes := []rune(s)
	return strings.Repeat("*", n-4) + string(runes[n-4:])
}

// SanitizeSessionID masks a session ID.
// Example: "3f9a1c2e-77b0-4c1d-9e55-0a2b6f1d8c44" -> "3f9a...8c44"
func SanitizeSessionID(sessionID string) string {
	if sessionID == "" {
		return ""
	}
	if len(sessionID) <= 12 {
		return "***"
	}
	return sessionID[:4] + "..." + sessionID[len(sessionID)-4:]
}

// SanitizeUsername keeps the first two characters of a username.
// Example: "registrar" -> "re***"
func SanitizeUsername(username string) string {
	if utf8.RuneCountInString(username) <= 2 {
		if username == "" {
			return ""
		}
		return "***"
	}
	runes := []rune(username)
	return string(runes[:2]) + "***"
}

// SanitizeValue masks value according to the field it belongs to. Unknown
// fields pass through unchanged.
func SanitizeValue(key, value string) string {
	switch strings.ToLower(key) {
	case "email", "candidate_email":
		return SanitizeEmail(value)
	case "phone", "aadhaar":
		return MaskDigits(value)
	case "password", "admin_password", "rationale_secret", "cookie", "authorization":
		if value == "" {
			return ""
		}
		return "***"
	case "session", "session_id":
		return SanitizeSessionID(value)
	}
	return value
}
