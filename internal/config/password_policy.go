// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PasswordPolicy defines requirements for the admin password. It is applied
// to ADMIN_PASSWORD when ENVIRONMENT=production.
type PasswordPolicy struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireDigit     bool
	RequireSpecial   bool
	// ForbidCommonPasswords blocks well-known and product-default passwords
	ForbidCommonPasswords bool
	// ForbidUsernameSimilarity rejects passwords containing the username
	ForbidUsernameSimilarity bool
}

// DefaultPasswordPolicy returns the production admin policy.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:                12,
		RequireUppercase:         true,
		RequireLowercase:         true,
		RequireDigit:             true,
		RequireSpecial:           true,
		ForbidCommonPasswords:    true,
		ForbidUsernameSimilarity: true,
	}
}

// Violations lists every rule the password breaks. An empty result means
// the password is acceptable.
func (p PasswordPolicy) Violations(password, username string) []string {
	var out []string

	if n := utf8.RuneCountInString(password); n < p.MinLength {
		out = append(out, fmt.Sprintf("password must be at least %d characters (got %d)", p.MinLength, n))
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	if p.RequireUppercase && !upper {
		out = append(out, "password must contain at least one uppercase letter")
	}
	if p.RequireLowercase && !lower {
		out = append(out, "password must contain at least one lowercase letter")
	}
	if p.RequireDigit && !digit {
		out = append(out, "password must contain at least one digit")
	}
	if p.RequireSpecial && !special {
		out = append(out, "password must contain at least one special character")
	}

	if p.ForbidCommonPasswords && commonPasswords[strings.ToLower(password)] {
		out = append(out, "password is too common and easily guessable")
	}
	if p.ForbidUsernameSimilarity && username != "" &&
		strings.Contains(strings.ToLower(password), strings.ToLower(username)) {
		out = append(out, "password must not contain the username")
	}
	return out
}

// ValidateWithError returns an error joining every violation, or nil.
func (p PasswordPolicy) ValidateWithError(password, username string) error {
	if v := p.Violations(password, username); len(v) > 0 {
		return errors.New(strings.Join(v, "; "))
	}
	return nil
}

var commonPasswords = map[string]bool{
	"admin123":        true,
	"admin@123":       true,
	"administrator":   true,
	"password":        true,
	"password1":       true,
	"password123":     true,
	"password@123":    true,
	"p@ssw0rd":        true,
	"p@ssw0rd123!":    true,
	"welcome@123":     true,
	"welcome123!":     true,
	"changeme":        true,
	"changeme123!":    true,
	"qwerty123":       true,
	"letmein123":      true,
	"admissions":      true,
	"admissions@123":  true,
	"admitguard":      true,
	"admitguard@123":  true,
	"admitguard2026!": true,
}
