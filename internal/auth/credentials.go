// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong username or password. The
// two cases are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// bcryptCost is used when hashing a plaintext password at startup.
const bcryptCost = 12

// AdminCredentials verifies the single configured admin account. Only a
// bcrypt hash of the password is held in memory.
type AdminCredentials struct {
	username     string
	passwordHash []byte
	roles        []string
}

// NewAdminCredentials hashes password with bcrypt. Callers holding a
// precomputed hash use NewAdminCredentialsFromHash instead.
func NewAdminCredentials(username, password string, roles ...string) (*AdminCredentials, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &AdminCredentials{username: username, passwordHash: hash, roles: roles}, nil
}

// NewAdminCredentialsFromHash uses an existing bcrypt hash.
func NewAdminCredentialsFromHash(username, hash string, roles ...string) (*AdminCredentials, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid bcrypt hash: %w", err)
	}
	return &AdminCredentials{username: username, passwordHash: []byte(hash), roles: roles}, nil
}

// Username returns the configured admin username.
func (c *AdminCredentials) Username() string {
	return c.username
}

// Roles returns the roles granted on login.
func (c *AdminCredentials) Roles() []string {
	return append([]string(nil), c.roles...)
}

// Verify checks username and password. The bcrypt comparison always runs,
// so a wrong username takes as long as a wrong password.
func (c *AdminCredentials) Verify(username, password string) error {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passwordMatch := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)) == nil

	if !usernameMatch || !passwordMatch {
		return ErrInvalidCredentials
	}
	return nil
}
