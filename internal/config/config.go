// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/admitguard/internal/rules"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults, including rules.Default()
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	engine := intake.NewEngine(cfg.Rules)
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`

	// Rules is the eligibility rule set handed to the intake engine.
	Rules rules.Rules `koanf:"rules"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
	// Environment: "development", "staging", "production" (default: "development")
	Environment string `koanf:"environment"`
}

// DatabaseConfig holds SQLite settings and the circuit breaker that guards
// candidate storage.
type DatabaseConfig struct {
	Path         string `koanf:"path"`
	MaxOpenConns int    `koanf:"max_open_conns"`

	// BreakerMaxFailures consecutive failures open the circuit.
	BreakerMaxFailures uint32 `koanf:"breaker_max_failures"`
	// BreakerTimeout is how long the circuit stays open before probing.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// SecurityConfig holds admin authentication, session, and rate limit settings.
type SecurityConfig struct {
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`
	// AdminPasswordHash is a bcrypt hash. When set it takes precedence over
	// AdminPassword.
	AdminPasswordHash string `koanf:"admin_password_hash"`

	// SessionStore specifies the session storage backend: "memory" or "badger"
	SessionStore string `koanf:"session_store"`
	// SessionStorePath is the BadgerDB directory (session_store=badger)
	SessionStorePath string        `koanf:"session_store_path"`
	SessionTimeout   time.Duration `koanf:"session_timeout"`
	CookieSecure     bool          `koanf:"cookie_secure"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	// LoginMaxAttempts failed logins per LoginWindow per client IP.
	LoginMaxAttempts int           `koanf:"login_max_attempts"`
	LoginWindow      time.Duration `koanf:"login_window"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`
	// Format is json or console.
	Format string `koanf:"format"`
	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration with the following precedence (later overrides earlier):
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
