// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/admitguard/internal/rules"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/admitguard/config.yaml",
	"/etc/admitguard/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultAdminPassword is the development fallback. Validate rejects it in
// production.
const DefaultAdminPassword = "admin123"

// defaultConfig returns a Config struct with all default values.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:               "data/admitguard.db",
			MaxOpenConns:       4,
			BreakerMaxFailures: 5,
			BreakerTimeout:     30 * time.Second,
		},
		Security: SecurityConfig{
			AdminUsername:     "admin",
			AdminPassword:     DefaultAdminPassword,
			SessionStore:      "memory",
			SessionStorePath:  "data/sessions",
			SessionTimeout:    8 * time.Hour,
			CookieSecure:      false,
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			LoginMaxAttempts:  5,
			LoginWindow:       15 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Rules: rules.Default(),
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	return loadFrom(findConfigFile())
}

func loadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// HTTP_PORT -> server.port, RULES_AGE_MAX -> rules.age.max
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"rules.phone.valid_start_digits",
	"rules.qualification.allowed",
	"rules.interview.valid",
	"rules.offer_letter.valid",
	"rules.offer_letter.positive_interview",
	"rules.rationale.keywords",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server mappings
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Database mappings
	"database_path":           "database.path",
	"database_max_open_conns": "database.max_open_conns",
	"breaker_max_failures":    "database.breaker_max_failures",
	"breaker_timeout":         "database.breaker_timeout",

	// Security mappings
	"admin_username":      "security.admin_username",
	"admin_password":      "security.admin_password",
	"admin_password_hash": "security.admin_password_hash",
	"session_store":       "security.session_store",
	"session_store_path":  "security.session_store_path",
	"session_timeout":     "security.session_timeout",
	"cookie_secure":       "security.cookie_secure",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"login_max_attempts":  "security.login_max_attempts",
	"login_window":        "security.login_window",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Rule mappings
	"rules_version":                     "rules.version",
	"rules_name_required":               "rules.name.required",
	"rules_name_min_length":             "rules.name.min_length",
	"rules_name_no_numbers":             "rules.name.no_numbers",
	"rules_email_required":              "rules.email.required",
	"rules_email_unique":                "rules.email.unique",
	"rules_phone_required":              "rules.phone.required",
	"rules_phone_length":                "rules.phone.length",
	"rules_phone_valid_start_digits":    "rules.phone.valid_start_digits",
	"rules_qualification_required":      "rules.qualification.required",
	"rules_qualification_allowed":       "rules.qualification.allowed",
	"rules_interview_required":          "rules.interview.required",
	"rules_interview_valid":             "rules.interview.valid",
	"rules_interview_block_on_rejected": "rules.interview.block_on_rejected",
	"rules_interview_rejected_value":    "rules.interview.rejected_value",
	"rules_offer_required":              "rules.offer_letter.required",
	"rules_offer_valid":                 "rules.offer_letter.valid",
	"rules_offer_requires_positive":     "rules.offer_letter.requires_positive_interview",
	"rules_offer_positive_interview":    "rules.offer_letter.positive_interview",
	"rules_aadhaar_required":            "rules.aadhaar.required",
	"rules_aadhaar_length":              "rules.aadhaar.length",
	"rules_aadhaar_digits_only":         "rules.aadhaar.digits_only",
	"rules_age_check_enabled":           "rules.age.check_enabled",
	"rules_age_min":                     "rules.age.min",
	"rules_age_max":                     "rules.age.max",
	"rules_age_waiver_allowed":          "rules.age.waiver_allowed",
	"rules_grad_year_check_enabled":     "rules.graduation_year.check_enabled",
	"rules_grad_year_min":               "rules.graduation_year.min",
	"rules_grad_year_max":               "rules.graduation_year.max",
	"rules_grad_year_waiver_allowed":    "rules.graduation_year.waiver_allowed",
	"rules_score_check_enabled":         "rules.score.check_enabled",
	"rules_percentage_min":              "rules.score.percentage_min",
	"rules_cgpa_min":                    "rules.score.cgpa_min",
	"rules_cgpa_scale":                  "rules.score.cgpa_scale",
	"rules_score_waiver_allowed":        "rules.score.waiver_allowed",
	"rules_screening_check_enabled":     "rules.screening.check_enabled",
	"rules_screening_min":               "rules.screening.min",
	"rules_screening_max":               "rules.screening.max",
	"rules_screening_waiver_allowed":    "rules.screening.waiver_allowed",
	"rules_rationale_min_length":        "rules.rationale.min_length",
	"rules_rationale_keywords":          "rules.rationale.keywords",
	"rules_max_waivers_before_flag":     "rules.review.max_waivers_before_flag",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DATABASE_PATH -> database.path
//   - RULES_RATIONALE_KEYWORDS -> rules.rationale.keywords
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	// Returning "" skips the variable so unrelated environment does not
	// pollute the config.
	return ""
}
