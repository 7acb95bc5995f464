// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

/*
Package config provides centralized configuration management for AdmitGuard.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The eligibility rule set lives under
the "rules" key so every threshold can be tuned without a code change.

# Configuration Sources

  - Defaults (defaultConfig, including rules.Default())
  - YAML file: CONFIG_PATH, or config.yaml / /etc/admitguard/config.yaml
  - Environment variables, mapped explicitly (unmapped variables are ignored)

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 8080), HTTP_TIMEOUT
  - ENVIRONMENT: development (default), staging, production

Database:
  - DATABASE_PATH: SQLite file (default: data/admitguard.db)
  - DATABASE_MAX_OPEN_CONNS
  - BREAKER_MAX_FAILURES, BREAKER_TIMEOUT: storage circuit breaker

Security:
  - ADMIN_USERNAME, ADMIN_PASSWORD or ADMIN_PASSWORD_HASH (bcrypt)
  - SESSION_STORE (memory, badger), SESSION_STORE_PATH, SESSION_TIMEOUT
  - COOKIE_SECURE
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated
  - LOGIN_MAX_ATTEMPTS, LOGIN_WINDOW: per-IP login throttle

Logging:
  - LOG_LEVEL, LOG_FORMAT (json, console), LOG_CALLER

Rules (a selection; see envMappings for the full list):
  - RULES_AGE_MIN, RULES_AGE_MAX, RULES_GRAD_YEAR_MIN, RULES_GRAD_YEAR_MAX
  - RULES_PERCENTAGE_MIN, RULES_CGPA_MIN, RULES_SCREENING_MIN
  - RULES_RATIONALE_MIN_LENGTH, RULES_RATIONALE_KEYWORDS (comma-separated)
  - RULES_MAX_WAIVERS_BEFORE_FLAG

# Production Checks

With ENVIRONMENT=production, Validate refuses the development admin password,
applies DefaultPasswordPolicy to ADMIN_PASSWORD, and rejects wildcard CORS.
*/
package config
