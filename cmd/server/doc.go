// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

/*
Package main is the entry point for the AdmitGuard server.

AdmitGuard validates candidate intake forms against a two-tier rule set.
Strict rules always block. Soft rules may be waived with a written
rationale. Admitted candidates are stored in SQLite together with an audit
trail, and a candidate carrying more waivers than the configured threshold
is flagged for review.

# Application Architecture

	RootSupervisor ("admitguard")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Janitor (expired sessions, idle login-limiter buckets)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: koanf with defaults, config.yaml and environment variables
 2. Logging: zerolog, JSON or console
 3. Database: SQLite with schema migrations, behind a gobreaker circuit
 4. Intake engine: immutable rule set from configuration
 5. Sessions: in-memory or BadgerDB, bcrypt admin credentials
 6. Authorization: Casbin with an embedded admin policy
 7. Supervisor tree: suture v4, logged through sutureslog
 8. HTTP server: chi with CORS, httprate and Prometheus middleware

# Configuration

Common environment variables:

	HTTP_PORT                      listen port (default 8080)
	DATABASE_PATH                  SQLite file
	ADMIN_USERNAME                 admin login
	ADMIN_PASSWORD_HASH            bcrypt hash; overrides ADMIN_PASSWORD
	SESSION_STORE                  memory or badger
	RULES_MAX_WAIVERS_BEFORE_FLAG  waivers above which a candidate is flagged

The development admin password is refused in production.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
in-flight requests for up to 10s, then the database and session store are
closed.
*/
package main
