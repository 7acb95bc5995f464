// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

/*
Package metrics provides Prometheus metrics for AdmitGuard.

Metrics are registered with the default registry through promauto and are
exposed at /metrics by the API router.

# Available Metrics

Decisions:
  - admitguard_decisions_total{outcome}: admitted or rejected submissions
  - admitguard_waivers_applied_total{field}: accepted waivers per soft field
  - admitguard_field_failures_total{field,tier}: blocking failures
  - admitguard_flagged_total: decisions flagged for manual review

Database:
  - admitguard_db_query_duration_seconds{operation,table}
  - admitguard_db_query_errors_total{operation,table}

HTTP:
  - admitguard_api_requests_total{method,endpoint,status_code}
  - admitguard_api_request_duration_seconds{method,endpoint}
  - admitguard_api_active_requests
  - admitguard_api_rate_limit_hits_total{endpoint}

Resilience and auth:
  - admitguard_circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - admitguard_circuit_breaker_requests_total{name,result}
  - admitguard_circuit_breaker_state_transitions_total{name,from_state,to_state}
  - admitguard_login_attempts_total{result}
  - admitguard_active_sessions

# Usage

	metrics.RecordDecision(metrics.DecisionSummary{Admitted: true, WaivedFields: []string{"graduation_year"}})
	metrics.RecordAPIRequest("POST", "/api/candidates", "201", elapsed)
*/
package metrics
