// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - intake decisions, waivers and field failures
// - SQLite query performance
// - API endpoint latency and throughput
// - the storage circuit breaker
// - admin login attempts

var (
	// Decision Metrics
	DecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitguard_decisions_total",
			Help: "Total number of intake decisions",
		},
		[]string{"outcome"}, // "admitted", "rejected"
	)

	WaiversApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitguard_waivers_applied_total",
			Help: "Total number of accepted waivers by soft field",
		},
		[]string{"field"},
	)

	FieldFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitguard_field_failures_total",
			Help: "Total number of blocking field failures",
		},
		[]string{"field", "tier"},
	)

	FlaggedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "admitguard_flagged_total",
			Help: "Total number of decisions flagged for review",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "admitguard_db_query_duration_seconds",
			Help:    "Duration of SQLite queries in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitguard_db_query_errors_total",
			Help: "Total number of SQLite query errors",
		},
		[]string{"operation", "table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitguard_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "admitguard_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "admitguard_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitguard_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "admitguard_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitguard_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitguard_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Authentication Metrics
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitguard_login_attempts_total",
			Help: "Total number of admin login attempts",
		},
		[]string{"result"}, // "success", "failure", "throttled"
	)

	AuthzDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitguard_authz_decisions_total",
			Help: "Total number of admin authorization decisions",
		},
		[]string{"result"}, // "allowed", "denied", "error"
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "admitguard_active_sessions",
			Help: "Current number of admin sessions held in memory",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "admitguard_app_info",
			Help: "Application version and rules version",
		},
		[]string{"version", "rules_version"},
	)
)

// DecisionSummary is the slice of a decision the metrics care about. The
// intake package stays free of a Prometheus dependency by handing over
// plain values.
type DecisionSummary struct {
	Admitted       bool
	Flagged        bool
	WaivedFields   []string
	StrictFailures []string
	SoftFailures   []string
}

// RecordDecision records one intake decision.
func RecordDecision(s DecisionSummary) {
	outcome := "rejected"
	if s.Admitted {
		outcome = "admitted"
	}
	DecisionsTotal.WithLabelValues(outcome).Inc()

	if s.Flagged {
		FlaggedTotal.Inc()
	}
	for _, f := range s.WaivedFields {
		WaiversApplied.WithLabelValues(f).Inc()
	}
	for _, f := range s.StrictFailures {
		FieldFailures.WithLabelValues(f, "strict").Inc()
	}
	for _, f := range s.SoftFailures {
		FieldFailures.WithLabelValues(f, "soft").Inc()
	}
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordLoginAttempt records the result of an admin login.
func RecordLoginAttempt(result string) {
	LoginAttempts.WithLabelValues(result).Inc()
}

// SetAppInfo publishes the build and rules versions as a constant gauge.
func SetAppInfo(version, rulesVersion string) {
	AppInfo.WithLabelValues(version, rulesVersion).Set(1)
}
