// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package candidate

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/admitguard/internal/logging"
	"github.com/tomtom215/admitguard/internal/metrics"
	"github.com/tomtom215/admitguard/internal/models"
)

// BreakerConfig tunes the storage circuit breaker.
type BreakerConfig struct {
	Name        string
	MaxFailures uint32        // consecutive failures that open the circuit
	Timeout     time.Duration // time spent open before a trial request
}

// BreakerStore wraps a Store with a circuit breaker. Once the database
// has failed MaxFailures times in a row, calls fail fast with
// ErrUnavailable until Timeout has passed and a trial call succeeds.
//
// Not-found, duplicate-email and rejected-decision results are normal
// outcomes and never trip the breaker.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// NewBreakerStore wraps next.
func NewBreakerStore(next Store, cfg BreakerConfig) *BreakerStore {
	if cfg.Name == "" {
		cfg.Name = "sqlite"
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= cfg.MaxFailures
			if shouldTrip {
				logging.Warn().
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Str("breaker", cfg.Name).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
		IsSuccessful: isExpected,
	})

	return &BreakerStore{next: next, cb: cb, name: cfg.Name}
}

// State returns the current breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

// execute runs fn through the breaker and records the result.
func execute[T any](b *BreakerStore, fn func() (T, error)) (T, error) {
	var zero T
	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", b.name).Msg("[CIRCUIT BREAKER] Request rejected")
		case isExpected(err):
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		}
		return zero, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()

	typed, ok := result.(T)
	if !ok && result != nil {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func (b *BreakerStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	_, err := execute(b, func() (struct{}, error) {
		return struct{}{}, b.next.Update(ctx, fn)
	})
	return err
}

func (b *BreakerStore) RegisteredEmails(ctx context.Context) ([]string, error) {
	return execute(b, func() ([]string, error) {
		return b.next.RegisteredEmails(ctx)
	})
}

func (b *BreakerStore) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	return execute(b, func() (*models.Candidate, error) {
		return b.next.GetCandidate(ctx, id)
	})
}

func (b *BreakerStore) ListCandidates(ctx context.Context, limit, offset int) ([]models.Candidate, error) {
	return execute(b, func() ([]models.Candidate, error) {
		return b.next.ListCandidates(ctx, limit, offset)
	})
}

func (b *BreakerStore) Stats(ctx context.Context) (*models.DashboardStats, error) {
	return execute(b, func() (*models.DashboardStats, error) {
		return b.next.Stats(ctx)
	})
}

type auditPage struct {
	entries []models.AuditEntry
	total   int
}

func (b *BreakerStore) AuditLog(ctx context.Context, q models.AuditQuery) ([]models.AuditEntry, int, error) {
	page, err := execute(b, func() (auditPage, error) {
		entries, total, err := b.next.AuditLog(ctx, q)
		return auditPage{entries: entries, total: total}, err
	})
	return page.entries, page.total, err
}

// Ping bypasses the breaker so health checks report the real database
// state even while the circuit is open.
func (b *BreakerStore) Ping(ctx context.Context) error {
	return b.next.Ping(ctx)
}

func stateToString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
