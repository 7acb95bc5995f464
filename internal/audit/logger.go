// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package audit

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/admitguard/internal/logging"
)

// Config holds configuration for the security event logger.
type Config struct {
	Enabled bool

	// LogLevel filters events by minimum severity.
	LogLevel Severity

	// BufferSize is the size of the async write buffer.
	BufferSize int

	// LogToStdout also writes events through the application logger.
	LogToStdout bool
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Enabled:     true,
		LogLevel:    SeverityInfo,
		BufferSize:  1000,
		LogToStdout: true,
	}
}

// Logger records security events asynchronously. Log never blocks the
// request path: when the buffer is full the event is dropped with a
// warning.
type Logger struct {
	config    *Config
	store     Store
	eventChan chan *Event
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewLogger starts a logger writing to store.
func NewLogger(store Store, config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BufferSize <= 0 {
		config.BufferSize = 1
	}

	l := &Logger{
		config:    config,
		store:     store,
		eventChan: make(chan *Event, config.BufferSize),
		stopChan:  make(chan struct{}),
	}

	l.wg.Add(1)
	go l.asyncWriter()
	return l
}

func (l *Logger) asyncWriter() {
	defer l.wg.Done()

	for {
		select {
		case <-l.stopChan:
			for {
				select {
				case event := <-l.eventChan:
					l.writeEvent(event)
				default:
					return
				}
			}
		case event := <-l.eventChan:
			l.writeEvent(event)
		}
	}
}

func (l *Logger) writeEvent(event *Event) {
	if l.config.LogToStdout {
		logToStdout(event)
	}
	if l.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.store.Save(ctx, event); err != nil {
		logging.Error().Err(err).Str("event_id", event.ID).Msg("Failed to save audit event")
	}
}

func logToStdout(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal audit event")
		return
	}
	logging.Info().RawJSON("event", data).Str("type", string(event.Type)).Msg("Audit event")
}

// Log queues event for writing. ID and Timestamp are filled when empty.
func (l *Logger) Log(event *Event) {
	if !l.config.Enabled || !l.shouldLog(event.Severity) {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	select {
	case l.eventChan <- event:
	default:
		logging.Warn().Str("event_id", event.ID).Msg("Audit event buffer full, dropping event")
	}
}

func (l *Logger) shouldLog(severity Severity) bool {
	return severityOrder[severity] >= severityOrder[l.config.LogLevel]
}

// Close drains queued events and stops the writer. It is safe to call more
// than once.
func (l *Logger) Close() error {
	l.stopOnce.Do(func() { close(l.stopChan) })
	l.wg.Wait()
	return nil
}

// Query retrieves events matching the filter.
func (l *Logger) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	return l.store.Query(ctx, filter)
}

// Count returns the number of events matching the filter.
func (l *Logger) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	return l.store.Count(ctx, filter)
}

// LogAuthSuccess records a successful admin login.
func (l *Logger) LogAuthSuccess(ctx context.Context, actor Actor, source Source) {
	l.Log(&Event{
		Type:        EventTypeAuthSuccess,
		Severity:    SeverityInfo,
		Outcome:     OutcomeSuccess,
		Actor:       actor,
		Source:      source,
		Action:      "login",
		Description: "Admin authenticated",
		RequestID:   logging.RequestIDFromContext(ctx),
	})
}

// LogAuthFailure records a rejected login attempt.
func (l *Logger) LogAuthFailure(ctx context.Context, username string, source Source, reason string) {
	l.Log(&Event{
		Type:        EventTypeAuthFailure,
		Severity:    SeverityWarning,
		Outcome:     OutcomeFailure,
		Actor:       Actor{ID: username, Type: "anonymous", Name: username},
		Source:      source,
		Action:      "login",
		Description: "Authentication failed: " + reason,
		Metadata:    mustJSON(map[string]string{"reason": reason}),
		RequestID:   logging.RequestIDFromContext(ctx),
	})
}

// LogAuthThrottled records a login refused by the per-IP throttle.
func (l *Logger) LogAuthThrottled(ctx context.Context, source Source, retryAfter time.Duration) {
	l.Log(&Event{
		Type:        EventTypeAuthThrottled,
		Severity:    SeverityWarning,
		Outcome:     OutcomeFailure,
		Actor:       Actor{ID: source.IPAddress, Type: "anonymous"},
		Source:      source,
		Action:      "login",
		Description: "Login throttled",
		Metadata:    mustJSON(map[string]string{"retry_after": retryAfter.String()}),
		RequestID:   logging.RequestIDFromContext(ctx),
	})
}

// LogLogout records the end of an admin session.
func (l *Logger) LogLogout(ctx context.Context, actor Actor, source Source) {
	l.Log(&Event{
		Type:        EventTypeLogout,
		Severity:    SeverityInfo,
		Outcome:     OutcomeSuccess,
		Actor:       actor,
		Source:      source,
		Action:      "logout",
		Target:      &Target{ID: actor.SessionID, Type: "session"},
		Description: "Admin logged out",
		RequestID:   logging.RequestIDFromContext(ctx),
	})
}

// LogAuthzDenied records a request refused by the authorization policy.
func (l *Logger) LogAuthzDenied(ctx context.Context, actor Actor, source Source, resource, action string) {
	l.Log(&Event{
		Type:        EventTypeAuthzDenied,
		Severity:    SeverityWarning,
		Outcome:     OutcomeFailure,
		Actor:       actor,
		Source:      source,
		Action:      "authorize",
		Target:      &Target{ID: resource, Type: "resource"},
		Description: "Authorization denied for " + action + " on " + resource,
		Metadata: mustJSON(map[string]string{
			"resource":         resource,
			"requested_action": action,
		}),
		RequestID: logging.RequestIDFromContext(ctx),
	})
}

// LogAdminAction records an admin mutation of a candidate.
func (l *Logger) LogAdminAction(ctx context.Context, actor Actor, source Source, action, candidateID string) {
	l.Log(&Event{
		Type:        EventTypeAdminAction,
		Severity:    SeverityInfo,
		Outcome:     OutcomeSuccess,
		Actor:       actor,
		Source:      source,
		Action:      action,
		Target:      &Target{ID: candidateID, Type: "candidate"},
		Description: "Admin " + action + " on candidate",
		RequestID:   logging.RequestIDFromContext(ctx),
	})
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

// SourceFromRequest describes the client of r. RemoteAddr is expected to
// already hold the real client address (see chi's RealIP middleware).
func SourceFromRequest(r *http.Request) Source {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return Source{
		IPAddress: ip,
		UserAgent: r.UserAgent(),
		Hostname:  r.Host,
	}
}

// AdminActor builds the Actor for an authenticated admin session.
func AdminActor(username string, roles []string, sessionID string) Actor {
	return Actor{
		ID:        username,
		Type:      "user",
		Name:      username,
		Roles:     roles,
		SessionID: sessionID,
	}
}
