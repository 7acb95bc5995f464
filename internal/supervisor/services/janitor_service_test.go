// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

func TestJanitorService_Interface(t *testing.T) {
	var _ suture.Service = (*JanitorService)(nil)
}

func TestNewJanitorService_DefaultInterval(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		if svc := NewJanitorService(d); svc.interval != 5*time.Minute {
			t.Errorf("NewJanitorService(%v).interval = %v, want 5m", d, svc.interval)
		}
	}
}

func TestJanitorService_RunOnce(t *testing.T) {
	var sessions, buckets atomic.Int32
	svc := NewJanitorService(time.Minute,
		CleanupTask{Name: "broken", Run: func(context.Context) (int, error) {
			return 0, errors.New("store closed")
		}},
		CleanupTask{Name: "sessions", Run: func(context.Context) (int, error) {
			sessions.Add(1)
			return 2, nil
		}},
		CleanupTask{Name: "limiter", Run: func(context.Context) (int, error) {
			buckets.Add(1)
			return 0, nil
		}},
	)

	svc.RunOnce(context.Background())

	if sessions.Load() != 1 || buckets.Load() != 1 {
		t.Errorf("task runs = %d, %d; want 1, 1 after a failing task", sessions.Load(), buckets.Load())
	}
}

func TestJanitorService_Serve(t *testing.T) {
	var runs atomic.Int32
	svc := NewJanitorService(10*time.Millisecond, CleanupTask{
		Name: "count",
		Run: func(context.Context) (int, error) {
			runs.Add(1)
			return 1, nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(time.Second)
	for runs.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
	if runs.Load() < 2 {
		t.Errorf("runs = %d, want at least 2", runs.Load())
	}
	if svc.String() != "janitor" {
		t.Errorf("String() = %q", svc.String())
	}
}
