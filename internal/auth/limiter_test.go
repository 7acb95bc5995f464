// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package auth

import (
	"testing"
	"time"
)

func TestLoginLimiter_ThrottlesAfterFailures(t *testing.T) {
	clock := newFakeClock()
	l := NewLoginLimiter(3, time.Minute)
	l.SetClock(clock.Now)

	for i := 0; i < 3; i++ {
		if ok, _ := l.Check("10.0.0.1"); !ok {
			t.Fatalf("attempt %d throttled too early", i+1)
		}
		l.Failure("10.0.0.1")
	}

	ok, retry := l.Check("10.0.0.1")
	if ok {
		t.Fatal("Check() allowed a fourth attempt")
	}
	if retry <= 0 || retry > 20*time.Second {
		t.Errorf("retryAfter = %v, want (0, 20s]", retry)
	}

	// Other clients are unaffected.
	if ok, _ := l.Check("10.0.0.2"); !ok {
		t.Error("unrelated IP throttled")
	}

	// One token refills every 20s.
	clock.Advance(20 * time.Second)
	if ok, _ := l.Check("10.0.0.1"); !ok {
		t.Error("Check() still throttled after refill")
	}
}

func TestLoginLimiter_CheckDoesNotSpend(t *testing.T) {
	l := NewLoginLimiter(1, time.Minute)
	for i := 0; i < 10; i++ {
		if ok, _ := l.Check("10.0.0.1"); !ok {
			t.Fatal("Check() alone must not consume attempts")
		}
	}
}

func TestLoginLimiter_SuccessResets(t *testing.T) {
	l := NewLoginLimiter(2, time.Minute)
	l.Failure("10.0.0.1")
	l.Failure("10.0.0.1")
	if ok, _ := l.Check("10.0.0.1"); ok {
		t.Fatal("expected throttle")
	}
	l.Success("10.0.0.1")
	if ok, _ := l.Check("10.0.0.1"); !ok {
		t.Error("Success() did not reset the bucket")
	}
}

func TestLoginLimiter_Cleanup(t *testing.T) {
	clock := newFakeClock()
	l := NewLoginLimiter(2, time.Minute)
	l.SetClock(clock.Now)

	l.Failure("10.0.0.1")
	l.Failure("10.0.0.2")
	l.Failure("10.0.0.2")
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}

	clock.Advance(30 * time.Second)
	if n := l.Cleanup(); n != 1 {
		t.Errorf("Cleanup() = %d, want 1 (only the refilled bucket)", n)
	}
	clock.Advance(time.Minute)
	if n := l.Cleanup(); n != 1 || l.Len() != 0 {
		t.Errorf("Cleanup() = %d, Len() = %d, want 1/0", n, l.Len())
	}
}
