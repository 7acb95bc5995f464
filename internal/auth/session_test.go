// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeClock is a settable time source.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Now().Truncate(time.Second)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// storeFactories runs the same behavior tests against every backend.
func storeFactories(t *testing.T) map[string]func(clock *fakeClock) SessionStore {
	t.Helper()
	return map[string]func(clock *fakeClock) SessionStore{
		"memory": func(clock *fakeClock) SessionStore {
			s := NewMemorySessionStore()
			s.SetClock(clock.Now)
			return s
		},
		"badger": func(clock *fakeClock) SessionStore {
			s, err := OpenBadgerSessionStore(t.TempDir())
			if err != nil {
				t.Fatalf("OpenBadgerSessionStore() error = %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			s.SetClock(clock.Now)
			return s
		},
	}
}

func TestSessionStore_Lifecycle(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			clock := newFakeClock()
			store := factory(clock)
			ctx := context.Background()

			s := NewSession("admin", []string{RoleAdmin}, time.Hour, clock.Now())
			if err := store.Create(ctx, s); err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			got, err := store.Get(ctx, s.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Username != "admin" || len(got.Roles) != 1 || got.Roles[0] != RoleAdmin {
				t.Errorf("Get() = %+v", got)
			}

			// Mutating the returned copy must not change the store.
			got.Roles[0] = "tampered"
			again, _ := store.Get(ctx, s.ID)
			if again.Roles[0] != RoleAdmin {
				t.Errorf("stored roles changed through a returned copy")
			}

			if n, _ := store.Count(ctx); n != 1 {
				t.Errorf("Count() = %d, want 1", n)
			}

			if err := store.Delete(ctx, s.ID); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("Get() after delete error = %v, want ErrSessionNotFound", err)
			}
			if err := store.Delete(ctx, s.ID); err != nil {
				t.Errorf("second Delete() error = %v, want nil", err)
			}
		})
	}
}

func TestSessionStore_ExpiryAndTouch(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			clock := newFakeClock()
			store := factory(clock)
			ctx := context.Background()

			s := NewSession("admin", nil, time.Hour, clock.Now())
			_ = store.Create(ctx, s)

			clock.Advance(50 * time.Minute)
			if err := store.Touch(ctx, s.ID, clock.Now().Add(time.Hour)); err != nil {
				t.Fatalf("Touch() error = %v", err)
			}

			clock.Advance(50 * time.Minute)
			got, err := store.Get(ctx, s.ID)
			if err != nil {
				t.Fatalf("Get() after touch error = %v, want session alive", err)
			}
			if !got.LastAccessedAt.Equal(s.CreatedAt.Add(50 * time.Minute)) {
				t.Errorf("LastAccessedAt = %v", got.LastAccessedAt)
			}

			clock.Advance(11 * time.Minute)
			if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrSessionExpired) {
				t.Errorf("Get() error = %v, want ErrSessionExpired", err)
			}

			if err := store.Touch(ctx, "missing", clock.Now()); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("Touch(missing) error = %v, want ErrSessionNotFound", err)
			}
		})
	}
}

func TestSessionStore_CleanupExpired(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			clock := newFakeClock()
			store := factory(clock)
			ctx := context.Background()

			short := NewSession("admin", nil, time.Minute, clock.Now())
			long := NewSession("admin", nil, time.Hour, clock.Now())
			_ = store.Create(ctx, short)
			_ = store.Create(ctx, long)

			clock.Advance(2 * time.Minute)
			n, err := store.CleanupExpired(ctx)
			if err != nil {
				t.Fatalf("CleanupExpired() error = %v", err)
			}
			if n != 1 {
				t.Errorf("CleanupExpired() = %d, want 1", n)
			}
			if c, _ := store.Count(ctx); c != 1 {
				t.Errorf("Count() = %d, want 1", c)
			}
			if _, err := store.Get(ctx, long.ID); err != nil {
				t.Errorf("long session lost: %v", err)
			}
		})
	}
}

func TestBadgerSessionStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := OpenBadgerSessionStore(dir)
	if err != nil {
		t.Fatalf("OpenBadgerSessionStore() error = %v", err)
	}
	sess := NewSession("admin", []string{RoleAdmin}, time.Hour, time.Now())
	if err := s1.Create(ctx, sess); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s2, err := OpenBadgerSessionStore(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s2.Close()

	got, err := s2.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.Username != "admin" {
		t.Errorf("Username = %q", got.Username)
	}
}

func TestNewSession_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := NewSession("admin", nil, time.Hour, time.Now())
		if len(s.ID) != 64 {
			t.Fatalf("ID length = %d, want 64 hex chars", len(s.ID))
		}
		if seen[s.ID] {
			t.Fatalf("duplicate session ID %s", s.ID)
		}
		seen[s.ID] = true
	}
}
