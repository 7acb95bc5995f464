// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package auth

import (
	"fmt"
	"io"
)

// SessionStoreType names a session storage backend.
type SessionStoreType string

const (
	// SessionStoreMemory keeps sessions in process memory. Restarts log
	// every admin out.
	SessionStoreMemory SessionStoreType = "memory"

	// SessionStoreBadger persists sessions in BadgerDB.
	SessionStoreBadger SessionStoreType = "badger"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenSessionStore opens the configured backend. The returned Closer must be
// closed on shutdown; for the memory store it does nothing. An empty type
// means memory.
func OpenSessionStore(storeType SessionStoreType, path string) (SessionStore, io.Closer, error) {
	switch storeType {
	case SessionStoreMemory, "":
		return NewMemorySessionStore(), nopCloser{}, nil
	case SessionStoreBadger:
		if path == "" {
			return nil, nil, fmt.Errorf("badger session store requires a path")
		}
		store, err := OpenBadgerSessionStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", storeType)
	}
}
