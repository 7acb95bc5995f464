// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package candidate

import (
	"context"

	"github.com/tomtom215/admitguard/internal/database"
	"github.com/tomtom215/admitguard/internal/models"
)

// Tx is the write side of the store, valid inside Store.Update.
type Tx interface {
	RegisteredEmails(ctx context.Context) ([]string, error)
	GetCandidate(ctx context.Context, id string) (*models.Candidate, error)
	InsertCandidate(ctx context.Context, c *models.Candidate) error
	UpdateCandidate(ctx context.Context, c *models.Candidate) error
	DeleteCandidate(ctx context.Context, id string) error
	InsertAudit(ctx context.Context, e *models.AuditEntry) error
}

// Store persists candidates and their audit trail.
type Store interface {
	// Update runs fn in one transaction, committing when fn returns nil.
	Update(ctx context.Context, fn func(tx Tx) error) error

	RegisteredEmails(ctx context.Context) ([]string, error)
	GetCandidate(ctx context.Context, id string) (*models.Candidate, error)
	ListCandidates(ctx context.Context, limit, offset int) ([]models.Candidate, error)
	Stats(ctx context.Context) (*models.DashboardStats, error)
	AuditLog(ctx context.Context, q models.AuditQuery) ([]models.AuditEntry, int, error)
	Ping(ctx context.Context) error
}

// sqlStore adapts *database.DB to Store.
type sqlStore struct {
	*database.DB
}

// NewSQLStore returns a Store backed by db.
func NewSQLStore(db *database.DB) Store {
	return sqlStore{DB: db}
}

func (s sqlStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	return s.WithTx(ctx, func(tx *database.Tx) error {
		return fn(tx)
	})
}
