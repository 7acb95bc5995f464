// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

// Package database stores admitted candidates and the audit log in SQLite.
//
// # Overview
//
// The package wraps a database/sql pool opened with mattn/go-sqlite3 in WAL
// mode with foreign keys on. The schema (database_schema.go) is created
// idempotently at startup; there is no migration framework.
//
// Files:
//   - database.go: lifecycle (New, Close, Ping) and the WithTx helper
//   - database_schema.go: candidates and audit_log tables
//   - crud_candidates.go: candidate CRUD, the registered-email snapshot
//     and dashboard statistics
//   - crud_audit.go: audit log append and filtered, searchable listing
//   - errors.go: sentinel errors and SQLite error mapping
//
// # Transactions
//
// Writes happen through Tx, obtained from WithTx. Transactions begin
// IMMEDIATE, so a caller can read the email snapshot, decide, and insert
// without another writer slipping in between. The UNIQUE constraint on
// candidates.email backs this up and surfaces as ErrDuplicateEmail.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	err = db.WithTx(ctx, func(tx *database.Tx) error {
//	    emails, err := tx.RegisteredEmails(ctx)
//	    ...
//	    return tx.InsertCandidate(ctx, candidate)
//	})
package database
