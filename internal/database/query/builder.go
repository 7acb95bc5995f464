// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package query

import (
	"strings"
)

// WhereBuilder constructs SQL WHERE clauses with positional arguments.
//
//	wb := query.NewWhereBuilder()
//	wb.AddClause("flagged_for_review = 1")
//	wb.AddContains("asha", "candidate_name", "candidate_email")
//	where, args := wb.Build()
//	// flagged_for_review = 1 AND (LOWER(candidate_name) LIKE ? ESCAPE '\' OR LOWER(candidate_email) LIKE ? ESCAPE '\')
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates an empty builder.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw condition with its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddContains adds a case-insensitive substring match of term against any
// of columns. LIKE wildcards in term match literally. A blank term or no
// columns adds nothing.
func (wb *WhereBuilder) AddContains(term string, columns ...string) *WhereBuilder {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return wb
	}

	pattern := "%" + EscapeLike(strings.ToLower(term)) + "%"
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
		wb.args = append(wb.args, pattern)
	}
	if len(parts) == 1 {
		wb.clauses = append(wb.clauses, parts[0])
	} else {
		wb.clauses = append(wb.clauses, "("+strings.Join(parts, " OR ")+")")
	}
	return wb
}

// Build joins the clauses with AND. An empty builder yields "1=1".
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix is Build with a leading " WHERE ", or "" when empty, so
// it can be appended directly after a table name.
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	if wb.IsEmpty() {
		return "", []interface{}{}
	}
	clause, args := wb.Build()
	return " WHERE " + clause, args
}

// Count returns the number of clauses added.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty reports whether no clause has been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards for use with ESCAPE '\'.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
