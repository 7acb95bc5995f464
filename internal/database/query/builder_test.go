// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package query

import (
	"reflect"
	"testing"
)

func TestWhereBuilder_Empty(t *testing.T) {
	wb := NewWhereBuilder()

	if !wb.IsEmpty() || wb.Count() != 0 {
		t.Fatalf("new builder: IsEmpty=%v Count=%d", wb.IsEmpty(), wb.Count())
	}
	if clause, args := wb.Build(); clause != "1=1" || len(args) != 0 {
		t.Errorf("Build() = %q, %v", clause, args)
	}
	if clause, args := wb.BuildWithPrefix(); clause != "" || len(args) != 0 {
		t.Errorf("BuildWithPrefix() = %q, %v", clause, args)
	}
}

func TestWhereBuilder(t *testing.T) {
	tests := []struct {
		name      string
		build     func(*WhereBuilder)
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "raw clause",
			build:     func(wb *WhereBuilder) { wb.AddClause("exception_count > ?", 0) },
			wantWhere: " WHERE exception_count > ?",
			wantArgs:  []interface{}{0},
		},
		{
			name:      "contains one column",
			build:     func(wb *WhereBuilder) { wb.AddContains("Asha", "candidate_name") },
			wantWhere: ` WHERE LOWER(candidate_name) LIKE ? ESCAPE '\'`,
			wantArgs:  []interface{}{"%asha%"},
		},
		{
			name: "contains any column, combined with a flag",
			build: func(wb *WhereBuilder) {
				wb.AddClause("flagged_for_review = 1").AddContains(" 50%_off ", "candidate_name", "candidate_email")
			},
			wantWhere: ` WHERE flagged_for_review = 1 AND (LOWER(candidate_name) LIKE ? ESCAPE '\' OR LOWER(candidate_email) LIKE ? ESCAPE '\')`,
			wantArgs:  []interface{}{`%50\%\_off%`, `%50\%\_off%`},
		},
		{
			name:      "blank term adds nothing",
			build:     func(wb *WhereBuilder) { wb.AddContains("   ", "candidate_name") },
			wantWhere: "",
			wantArgs:  []interface{}{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := NewWhereBuilder()
			tt.build(wb)
			where, args := wb.BuildWithPrefix()
			if where != tt.wantWhere {
				t.Errorf("where = %q, want %q", where, tt.wantWhere)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"plain":   "plain",
		"50%":     `50\%`,
		"a_b":     `a\_b`,
		`back\sl`: `back\\sl`,
	}
	for in, want := range tests {
		if got := EscapeLike(in); got != want {
			t.Errorf("EscapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}
