// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/admitguard/internal/models"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same instance")
	}
}

// ===================================================================================================
// Request Structs
// ===================================================================================================

func TestValidateStruct_LoginRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        models.LoginRequest
		wantFields []string
	}{
		{"valid", models.LoginRequest{Username: "admin", Password: "s3cret-pass"}, nil},
		{"missing both", models.LoginRequest{}, []string{"username", "password"}},
		{"missing password", models.LoginRequest{Username: "admin"}, []string{"password"}},
		{"username too long", models.LoginRequest{Username: strings.Repeat("a", 65), Password: "x"}, []string{"username"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			if tt.wantFields == nil {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			var got []string
			for _, e := range verr.Errors() {
				got = append(got, e.Field())
			}
			if strings.Join(got, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("fields = %v, want %v", got, tt.wantFields)
			}
		})
	}
}

func TestValidateStruct_AuditLogParams(t *testing.T) {
	tests := []struct {
		name    string
		params  models.AuditLogParams
		wantErr string
	}{
		{"defaults", models.AuditLogParams{}, ""},
		{"flagged", models.AuditLogParams{Filter: "flagged", Search: "asha"}, ""},
		{"unknown filter", models.AuditLogParams{Filter: "recent"}, "filter must be one of: all flagged exceptions"},
		{"limit too large", models.AuditLogParams{PageParams: models.PageParams{Limit: 501}}, "limit must be at most 500"},
		{"negative offset", models.AuditLogParams{PageParams: models.PageParams{Offset: -1}}, "offset must be at least 0"},
		{"search too long", models.AuditLogParams{Search: strings.Repeat("x", 201)}, "search must be at most 200 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.params)
			if tt.wantErr == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil || verr.Error() != tt.wantErr {
				t.Errorf("ValidateStruct() = %v, want %q", verr, tt.wantErr)
			}
		})
	}
}

func TestValidateStruct_SecurityEventParams(t *testing.T) {
	if verr := ValidateStruct(&models.SecurityEventParams{Type: "auth.failure", Outcome: "failure"}); verr != nil {
		t.Errorf("valid params: %v", verr)
	}
	if verr := ValidateStruct(&models.SecurityEventParams{Type: "auth.bogus"}); verr == nil {
		t.Error("unknown type accepted")
	}
	if verr := ValidateStruct(&models.SecurityEventParams{Outcome: "maybe"}); verr == nil {
		t.Error("unknown outcome accepted")
	}
}

func TestValidateStruct_CandidatePatch(t *testing.T) {
	tests := []struct {
		name    string
		fields  []string
		wantErr string
	}{
		{"strict and soft fields", []string{"phone", "graduation_year", "score_type"}, ""},
		{"empty", []string{}, "fields must be at least 1 entries"},
		{"nil", nil, "fields is required"},
		{"unknown key", []string{"phone", "nickname"}, `"nickname" is not a field of the intake form`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&models.CandidatePatch{Fields: tt.fields})
			if tt.wantErr == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil || verr.Error() != tt.wantErr {
				t.Errorf("ValidateStruct() = %v, want %q", verr, tt.wantErr)
			}
		})
	}
}

// ===================================================================================================
// APIError Conversion
// ===================================================================================================

func TestToAPIError(t *testing.T) {
	t.Run("single error omits value", func(t *testing.T) {
		verr := ValidateStruct(&models.LoginRequest{Username: "admin"})
		apiErr := verr.ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" || apiErr.Message != "password is required" {
			t.Errorf("ToAPIError() = %+v", apiErr)
		}
		if _, ok := apiErr.Details["value"]; ok {
			t.Error("details should not carry the rejected value")
		}
		if apiErr.Details["field"] != "password" {
			t.Errorf("details field = %v", apiErr.Details["field"])
		}
	})

	t.Run("multiple errors list fields", func(t *testing.T) {
		apiErr := ValidateStruct(&models.LoginRequest{}).ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 2 {
			t.Fatalf("details fields = %#v", apiErr.Details["fields"])
		}
		if apiErr.Message != "username is required; password is required" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}
