// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

// Package validation checks the shape of API requests with
// go-playground/validator v10.
//
// It only guards request structure: login bodies, query parameters and the
// key set of admin patches. Candidate field values are judged by the intake
// engine, never here.
//
// # Usage
//
//	var req models.LoginRequest
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// # Custom Tags
//
//	intake_field - the string names a field of the intake form
//
// Error field names come from json tags, so messages use the same names
// clients send.
package validation
