// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/admitguard/internal/audit"
	"github.com/tomtom215/admitguard/internal/models"
)

// AuditLog returns the candidate audit trail, newest first.
//
// Query parameters: filter (all, flagged, exceptions), search (name or
// email, case-insensitive), limit, offset.
func (h *Handler) AuditLog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()
	params := models.AuditLogParams{
		PageParams: pageParams(r),
		Filter:     strings.ToLower(q.Get("filter")),
		Search:     strings.TrimSpace(q.Get("search")),
	}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}
	limit := effectiveLimit(params.Limit)

	entries, total, err := h.service.AuditLog(r.Context(), models.AuditQuery{
		Filter: params.Filter,
		Search: params.Search,
		Limit:  limit,
		Offset: params.Offset,
	})
	if err != nil {
		respondServiceError(w, r, nil, err)
		return
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	respondPage(w, r, entries, newPage(limit, params.Offset, len(entries), total), start)
}

// SecurityEvents returns recent security events: logins, throttles,
// logouts, authorization denials and admin actions.
func (h *Handler) SecurityEvents(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()
	params := models.SecurityEventParams{
		PageParams: pageParams(r),
		Type:       q.Get("type"),
		Outcome:    q.Get("outcome"),
	}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	filter := audit.QueryFilter{
		Limit:  effectiveLimit(params.Limit),
		Offset: params.Offset,
	}
	if params.Type != "" {
		filter.Types = []audit.EventType{audit.EventType(params.Type)}
	}
	if params.Outcome != "" {
		filter.Outcomes = []audit.Outcome{audit.Outcome(params.Outcome)}
	}

	events, err := h.events.Query(r.Context(), filter)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to query security events", err)
		return
	}
	total, err := h.events.Count(r.Context(), filter)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to count security events", err)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	respondPage(w, r, events, newPage(filter.Limit, filter.Offset, len(events), int(total)), start)
}
