// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/admitguard/internal/models"
)

const healthPingTimeout = 2 * time.Second

// Health reports service and database status. It always answers 200; a
// failed database ping reports "degraded".
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	dbConnected := h.service.Ping(ctx) == nil

	status := "healthy"
	if !dbConnected {
		status = "degraded"
	}

	respondSuccess(w, r, http.StatusOK, models.HealthStatus{
		Status:            status,
		Version:           h.version,
		RulesVersion:      h.service.Engine().Rules().Version,
		DatabaseConnected: dbConnected,
		Uptime:            time.Since(h.startTime).Seconds(),
	}, time.Time{})
}
