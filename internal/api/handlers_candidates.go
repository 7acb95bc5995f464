// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/admitguard/internal/candidate"
	"github.com/tomtom215/admitguard/internal/logging"
	"github.com/tomtom215/admitguard/internal/models"
)

// SubmitResponse is the body of a successful POST /api/candidates.
type SubmitResponse struct {
	Candidate *models.Candidate `json:"candidate"`
	Decision  ValidateResponse  `json:"decision"`
}

// CreateCandidate decides a submission and stores it when admitted:
// 201 on admission, 422 with the blocking and waived errors otherwise, 409
// when the email was registered concurrently.
func (h *Handler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sub, err := decodeSubmission(w, r)
	if err != nil {
		respondBodyError(w, r, err)
		return
	}

	res, err := h.service.Submit(r.Context(), sub, candidate.ActorPublic)
	if err != nil {
		respondServiceError(w, r, res, err)
		return
	}

	w.Header().Set("Location", "/api/candidates/"+res.Candidate.ID)
	respondSuccess(w, r, http.StatusCreated, SubmitResponse{
		Candidate: res.Candidate,
		Decision:  newValidateResponse(res.Decision),
	}, start)
}

// ListCandidates returns a page of candidates, newest first, with phone
// and Aadhaar numbers masked.
func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	h.listCandidates(w, r, true)
}

// GetCandidate returns one candidate with phone and Aadhaar numbers
// masked.
func (h *Handler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	h.getCandidate(w, r, true)
}

// Dashboard returns submission totals and the exception rate.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondServiceError(w, r, nil, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, stats, start)
}

func (h *Handler) listCandidates(w http.ResponseWriter, r *http.Request, mask bool) {
	start := time.Now()
	params := pageParams(r)
	if apiErr := validateRequest(&params); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}
	limit := effectiveLimit(params.Limit)

	list, err := h.service.List(r.Context(), limit, params.Offset)
	if err != nil {
		respondServiceError(w, r, nil, err)
		return
	}
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondServiceError(w, r, nil, err)
		return
	}

	if list == nil {
		list = []models.Candidate{}
	}
	if mask {
		for i := range list {
			maskCandidate(&list[i])
		}
	}
	respondPage(w, r, list, newPage(limit, params.Offset, len(list), stats.TotalSubmissions), start)
}

func (h *Handler) getCandidate(w http.ResponseWriter, r *http.Request, mask bool) {
	start := time.Now()
	c, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, nil, err)
		return
	}
	if mask {
		maskCandidate(c)
	}
	respondSuccess(w, r, http.StatusOK, c, start)
}

func maskCandidate(c *models.Candidate) {
	c.Phone = logging.MaskDigits(c.Phone)
	c.Aadhaar = logging.MaskDigits(c.Aadhaar)
}
