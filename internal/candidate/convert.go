// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package candidate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/tomtom215/admitguard/internal/intake"
	"github.com/tomtom215/admitguard/internal/models"
)

// fromRecord builds the stored form of an admitted record. rec must be
// normalized and d must admit it, which guarantees every numeric soft field
// parses.
func fromRecord(rec intake.Record, d intake.Decision) (*models.Candidate, error) {
	year, err := strconv.Atoi(rec.Get(intake.FieldGraduationYear))
	if err != nil {
		return nil, fmt.Errorf("graduation year: %w", err)
	}
	score, err := strconv.ParseFloat(rec.Get(intake.FieldScore), 64)
	if err != nil {
		return nil, fmt.Errorf("percentage/cgpa: %w", err)
	}
	screening, err := strconv.ParseFloat(rec.Get(intake.FieldScreeningScore), 64)
	if err != nil {
		return nil, fmt.Errorf("screening score: %w", err)
	}

	scoreType := intake.ScoreTypePercentage
	if strings.EqualFold(rec.Get(intake.FieldScoreType), intake.ScoreTypeCGPA) {
		scoreType = intake.ScoreTypeCGPA
	}

	waivers := make([]models.Waiver, 0, d.WaiverCount)
	for _, w := range d.AppliedWaivers() {
		waivers = append(waivers, models.Waiver{
			Field:         string(w.Field),
			Rationale:     w.Rationale,
			OriginalError: w.OriginalError,
		})
	}

	return &models.Candidate{
		FullName:             rec.Get(intake.FieldFullName),
		Email:                rec.Get(intake.FieldEmail),
		Phone:                compactPhone(rec.Get(intake.FieldPhone)),
		DateOfBirth:          rec.Get(intake.FieldDateOfBirth),
		HighestQualification: rec.Get(intake.FieldQualification),
		GraduationYear:       year,
		PercentageCGPA:       score,
		ScoreType:            scoreType,
		ScreeningTestScore:   screening,
		InterviewStatus:      rec.Get(intake.FieldInterviewStatus),
		Aadhaar:              rec.Get(intake.FieldAadhaar),
		OfferLetterSent:      rec.Get(intake.FieldOfferLetter),
		Exceptions:           waivers,
		ExceptionCount:       d.WaiverCount,
		FlaggedForReview:     d.Flagged,
	}, nil
}

// toRecord is the inverse of fromRecord, used to re-validate an edit.
func toRecord(c *models.Candidate) intake.Record {
	return intake.Record{
		intake.FieldFullName:        c.FullName,
		intake.FieldEmail:           c.Email,
		intake.FieldPhone:           c.Phone,
		intake.FieldDateOfBirth:     c.DateOfBirth,
		intake.FieldQualification:   c.HighestQualification,
		intake.FieldGraduationYear:  strconv.Itoa(c.GraduationYear),
		intake.FieldScore:           strconv.FormatFloat(c.PercentageCGPA, 'f', -1, 64),
		intake.FieldScoreType:       c.ScoreType,
		intake.FieldScreeningScore:  strconv.FormatFloat(c.ScreeningTestScore, 'f', -1, 64),
		intake.FieldInterviewStatus: c.InterviewStatus,
		intake.FieldAadhaar:         c.Aadhaar,
		intake.FieldOfferLetter:     c.OfferLetterSent,
	}
}

// storedWaivers re-requests every waiver the candidate was admitted with.
func storedWaivers(c *models.Candidate) intake.Waivers {
	w := make(intake.Waivers, len(c.Exceptions))
	for _, e := range c.Exceptions {
		w[intake.Field(e.Field)] = intake.WaiverRequest{Requested: true, Rationale: e.Rationale}
	}
	return w
}

// compactPhone drops the separators the phone validator tolerates.
func compactPhone(p string) string {
	return strings.Map(func(c rune) rune {
		if c == '-' || unicode.IsSpace(c) {
			return -1
		}
		return c
	}, p)
}
