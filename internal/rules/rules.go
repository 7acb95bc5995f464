// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

// Package rules holds the eligibility rule set read by every intake
// validator.
//
// A Rules value is plain data. It is loaded once by internal/config, checked
// with Validate, and handed to intake.NewEngine, which keeps its own deep
// copy. Retuning a threshold is a configuration change, never a code change.
package rules

import (
	"errors"
	"fmt"
	"strings"
)

// Rules is the complete rule set. Field groups mirror the candidate form.
type Rules struct {
	// Version is stamped into decision logs so a verdict can be traced back
	// to the rule set that produced it.
	Version string `koanf:"version"`

	Name          NameRules          `koanf:"name"`
	Email         EmailRules         `koanf:"email"`
	Phone         PhoneRules         `koanf:"phone"`
	Qualification QualificationRules `koanf:"qualification"`
	Interview     InterviewRules     `koanf:"interview"`
	Aadhaar       AadhaarRules       `koanf:"aadhaar"`
	OfferLetter   OfferLetterRules   `koanf:"offer_letter"`

	Age            AgeRules            `koanf:"age"`
	GraduationYear GraduationYearRules `koanf:"graduation_year"`
	Score          ScoreRules          `koanf:"score"`
	Screening      ScreeningRules      `koanf:"screening"`

	Rationale RationaleRules `koanf:"rationale"`
	Review    ReviewRules    `koanf:"review"`
}

type NameRules struct {
	Required  bool `koanf:"required"`
	MinLength int  `koanf:"min_length"`
	NoNumbers bool `koanf:"no_numbers"`
}

type EmailRules struct {
	Required bool `koanf:"required"`
	Unique   bool `koanf:"unique"`
}

type PhoneRules struct {
	Required bool `koanf:"required"`
	Length   int  `koanf:"length"`
	// ValidStartDigits lists the digits a number may begin with. Empty
	// disables the check.
	ValidStartDigits []int `koanf:"valid_start_digits"`
}

type QualificationRules struct {
	Required bool     `koanf:"required"`
	Allowed  []string `koanf:"allowed"`
}

type InterviewRules struct {
	Required        bool     `koanf:"required"`
	Valid           []string `koanf:"valid"`
	BlockOnRejected bool     `koanf:"block_on_rejected"`
	RejectedValue   string   `koanf:"rejected_value"`
}

type AadhaarRules struct {
	Required   bool `koanf:"required"`
	Length     int  `koanf:"length"`
	DigitsOnly bool `koanf:"digits_only"`
}

type OfferLetterRules struct {
	Required                  bool     `koanf:"required"`
	Valid                     []string `koanf:"valid"`
	RequiresPositiveInterview bool     `koanf:"requires_positive_interview"`
	// PositiveInterview lists interview statuses that permit an offer.
	PositiveInterview []string `koanf:"positive_interview"`
}

// AgeRules bounds the candidate's age, in whole years, inclusive.
type AgeRules struct {
	CheckEnabled  bool `koanf:"check_enabled"`
	Min           int  `koanf:"min"`
	Max           int  `koanf:"max"`
	WaiverAllowed bool `koanf:"waiver_allowed"`
}

type GraduationYearRules struct {
	CheckEnabled  bool `koanf:"check_enabled"`
	Min           int  `koanf:"min"`
	Max           int  `koanf:"max"`
	WaiverAllowed bool `koanf:"waiver_allowed"`
}

type ScoreRules struct {
	CheckEnabled  bool    `koanf:"check_enabled"`
	PercentageMin float64 `koanf:"percentage_min"`
	CGPAMin       float64 `koanf:"cgpa_min"`
	CGPAScale     float64 `koanf:"cgpa_scale"`
	WaiverAllowed bool    `koanf:"waiver_allowed"`
}

type ScreeningRules struct {
	CheckEnabled  bool    `koanf:"check_enabled"`
	Min           float64 `koanf:"min"`
	Max           float64 `koanf:"max"`
	WaiverAllowed bool    `koanf:"waiver_allowed"`
}

// RationaleRules is the policy a waiver justification must satisfy.
type RationaleRules struct {
	MinLength int      `koanf:"min_length"`
	Keywords  []string `koanf:"keywords"`
}

type ReviewRules struct {
	// MaxWaiversBeforeFlag: a decision is flagged when its waiver count is
	// strictly greater than this value.
	MaxWaiversBeforeFlag int `koanf:"max_waivers_before_flag"`
}

// Default returns the production rule set.
func Default() Rules {
	return Rules{
		Version: "2025.1",
		Name: NameRules{
			Required:  true,
			MinLength: 2,
			NoNumbers: true,
		},
		Email: EmailRules{Required: true, Unique: true},
		Phone: PhoneRules{
			Required:         true,
			Length:           10,
			ValidStartDigits: []int{6, 7, 8, 9},
		},
		Qualification: QualificationRules{
			Required: true,
			Allowed:  []string{"B.Tech", "B.E.", "B.Sc", "BCA", "M.Tech", "M.Sc", "MCA", "MBA"},
		},
		Interview: InterviewRules{
			Required:        true,
			Valid:           []string{"Cleared", "Waitlisted", "Rejected"},
			BlockOnRejected: true,
			RejectedValue:   "Rejected",
		},
		Aadhaar: AadhaarRules{Required: true, Length: 12, DigitsOnly: true},
		OfferLetter: OfferLetterRules{
			Required:                  true,
			Valid:                     []string{"Yes", "No"},
			RequiresPositiveInterview: true,
			PositiveInterview:         []string{"Cleared", "Waitlisted"},
		},
		Age: AgeRules{CheckEnabled: true, Min: 18, Max: 35, WaiverAllowed: true},
		GraduationYear: GraduationYearRules{
			CheckEnabled:  true,
			Min:           2015,
			Max:           2025,
			WaiverAllowed: true,
		},
		Score: ScoreRules{
			CheckEnabled:  true,
			PercentageMin: 60,
			CGPAMin:       6.0,
			CGPAScale:     10,
			WaiverAllowed: true,
		},
		Screening: ScreeningRules{CheckEnabled: true, Min: 40, Max: 100, WaiverAllowed: true},
		Rationale: RationaleRules{
			MinLength: 30,
			Keywords:  []string{"approved by", "special case", "documentation pending", "waiver granted"},
		},
		Review: ReviewRules{MaxWaiversBeforeFlag: 2},
	}
}

// Clone returns a deep copy; no slice is shared with r.
func (r Rules) Clone() Rules {
	c := r
	c.Phone.ValidStartDigits = append([]int(nil), r.Phone.ValidStartDigits...)
	c.Qualification.Allowed = append([]string(nil), r.Qualification.Allowed...)
	c.Interview.Valid = append([]string(nil), r.Interview.Valid...)
	c.OfferLetter.Valid = append([]string(nil), r.OfferLetter.Valid...)
	c.OfferLetter.PositiveInterview = append([]string(nil), r.OfferLetter.PositiveInterview...)
	c.Rationale.Keywords = append([]string(nil), r.Rationale.Keywords...)
	return c
}

// Validate reports every inconsistency in r, joined into one error.
func (r Rules) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if r.Name.MinLength < 0 {
		add("name.min_length must not be negative, got %d", r.Name.MinLength)
	}
	if r.Phone.Length < 0 {
		add("phone.length must not be negative, got %d", r.Phone.Length)
	}
	for _, d := range r.Phone.ValidStartDigits {
		if d < 0 || d > 9 {
			add("phone.valid_start_digits must be single digits, got %d", d)
		}
	}
	if r.Aadhaar.Length < 0 {
		add("aadhaar.length must not be negative, got %d", r.Aadhaar.Length)
	}
	if r.Interview.BlockOnRejected && strings.TrimSpace(r.Interview.RejectedValue) == "" {
		add("interview.rejected_value is required when block_on_rejected is set")
	}
	if r.OfferLetter.RequiresPositiveInterview && len(r.OfferLetter.PositiveInterview) == 0 {
		add("offer_letter.positive_interview is required when requires_positive_interview is set")
	}
	if r.Age.Min > r.Age.Max {
		add("age.min (%d) must not exceed age.max (%d)", r.Age.Min, r.Age.Max)
	}
	if r.GraduationYear.Min > r.GraduationYear.Max {
		add("graduation_year.min (%d) must not exceed graduation_year.max (%d)",
			r.GraduationYear.Min, r.GraduationYear.Max)
	}
	if r.Score.CGPAScale <= 0 {
		add("score.cgpa_scale must be positive, got %g", r.Score.CGPAScale)
	}
	if r.Score.CGPAMin > r.Score.CGPAScale {
		add("score.cgpa_min (%g) must not exceed score.cgpa_scale (%g)", r.Score.CGPAMin, r.Score.CGPAScale)
	}
	if r.Score.PercentageMin < 0 || r.Score.PercentageMin > 100 {
		add("score.percentage_min must be within [0, 100], got %g", r.Score.PercentageMin)
	}
	if r.Screening.Max <= 0 {
		add("screening.max must be positive, got %g", r.Screening.Max)
	}
	if r.Screening.Min > r.Screening.Max {
		add("screening.min (%g) must not exceed screening.max (%g)", r.Screening.Min, r.Screening.Max)
	}
	if r.Rationale.MinLength < 0 {
		add("rationale.min_length must not be negative, got %d", r.Rationale.MinLength)
	}
	if len(r.Rationale.Keywords) == 0 {
		add("rationale.keywords must list at least one keyword")
	}
	if r.Review.MaxWaiversBeforeFlag < 0 {
		add("review.max_waivers_before_flag must not be negative, got %d", r.Review.MaxWaiversBeforeFlag)
	}

	return errors.Join(errs...)
}
