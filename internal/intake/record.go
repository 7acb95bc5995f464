// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package intake

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Field names a candidate form field. The string values are the wire keys.
type Field string

const (
	FieldFullName        Field = "full_name"
	FieldEmail           Field = "email"
	FieldPhone           Field = "phone"
	FieldQualification   Field = "highest_qualification"
	FieldInterviewStatus Field = "interview_status"
	FieldAadhaar         Field = "aadhaar"
	FieldOfferLetter     Field = "offer_letter_sent"

	FieldDateOfBirth    Field = "date_of_birth"
	FieldGraduationYear Field = "graduation_year"
	FieldScore          Field = "percentage_cgpa"
	FieldScreeningScore Field = "screening_test_score"

	// FieldScoreType selects how FieldScore is read ("percentage" or "cgpa").
	// It has no validator of its own.
	FieldScoreType Field = "score_type"
)

// StrictFields lists strict-tier fields in form order.
var StrictFields = []Field{
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldQualification,
	FieldInterviewStatus,
	FieldAadhaar,
	FieldOfferLetter,
}

// SoftFields lists soft-tier fields in form order.
var SoftFields = []Field{
	FieldDateOfBirth,
	FieldGraduationYear,
	FieldScore,
	FieldScreeningScore,
}

// IsStrict reports whether f has a strict validator.
func (f Field) IsStrict() bool { return contains(StrictFields, f) }

// IsSoft reports whether f has a soft validator.
func (f Field) IsSoft() bool { return contains(SoftFields, f) }

// Known reports whether f is a field of the intake form.
func (f Field) Known() bool { return isKnown(f) }

func isKnown(f Field) bool {
	return f.IsStrict() || f.IsSoft() || f == FieldScoreType
}

func contains(fields []Field, f Field) bool {
	for _, x := range fields {
		if x == f {
			return true
		}
	}
	return false
}

// Record is a candidate submission as raw text. A key that is absent and a
// key mapped to "" are equivalent. Validators parse values themselves.
type Record map[Field]string

// Get returns the raw value for f, or "".
func (r Record) Get(f Field) string {
	return r[f]
}

// Clone returns an independent copy of r.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Normalized returns the canonical stored form of r: every value trimmed,
// email lowercased, score type defaulted to "percentage".
func (r Record) Normalized() Record {
	n := make(Record, len(r)+1)
	for k, v := range r {
		n[k] = strings.TrimSpace(v)
	}
	n[FieldEmail] = strings.ToLower(n[FieldEmail])
	if n[FieldScoreType] == "" {
		n[FieldScoreType] = ScoreTypePercentage
	}
	return n
}

// RecordFromMap builds a Record from decoded JSON. Numbers and booleans are
// converted to their text form, null is treated as absent, and keys that
// are not candidate fields are ignored.
func RecordFromMap(m map[string]any) Record {
	r := make(Record, len(m))
	for k, v := range m {
		f := Field(k)
		if !isKnown(f) {
			continue
		}
		if s, ok := scalarText(v); ok {
			r[f] = s
		}
	}
	return r
}

func scalarText(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		// Objects and arrays are not meaningful field values. Keep a marker
		// so the field fails format checks instead of reading as missing.
		return fmt.Sprint(x), true
	}
}

// WaiverRequest is the caller's request to excuse one soft-field failure.
type WaiverRequest struct {
	Requested bool   `json:"enabled"`
	Rationale string `json:"rationale"`
}

// Waivers maps soft fields to waiver requests. A missing entry means no
// waiver was requested.
type Waivers map[Field]WaiverRequest

// Submission is the wire shape of an intake request: candidate fields at the
// top level plus an optional "exceptions" object keyed by soft field.
//
//	{"full_name": "Asha Rao", "graduation_year": 2012,
//	 "exceptions": {"graduation_year": {"enabled": true, "rationale": "..."}}}
type Submission struct {
	Record  Record
	Waivers Waivers
}

type wireWaiver struct {
	Enabled   bool   `json:"enabled"`
	Requested bool   `json:"requested"`
	Rationale string `json:"rationale"`
}

// UnmarshalJSON decodes a Submission, keeping numbers exact.
func (s *Submission) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode submission: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("decode submission: body must be a JSON object")
	}

	s.Record = RecordFromMap(raw)
	s.Waivers = Waivers{}

	exc, ok := raw["exceptions"]
	if !ok || exc == nil {
		return nil
	}
	encoded, err := json.Marshal(exc)
	if err != nil {
		return fmt.Errorf("decode exceptions: %w", err)
	}
	var wire map[string]wireWaiver
	if err := json.Unmarshal(encoded, &wire); err != nil {
		return fmt.Errorf("decode exceptions: %w", err)
	}
	for k, w := range wire {
		f := Field(k)
		if !f.IsSoft() {
			continue
		}
		s.Waivers[f] = WaiverRequest{Requested: w.Enabled || w.Requested, Rationale: w.Rationale}
	}
	return nil
}

// EmailSet is a case-insensitive set of registered email addresses.
type EmailSet map[string]struct{}

// NewEmailSet builds a set from emails, ignoring blanks.
func NewEmailSet(emails ...string) EmailSet {
	s := make(EmailSet, len(emails))
	for _, e := range emails {
		s.Add(e)
	}
	return s
}

// Add inserts e in canonical form.
func (s EmailSet) Add(e string) {
	e = strings.ToLower(strings.TrimSpace(e))
	if e != "" {
		s[e] = struct{}{}
	}
}

// Contains reports whether e is registered, ignoring case and surrounding
// whitespace.
func (s EmailSet) Contains(e string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(e))]
	return ok
}

// Without returns a copy of s with e removed. Admin edits use it so a
// record does not collide with its own email.
func (s EmailSet) Without(e string) EmailSet {
	c := make(EmailSet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	delete(c, strings.ToLower(strings.TrimSpace(e)))
	return c
}
