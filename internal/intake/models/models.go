package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission is the canonical validated student record. It is constructed
// only by the validator and never mutated afterwards.
type Submission struct {
	Name       string
	Department string
	Email      string
	Phone      string
	Interest   string
	ShortGoal  string
	LongGoal   string
}

// RawFields carries unvalidated form input. It is echoed back to the
// collection form after a rejection so the user can correct it.
type RawFields struct {
	Name       string
	Department string
	Email      string
	Phone      string
	Interest   string
	ShortGoal  string
	LongGoal   string
}

// Raw converts a validated submission back to form fields for re-editing.
func (s *Submission) Raw() RawFields {
	return RawFields{
		Name:       s.Name,
		Department: s.Department,
		Email:      s.Email,
		Phone:      s.Phone,
		Interest:   s.Interest,
		ShortGoal:  s.ShortGoal,
		LongGoal:   s.LongGoal,
	}
}

// SessionState is the per-browser-session scratch storage. CSRFToken is
// single-use and reminted before every render; Pending holds the record
// awaiting confirmation; Echo holds rejected raw input for re-display.
type SessionState struct {
	ID        uuid.UUID
	CSRFToken string
	Pending   *Submission
	Echo      *RawFields
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its lifetime at the given instant.
func (s *SessionState) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// departments is the closed set of accepted department values.
// Membership is case-sensitive.
var departments = []string{
	"BCA", "BSc CS", "BSc IT", "MCA", "MSc CS", "ECE", "EEE", "CSE", "AIML", "Data Science",
}

// Departments returns the accepted department values in display order.
func Departments() []string {
	out := make([]string, len(departments))
	copy(out, departments)
	return out
}

// IsDepartment reports whether value is a member of the fixed department set.
func IsDepartment(value string) bool {
	for _, d := range departments {
		if d == value {
			return true
		}
	}
	return false
}
