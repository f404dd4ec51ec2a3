// Package validate turns raw form input into a normalized Submission or a
// single deterministic rejection reason.
package validate

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Malar-R/friendly-octo-memory/internal/intake/models"
)

// HoneypotField is the form field invisible to humans. Any value in it means
// the submission came from a bot.
const HoneypotField = "website"

var (
	spaceRun    = regexp.MustCompile(`\s+`)
	nonDigit    = regexp.MustCompile(`\D`)
	namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]{1,49}$`)
	// Structural shape only: local@domain.tld with no spaces or second @.
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)
)

// Error describes a rejected submission: the failing field and the
// human-readable reason surfaced to the user. Only the first violated rule
// is ever reported.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string { return e.Reason }

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return models.IsDepartment(fl.Field().String())
	})
	_ = v.RegisterValidation("simpleemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// rules mirrors Submission with validation tags. Field order fixes the
// first-failure order, which keeps rejection messages deterministic.
type rules struct {
	Name       string `validate:"fullname"`
	Department string `validate:"department"`
	Email      string `validate:"simpleemail"`
	Phone      string `validate:"phonedigits"`
	Interest   string `validate:"min=3,max=300"`
	ShortGoal  string `validate:"min=3,max=600"`
	LongGoal   string `validate:"min=3,max=800"`
}

// Payload validates raw form fields and returns a fully normalized
// Submission, or the first violated rule as a *Error. A non-empty honeypot
// short-circuits everything else. Pure function; no side effects.
func Payload(raw models.RawFields, honeypot string) (*models.Submission, error) {
	if honeypot != "" {
		return nil, &Error{Field: HoneypotField, Reason: "Bot detected."}
	}

	normalized := rules{
		Name:       CleanText(raw.Name),
		Department: CleanText(raw.Department),
		Email:      CleanText(raw.Email),
		Phone:      DigitsOnly(raw.Phone),
		Interest:   CleanText(raw.Interest),
		ShortGoal:  CleanText(raw.ShortGoal),
		LongGoal:   CleanText(raw.LongGoal),
	}

	if err := defaultValidator.Struct(normalized); err != nil {
		return nil, reason(err)
	}

	return &models.Submission{
		Name:       normalized.Name,
		Department: normalized.Department,
		Email:      normalized.Email,
		Phone:      normalized.Phone,
		Interest:   normalized.Interest,
		ShortGoal:  normalized.ShortGoal,
		LongGoal:   normalized.LongGoal,
	}, nil
}

// reason converts a validator error into the first violated rule's message.
func reason(err error) *Error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return &Error{Field: "form", Reason: "Invalid submission."}
	}

	switch validationErrs[0].StructField() {
	case "Name":
		return &Error{Field: "name", Reason: "Please enter a valid full name."}
	case "Department":
		return &Error{Field: "department", Reason: "Please select a valid department."}
	case "Email":
		return &Error{Field: "email", Reason: "Please enter a valid email address."}
	case "Phone":
		return &Error{Field: "phone", Reason: "Phone must be 10-15 digits."}
	case "Interest":
		return &Error{Field: "interest", Reason: "Area of interest must be between 3 and 300 characters."}
	case "ShortGoal":
		return &Error{Field: "short_goal", Reason: "Short-term goal must be between 3 and 600 characters."}
	case "LongGoal":
		return &Error{Field: "long_goal", Reason: "Long-term goal must be between 3 and 800 characters."}
	default:
		return &Error{Field: "form", Reason: "Invalid submission."}
	}
}

// CleanText collapses consecutive whitespace to a single space and trims the
// result. Applying it twice yields the same value as once.
func CleanText(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// DigitsOnly strips every non-digit character.
func DigitsOnly(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}
