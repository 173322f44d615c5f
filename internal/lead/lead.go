package lead

import (
	"regexp"
	"strings"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/models"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10,11}$`)

// Form is the contact form as submitted. Every field is trimmed before use.
type Form struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Province string `json:"province,omitempty"`
	Campus   string `json:"campus,omitempty"`
	Major    string `json:"major,omitempty"`
	Score    string `json:"score,omitempty"`
}

// FieldError names the form field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f Form) trimmed() Form {
	return Form{
		Name:     strings.TrimSpace(f.Name),
		Phone:    strings.TrimSpace(f.Phone),
		Province: strings.TrimSpace(f.Province),
		Campus:   strings.TrimSpace(f.Campus),
		Major:    strings.TrimSpace(f.Major),
		Score:    strings.TrimSpace(f.Score),
	}
}

// Validate reports every invalid field of the trimmed form.
func (f Form) Validate() []FieldError {
	f = f.trimmed()
	var errs []FieldError

	if f.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}

	switch {
	case f.Phone == "":
		errs = append(errs, FieldError{Field: "phone", Message: "phone is required"})
	case !phonePattern.MatchString(f.Phone):
		errs = append(errs, FieldError{Field: "phone", Message: "phone must be 10-11 digits"})
	}

	return errs
}

func validationError(errs []FieldError) *errors.StandardError {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	stdErr := errors.NewLeadValidationFailedError(strings.Join(msgs, "; "))
	return stdErr.WithMetadata("fields", errs)
}

func (f Form) toLead(id, createdAt string) models.Lead {
	f = f.trimmed()
	return models.Lead{
		ID:        id,
		Name:      f.Name,
		Phone:     f.Phone,
		Province:  f.Province,
		Campus:    f.Campus,
		Major:     f.Major,
		Score:     f.Score,
		CreatedAt: createdAt,
	}
}
