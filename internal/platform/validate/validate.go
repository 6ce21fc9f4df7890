// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate checks request input at the HTTP boundary so the rules
engines only see well-formed values.

Two styles are offered. [Struct] evaluates `validate` tags on a decoded body.
[Validator] is a chain for query parameters and partial updates:

	err := (&validate.Validator{}).
		Min("page", page, 0).
		Range("size", size, 1, 100).
		Err()

Both report failures as a single VALIDATION_ERROR with one detail per field.
*/
package validate

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taibuivan/kmdb/internal/platform/apperr"
)

const (
	birthDateLayout = time.DateOnly
	minBirthYear    = 1900
	maxBirthYear    = 2099

	msgFailed    = "Validation failed"
	msgRequired  = "This field is required"
	msgBirthDate = "Please enter a valid date in yyyy-MM-dd format"
)

// ErrInvalidJSON is returned for an undecodable request body.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates field failures. The zero value is ready to use; it
// is not safe for concurrent use.
type Validator struct {
	details []apperr.FieldError
}

func (v *Validator) fail(field, message string) *Validator {
	v.details = append(v.details, apperr.FieldError{Field: field, Message: message})
	return v
}

// Custom records message for field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if !failed {
		return v
	}
	return v.fail(field, message)
}

// Required rejects blank strings.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", msgRequired)
}

// MaxLen counts runes, not bytes.
func (v *Validator) MaxLen(field, value string, limit int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > limit, fmt.Sprintf("Maximum %d characters", limit))
}

func (v *Validator) Min(field string, value, lower int) *Validator {
	return v.Custom(field, value < lower, fmt.Sprintf("Must not be less than %d", lower))
}

// Range is inclusive on both ends.
func (v *Validator) Range(field string, value, lower, upper int) *Validator {
	return v.Custom(field, value < lower || value > upper, fmt.Sprintf("Must be between %d and %d", lower, upper))
}

func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	return v.Custom(field, !slices.Contains(allowed, value), "Must be one of: "+strings.Join(allowed, ", "))
}

func (v *Validator) BirthDate(field, value string) *Validator {
	return v.Custom(field, !IsBirthDate(value), msgBirthDate)
}

func (v *Validator) HasErrors() bool { return len(v.details) > 0 }

// Err returns nil when every rule passed.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError(msgFailed, v.details...)
}

// IsBirthDate accepts real yyyy-MM-dd calendar dates in the 1900s and 2000s.
func IsBirthDate(value string) bool {
	date, err := time.Parse(birthDateLayout, value)
	if err != nil {
		return false
	}
	return date.Year() >= minBirthYear && date.Year() <= maxBirthYear
}

// RequiredError builds a VALIDATION_ERROR for a single field.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError(msgFailed, apperr.FieldError{Field: field, Message: message})
}
