// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/kmdb/internal/platform/apperr"
)

// structValidator caches struct metadata and is safe for concurrent use.
var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	instance := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names instead of Go field names.
	instance.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = instance.RegisterValidation("notblank", func(level validator.FieldLevel) bool {
		return strings.TrimSpace(level.Field().String()) != ""
	})
	_ = instance.RegisterValidation("birthdate", func(level validator.FieldLevel) bool {
		return IsBirthDate(level.Field().String())
	})

	return instance
}

// Struct validates a request payload using its `validate` struct tags and
// converts every failure into an [apperr.FieldError].
func Struct(payload any) error {
	err := structValidator.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return apperr.Internal(err)
	}

	details := make([]apperr.FieldError, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		details = append(details, apperr.FieldError{
			Field:   fieldError.Field(),
			Message: messageFor(fieldError),
		})
	}
	return apperr.ValidationError("Validation failed", details...)
}

// messageFor renders a client-facing message for a failed tag.
func messageFor(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required", "notblank":
		return msgRequired
	case "birthdate":
		return msgBirthDate
	case "gte", "min":
		return fmt.Sprintf("Must not be less than %s", fieldError.Param())
	case "lte", "max":
		return fmt.Sprintf("Must not be greater than %s", fieldError.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fieldError.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule", fieldError.Tag())
	}
}
