// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kmdb/internal/platform/apperr"
	"github.com/taibuivan/kmdb/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Alice", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_BirthDate checks the yyyy-MM-dd rule and its plausible ranges.
*/
func TestValidator_BirthDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"valid_1900s", "1975-04-30", true},
		{"valid_2000s", "2001-12-01", true},
		{"century_too_early", "1875-04-30", false},
		{"month_thirteen", "1975-13-01", false},
		{"day_zero", "1975-01-00", false},
		{"day_thirty_two", "1975-01-32", false},
		{"wrong_separator", "1975/01/02", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.BirthDate("birth_date", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "Drama").
		MaxLen("name", "Drama", 10).
		Min("page", 0, 0).
		Range("size", 10, 1, 100).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "").        // Fails
		Min("page", -1, 0).          // Fails
		Range("size", 101, 1, 100).  // Fails
		OneOf("force", "x", "true"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Len(t, ae.Details, 4)
}

type moviePayload struct {
	Title       string  `json:"title" validate:"notblank"`
	ReleaseYear int     `json:"release_year" validate:"gte=0,lte=2300"`
	BirthDate   *string `json:"birth_date" validate:"omitempty,birthdate"`
	Actors      []int   `json:"actors" validate:"required"`
}

/*
TestStruct verifies struct-tag validation and the JSON names in details.
*/
func TestStruct(t *testing.T) {
	valid := "1980-01-01"
	invalid := "80-01-01"

	t.Run("valid_payload", func(t *testing.T) {
		err := validate.Struct(moviePayload{Title: "Test", ReleaseYear: 2020, BirthDate: &valid, Actors: []int{}})
		assert.NoError(t, err)
	})

	t.Run("invalid_payload", func(t *testing.T) {
		err := validate.Struct(moviePayload{Title: "  ", ReleaseYear: 2301, BirthDate: &invalid})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeValidation, ae.Code)

		fields := make([]string, 0, len(ae.Details))
		for _, detail := range ae.Details {
			fields = append(fields, detail.Field)
		}
		assert.ElementsMatch(t, []string{"title", "release_year", "birth_date", "actors"}, fields)
	})
}

/*
TestIsBirthDate_Calendar rejects dates that match the layout but do not exist.
*/
func TestIsBirthDate_Calendar(t *testing.T) {
	assert.True(t, validate.IsBirthDate("2000-02-29"))
	assert.False(t, validate.IsBirthDate("2001-02-29"))
	assert.False(t, validate.IsBirthDate("1980-04-31"))
}
