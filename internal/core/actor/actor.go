// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package actor

import "github.com/taibuivan/kmdb/internal/platform/validate"

// Actor is a performer that movies can be associated with.
type Actor struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	BirthDate *string `json:"birth_date"`
}

// Draft is the caller-provided data for a new actor.
type Draft struct {
	Name      string  `json:"name" validate:"notblank,max=255"`
	BirthDate *string `json:"birth_date" validate:"omitempty,birthdate"`
}

// Patch carries a partial update. A nil field is absent.
//
// A present but empty Name leaves the name unchanged. A present but empty
// BirthDate clears the stored date.
type Patch struct {
	Name      *string `json:"name"`
	BirthDate *string `json:"birth_date"`
}

// Validate checks the fields that are present.
func (patch Patch) Validate() error {
	v := &validate.Validator{}

	if patch.Name != nil {
		v.MaxLen(FieldName, *patch.Name, 255)
	}
	if patch.BirthDate != nil && *patch.BirthDate != "" {
		v.BirthDate(FieldBirthDate, *patch.BirthDate)
	}

	return v.Err()
}

// MovieRef is a movie seen from the actor side of the association.
type MovieRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// CreateResult is returned by [Service.Create].
type CreateResult struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

// Global field names for validation
const (
	FieldName      = "name"
	FieldBirthDate = "birth_date"
)
