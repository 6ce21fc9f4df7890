// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

// Genre is a category that movies can be associated with.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Draft is the caller-provided data for a new genre.
type Draft struct {
	Name string `json:"name" validate:"notblank,max=255"`
}

// CreateResult is returned by [Service.Create].
type CreateResult struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

const FieldName = "name"
