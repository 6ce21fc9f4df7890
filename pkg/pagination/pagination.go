// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Pages are zero-indexed. It standardizes how page-based navigation is
// described and how the resulting metadata is delivered in the API response envelope.
package pagination

import "math"

const (
	// DefaultSize is the number of items per page if not specified.
	DefaultSize = 10
	// MinSize is the smallest accepted page size.
	MinSize = 1
	// MaxSize is the upper bound for items per page to prevent system abuse.
	MaxSize = 100
	// DefaultPage is the starting page (0-indexed).
	DefaultPage = 0
)

// Params holds the page index and page size of a list request.
type Params struct {
	Page int
	Size int
}

// Default returns the parameters used when a request carries none.
func Default() Params {
	return Params{Page: DefaultPage, Size: DefaultSize}
}

// MaxPage is the largest page index whose offset fits in an int.
func MaxPage(size int) int {
	if size <= 0 {
		return 0
	}
	return math.MaxInt / size
}

// Valid reports whether page >= 0, size is within [MinSize, MaxSize] and the
// page offset does not overflow.
func (p Params) Valid() bool {
	return p.Page >= 0 && p.Size >= MinSize && p.Size <= MaxSize && p.Page <= MaxPage(p.Size)
}

// Offset returns the SQL OFFSET value derived from [Page] and [Size]. It
// saturates at math.MaxInt instead of overflowing.
func (p Params) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > MaxPage(p.Size) {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Limit returns the SQL LIMIT value.
func (p Params) Limit() int {
	return p.Size
}

// Window returns the [start, end) bounds of the page inside a collection of
// total elements, clamped to the collection.
func (p Params) Window(total int) (start, end int) {
	start = min(max(p.Offset(), 0), total)
	return start, start + min(max(p.Size, 0), total-start)
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and size.
func NewMeta(page, size, total int) Meta {
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}

	return Meta{
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
	}
}
