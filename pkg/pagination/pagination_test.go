// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kmdb/pkg/pagination"
)

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 0, Size: 10}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 2, Size: 10}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: -1, Size: 10}.Offset())
	assert.Equal(t, math.MaxInt, pagination.Params{Page: 1 << 62, Size: 2}.Offset())
}

func TestParams_Valid(t *testing.T) {
	tests := []struct {
		name   string
		params pagination.Params
		valid  bool
	}{
		{"defaults", pagination.Default(), true},
		{"negative_page", pagination.Params{Page: -1, Size: 10}, false},
		{"zero_size", pagination.Params{Page: 0, Size: 0}, false},
		{"oversized", pagination.Params{Page: 0, Size: 101}, false},
		{"last_valid_page", pagination.Params{Page: pagination.MaxPage(2), Size: 2}, true},
		{"offset_overflow", pagination.Params{Page: 1 << 62, Size: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.params.Valid())
		})
	}
}

func TestParams_Window(t *testing.T) {
	tests := []struct {
		name       string
		params     pagination.Params
		total      int
		start, end int
	}{
		{"first_page", pagination.Params{Page: 0, Size: 2}, 5, 0, 2},
		{"last_partial_page", pagination.Params{Page: 2, Size: 2}, 5, 4, 5},
		{"beyond_end", pagination.Params{Page: 9, Size: 2}, 5, 5, 5},
		{"empty_collection", pagination.Params{Page: 0, Size: 10}, 0, 0, 0},
		{"offset_overflow", pagination.Params{Page: 1 << 62, Size: 2}, 5, 5, 5},
		{"last_valid_page", pagination.Params{Page: pagination.MaxPage(2), Size: 2}, 5, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.params.Window(tt.total)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(1, 10, 25)
	assert.Equal(t, 3, meta.TotalPages)

	assert.Equal(t, 0, pagination.NewMeta(0, 0, 25).TotalPages)
	assert.Equal(t, pagination.Params{Page: 0, Size: 10}, pagination.Default())
}
