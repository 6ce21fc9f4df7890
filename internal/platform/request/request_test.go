// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kmdb/internal/platform/apperr"
	requestutil "github.com/taibuivan/kmdb/internal/platform/request"
	"github.com/taibuivan/kmdb/pkg/pagination"
)

func withParam(request *http.Request, name, value string) *http.Request {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add(name, value)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
}

func TestPositiveID(t *testing.T) {
	tests := []struct {
		value string
		want  int
		fails bool
	}{
		{"7", 7, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			request := withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", tt.value)
			id, err := requestutil.PositiveID(request, "id")
			if tt.fails {
				assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestPage(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
		fails bool
	}{
		{"defaults", "", pagination.Params{Page: 0, Size: 10}, false},
		{"explicit", "?page=2&size=25", pagination.Params{Page: 2, Size: 25}, false},
		{"max_size", "?size=100", pagination.Params{Page: 0, Size: 100}, false},
		{"negative_page", "?page=-1", pagination.Params{}, true},
		{"zero_size", "?size=0", pagination.Params{}, true},
		{"oversized", "?size=101", pagination.Params{}, true},
		{"not_a_number", "?page=first", pagination.Params{}, true},
		{"offset_overflow", "?page=4611686018427387904&size=2", pagination.Params{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := requestutil.Page(httptest.NewRequest(http.MethodGet, "/movies"+tt.query, nil))
			if tt.fails {
				assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, params)
		})
	}
}

func TestQueryBool(t *testing.T) {
	request := httptest.NewRequest(http.MethodDelete, "/genres/1?force=true", nil)
	force, err := requestutil.QueryBool(request, "force", false)
	require.NoError(t, err)
	assert.True(t, force)

	force, err = requestutil.QueryBool(httptest.NewRequest(http.MethodDelete, "/genres/1", nil), "force", false)
	require.NoError(t, err)
	assert.False(t, force)

	_, err = requestutil.QueryBool(httptest.NewRequest(http.MethodDelete, "/genres/1?force=maybe", nil), "force", false)
	assert.Error(t, err)
}

type genrePayload struct {
	Name string `json:"name" validate:"notblank"`
}

func TestDecodeJSON(t *testing.T) {
	var payload genrePayload
	err := requestutil.DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Drama"}`)), &payload)
	require.NoError(t, err)
	assert.Equal(t, "Drama", payload.Name)

	err = requestutil.DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`)), &payload)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	payload = genrePayload{}
	err = requestutil.DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"  "}`)), &payload)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "name", ae.Details[0].Field)
}
