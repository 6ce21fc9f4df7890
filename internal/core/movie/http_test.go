// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kmdb/internal/core/movie"
)

func TestHandler(t *testing.T) {
	catalog := newCatalog(t)
	alice := catalog.actor(t, "Alice")
	drama := catalog.genre(t, "Drama")
	require.Equal(t, 1, alice)
	require.Equal(t, 1, drama)

	router := chi.NewRouter()
	router.Route("/movies", movie.NewHandler(catalog.movies).RegisterRoutes)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))
		return recorder
	}

	recorder := do(http.MethodPost, "/movies", `{"title":"Test","release_year":2020,"duration":100,"actors":[1],"genres":[1]}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"data":{
		"id":1,"title":"Test","release_year":2020,"duration":100,
		"actors":[{"id":1,"name":"Alice","birth_date":null}],
		"genres":[{"id":1,"name":"Drama"}],
		"rating":"☆☆☆☆☆"
	}}`, recorder.Body.String())

	recorder = do(http.MethodPatch, "/movies/1/rate?stars=4", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"rating":"★★★★☆"`)

	recorder = do(http.MethodPatch, "/movies/1/remove-genre/1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"genres":[]`)

	recorder = do(http.MethodGet, "/movies/1/actors", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":[{"id":1,"name":"Alice","birth_date":null}]}`, recorder.Body.String())

	recorder = do(http.MethodGet, "/movies?page=0&size=5", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":1`)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"get", http.MethodGet, "/movies/1", "", http.StatusOK},
		{"get_unknown", http.MethodGet, "/movies/7", "", http.StatusNotFound},
		{"get_bad_id", http.MethodGet, "/movies/abc", "", http.StatusBadRequest},
		{"by_year", http.MethodGet, "/movies?releaseYear=2020", "", http.StatusOK},
		{"by_year_empty", http.MethodGet, "/movies?releaseYear=1999", "", http.StatusNoContent},
		{"by_year_not_int", http.MethodGet, "/movies?releaseYear=soon", "", http.StatusBadRequest},
		{"by_actor", http.MethodGet, "/movies?actor=1", "", http.StatusOK},
		{"by_actor_unknown", http.MethodGet, "/movies?actor=9", "", http.StatusNotFound},
		{"by_genre_empty", http.MethodGet, "/movies?genre=1", "", http.StatusNoContent},
		{"by_actor_and_genre_empty", http.MethodGet, "/movies?actor=1&genre=1", "", http.StatusNoContent},
		{"search_title", http.MethodGet, "/movies/search/title?title=te", "", http.StatusOK},
		{"search_title_empty", http.MethodGet, "/movies/search/title?title=zzz", "", http.StatusNoContent},
		{"page_size_out_of_range", http.MethodGet, "/movies?size=101", "", http.StatusBadRequest},
		{"page_offset_overflow", http.MethodGet, "/movies?page=4611686018427387904&size=2", "", http.StatusBadRequest},
		{"rate_zero", http.MethodPatch, "/movies/1/rate?stars=0", "", http.StatusBadRequest},
		{"rate_missing", http.MethodPatch, "/movies/1/rate", "", http.StatusBadRequest},
		{"remove_non_member", http.MethodPatch, "/movies/1/remove-genre/1", "", http.StatusNotFound},
		{"assign_unknown_actor", http.MethodPatch, "/movies/1/assign-actor/5", "", http.StatusNotFound},
		{"assign_genre", http.MethodPatch, "/movies/1/assign-genre/1", "", http.StatusOK},
		{"create_blank_title", http.MethodPost, "/movies", `{"title":" ","actors":[],"genres":[]}`, http.StatusBadRequest},
		{"create_year_out_of_range", http.MethodPost, "/movies", `{"title":"Future","release_year":2301,"actors":[],"genres":[]}`, http.StatusBadRequest},
		{"create_missing_lists", http.MethodPost, "/movies", `{"title":"Bare","release_year":2000}`, http.StatusBadRequest},
		{"create_unknown_genre", http.MethodPost, "/movies", `{"title":"Other","actors":[1],"genres":[3]}`, http.StatusNotFound},
		{"delete", http.MethodDelete, "/movies/1", "", http.StatusNoContent},
		{"delete_again", http.MethodDelete, "/movies/1", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
		})
	}
}
