// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package actor_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kmdb/internal/core/actor"
	"github.com/taibuivan/kmdb/internal/platform/events"
	"github.com/taibuivan/kmdb/internal/platform/memstore"
)

func newRouter(t *testing.T) (http.Handler, *memstore.DB) {
	t.Helper()

	db := memstore.New()
	service := actor.NewService(actor.NewMemoryRepository(db), &events.Recorder{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	router.Route("/actors", actor.NewHandler(service).RegisterRoutes)
	return router, db
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, reader))
	return recorder
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Details []struct {
		Field string `json:"field"`
	} `json:"details"`
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()

	var body envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestHandler_CreateAndGet exercises the create and read routes.
*/
func TestHandler_CreateAndGet(t *testing.T) {
	router, _ := newRouter(t)

	recorder := do(router, http.MethodPost, "/actors", `{"name":"Alice","birth_date":"1980-01-01"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"id":1,"message":"Actor 'Alice' added successfully"}`, string(decode(t, recorder).Data))

	recorder = do(router, http.MethodPost, "/actors", `{"name":"Alice"}`)
	assert.Equal(t, http.StatusConflict, recorder.Code)

	recorder = do(router, http.MethodGet, "/actors/1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"id":1,"name":"Alice","birth_date":"1980-01-01"}`, string(decode(t, recorder).Data))

	recorder = do(router, http.MethodGet, "/actors/2", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Actor with ID 2 does not exist", decode(t, recorder).Error)

	recorder = do(router, http.MethodGet, "/actors?count", "")
	assert.JSONEq(t, `"Actors in database: 1"`, string(decode(t, recorder).Data))

	recorder = do(router, http.MethodGet, "/actors?page=0&size=1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total_pages":1`)

	recorder = do(router, http.MethodGet, "/actors/search?name=ali", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestHandler_Validation covers boundary validation of ids, payloads and paging.
*/
func TestHandler_Validation(t *testing.T) {
	router, _ := newRouter(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		field  string
	}{
		{"blank_name", http.MethodPost, "/actors", `{"name":"   "}`, "name"},
		{"bad_birth_date", http.MethodPost, "/actors", `{"name":"Bob","birth_date":"1980-13-01"}`, "birth_date"},
		{"zero_id", http.MethodGet, "/actors/0", "", "id"},
		{"oversized_page", http.MethodGet, "/actors?page=0&size=500", "", "size"},
		{"page_offset_overflow", http.MethodGet, "/actors?page=4611686018427387904&size=2", "", "page"},
		{"bad_force", http.MethodDelete, "/actors/1?force=perhaps", "", "force"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(router, tt.method, tt.target, tt.body)
			require.Equal(t, http.StatusBadRequest, recorder.Code)

			body := decode(t, recorder)
			assert.Equal(t, "VALIDATION_ERROR", body.Code)
			require.NotEmpty(t, body.Details)
			assert.Equal(t, tt.field, body.Details[0].Field)
		})
	}
}

/*
TestHandler_UpdateAndDelete covers PATCH and the referential delete rules.
*/
func TestHandler_UpdateAndDelete(t *testing.T) {
	router, db := newRouter(t)

	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/actors", `{"name":"Alice"}`).Code)

	recorder := do(router, http.MethodPatch, "/actors/1", `{"birth_date":"1985-05-05"}`)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = do(router, http.MethodPatch, "/actors/1", `{"birth_date":"05-05-1985"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	require.NoError(t, db.Update(func(snapshot *memstore.Snapshot) error {
		movie := snapshot.Movies.Insert(func(id int) memstore.MovieRow { return memstore.MovieRow{ID: id, Title: "Test"} })
		snapshot.MovieActors.Add(movie.ID, 1)
		return nil
	}))

	recorder = do(router, http.MethodGet, "/actors/1/movies", "")
	assert.JSONEq(t, `[{"id":1,"title":"Test"}]`, string(decode(t, recorder).Data))

	recorder = do(router, http.MethodDelete, "/actors/1", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "INVALID_STATE", decode(t, recorder).Code)

	recorder = do(router, http.MethodDelete, "/actors/1?force=true", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = do(router, http.MethodGet, "/actors", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
