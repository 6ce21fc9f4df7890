// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/kmdb/internal/platform/request"
	"github.com/taibuivan/kmdb/internal/platform/respond"
	"github.com/taibuivan/kmdb/internal/platform/validate"
)

// Handler serves the /genres routes over a [Service].
type Handler struct {
	service *Service
}

// NewHandler constructs the genre [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
RegisterRoutes mounts the genres endpoints on router:

	GET    /                 list
	GET    /search?name=     search by name
	GET    /{id}             one genre
	POST   /                 create
	DELETE /{id}?force=      delete
*/
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listGenres)
	router.Get("/search", handler.searchGenres)
	router.Get("/{id}", handler.getGenre)

	router.Post("/", handler.createGenre)
	router.Delete("/{id}", handler.deleteGenre)
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

func (handler *Handler) searchGenres(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Query(request, "name")
	if name == "" {
		respond.Error(writer, request, validate.RequiredError(FieldName, "This field is required"))
		return
	}

	genres, err := handler.service.SearchByName(request.Context(), name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := requestutil.PositiveID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.Get(request.Context(), genreID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input Draft
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, result)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := requestutil.PositiveID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	force, err := requestutil.QueryBool(request, "force", false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), genreID, force); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
