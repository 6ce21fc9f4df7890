// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package actor

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/kmdb/internal/platform/request"
	"github.com/taibuivan/kmdb/internal/platform/respond"
	"github.com/taibuivan/kmdb/pkg/pagination"
)

// Handler serves the /actors routes over a [Service].
type Handler struct {
	service *Service
}

// NewHandler constructs the actor [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
RegisterRoutes mounts the actors endpoints on router:

	GET    /                 list (?count, ?page&size)
	GET    /search?name=     search by name
	GET    /{id}             one actor
	GET    /{id}/movies      movies of the actor
	POST   /                 create
	PATCH  /{id}             partial update
	DELETE /{id}?force=      delete
*/
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listActors)
	router.Get("/search", handler.searchActors)
	router.Get("/{id}", handler.getActor)
	router.Get("/{id}/movies", handler.listActorMovies)

	router.Post("/", handler.createActor)
	router.Patch("/{id}", handler.updateActor)
	router.Delete("/{id}", handler.deleteActor)
}

// listActors serves ?count, then ?page/?size, then the full list.
func (handler *Handler) listActors(writer http.ResponseWriter, request *http.Request) {
	if requestutil.Has(request, "count") {
		message, err := handler.service.Count(request.Context())
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, message)
		return
	}

	if requestutil.Has(request, "page") || requestutil.Has(request, "size") {
		params, err := requestutil.Page(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		actors, total, err := handler.service.ListPage(request.Context(), params)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Paginated(writer, actors, pagination.NewMeta(params.Page, params.Size, total))
		return
	}

	actors, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, actors)
}

func (handler *Handler) searchActors(writer http.ResponseWriter, request *http.Request) {
	actors, err := handler.service.FindByName(request.Context(), requestutil.Query(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, actors)
}

func (handler *Handler) getActor(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.PositiveID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := handler.service.Get(request.Context(), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, actor)
}

func (handler *Handler) listActorMovies(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.PositiveID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movies, err := handler.service.ListMovies(request.Context(), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, movies)
}

func (handler *Handler) createActor(writer http.ResponseWriter, request *http.Request) {
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

func (handler *Handler) updateActor(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.PositiveID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Patch
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.Validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), actorID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteActor(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.PositiveID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	force, err := requestutil.QueryBool(request, "force", false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), actorID, force); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
