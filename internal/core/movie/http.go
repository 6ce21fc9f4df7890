// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/kmdb/internal/platform/request"
	"github.com/taibuivan/kmdb/internal/platform/respond"
	"github.com/taibuivan/kmdb/pkg/pagination"
)

// Handler serves the /movies routes over a [Service].
type Handler struct {
	service *Service
}

// NewHandler constructs the movie [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
RegisterRoutes mounts the movies endpoints on router:

	GET    /                          finders or paginated list
	GET    /search/title?title=       search by title
	GET    /{id}                      one movie
	GET    /{id}/actors               actors of the movie
	POST   /                          create
	PATCH  /{id}/assign-actor/{actorId}, /{id}/assign-genre/{genreId}
	PATCH  /{id}/remove-actor/{actorId}, /{id}/remove-genre/{genreId}
	PATCH  /{id}/rate?stars=          rate
	DELETE /{id}                      delete
*/
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listMovies)
	router.Get("/search/title", handler.searchMovies)
	router.Get("/{id}", handler.getMovie)
	router.Get("/{id}/actors", handler.getMovieActors)

	router.Post("/", handler.createMovie)

	router.Patch("/{id}/assign-actor/{actorId}", handler.association("actorId", handler.service.AssignActor))
	router.Patch("/{id}/assign-genre/{genreId}", handler.association("genreId", handler.service.AssignGenre))
	router.Patch("/{id}/remove-actor/{actorId}", handler.association("actorId", handler.service.RemoveActor))
	router.Patch("/{id}/remove-genre/{genreId}", handler.association("genreId", handler.service.RemoveGenre))
	router.Patch("/{id}/rate", handler.rateMovie)
	router.Delete("/{id}", handler.deleteMovie)
}

// listMovies dispatches on the filter present: releaseYear, then actor with
// genre, then actor, then genre. Without filters it serves a page.
func (handler *Handler) listMovies(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	var movies []Movie
	var err error

	switch {
	case requestutil.Has(request, "releaseYear"):
		var year int
		if year, err = requestutil.QueryInt(request, "releaseYear"); err == nil {
			movies, err = handler.service.FindByReleaseYear(ctx, year)
		}

	case requestutil.Has(request, "actor") && requestutil.Has(request, "genre"):
		var actorID, genreID int
		if actorID, err = requestutil.QueryPositiveInt(request, "actor"); err == nil {
			if genreID, err = requestutil.QueryPositiveInt(request, "genre"); err == nil {
				movies, err = handler.service.FindByActorAndGenre(ctx, actorID, genreID)
			}
		}

	case requestutil.Has(request, "actor"):
		var actorID int
		if actorID, err = requestutil.QueryPositiveInt(request, "actor"); err == nil {
			movies, err = handler.service.FindByActor(ctx, actorID)
		}

	case requestutil.Has(request, "genre"):
		var genreID int
		if genreID, err = requestutil.QueryPositiveInt(request, "genre"); err == nil {
			movies, err = handler.service.FindByGenre(ctx, genreID)
		}

	default:
		handler.pageMovies(writer, request)
		return
	}

	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respondMovies(writer, movies)
}

func (handler *Handler) pageMovies(writer http.ResponseWriter, request *http.Request) {
	params, err := requestutil.Page(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movies, total, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, movies, pagination.NewMeta(params.Page, params.Size, total))
}

func (handler *Handler) searchMovies(writer http.ResponseWriter, request *http.Request) {
	movies, err := handler.service.SearchByTitle(request.Context(), requestutil.Query(request, "title"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respondMovies(writer, movies)
}

func (handler *Handler) getMovie(writer http.ResponseWriter, request *http.Request) {
	movieID, err := requestutil.PositiveID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.Get(request.Context(), movieID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, movie)
}

func (handler *Handler) getMovieActors(writer http.ResponseWriter, request *http.Request) {
	movieID, err := requestutil.PositiveID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	actors, err := handler.service.GetActors(request.Context(), movieID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, actors)
}

func (handler *Handler) createMovie(writer http.ResponseWriter, request *http.Request) {
	var input Draft
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, movie)
}

type associationFunc func(context context.Context, movieID, targetID int) (*Movie, error)

// association builds the handler shared by the assign and remove routes.
func (handler *Handler) association(param string, apply associationFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		movieID, err := requestutil.PositiveID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		targetID, err := requestutil.PositiveID(request, param)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		movie, err := apply(request.Context(), movieID, targetID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, movie)
	}
}

func (handler *Handler) rateMovie(writer http.ResponseWriter, request *http.Request) {
	movieID, err := requestutil.PositiveID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stars, err := requestutil.QueryInt(request, FieldStars)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.Rate(request.Context(), movieID, stars)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, movie)
}

func (handler *Handler) deleteMovie(writer http.ResponseWriter, request *http.Request) {
	movieID, err := requestutil.PositiveID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), movieID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// respondMovies answers finder results, using 204 for an empty result.
func respondMovies(writer http.ResponseWriter, movies []Movie) {
	if len(movies) == 0 {
		respond.NoContent(writer)
		return
	}
	respond.OK(writer, movies)
}
