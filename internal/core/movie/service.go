// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	stdcontext "context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/taibuivan/kmdb/internal/core/actor"
	"github.com/taibuivan/kmdb/internal/core/genre"
	"github.com/taibuivan/kmdb/internal/platform/apperr"
	"github.com/taibuivan/kmdb/internal/platform/dberr"
	"github.com/taibuivan/kmdb/internal/platform/events"
	"github.com/taibuivan/kmdb/pkg/pagination"
	"github.com/taibuivan/kmdb/pkg/slice"
)

// Service is the movie association engine. It resolves actor and genre ids
// through its own [Repository], keeps both association sets duplicate free
// and bounds the star rating.
type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService constructs the movie [Service].
func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// # Lookups

func (service *Service) get(context context.Context, repo Repository, id int) (*Movie, error) {
	movie, err := repo.GetMovie(context, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.NotFoundf("Movie with ID %d not found", id)
	}
	return movie, err
}

func (service *Service) actor(context context.Context, repo Repository, id int) (*actor.Actor, error) {
	found, err := repo.GetActor(context, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.NotFoundf("Actor with ID %d not found", id)
	}
	return found, err
}

func (service *Service) genre(context context.Context, repo Repository, id int) (*genre.Genre, error) {
	found, err := repo.GetGenre(context, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.NotFoundf("Genre with ID %d not found", id)
	}
	return found, err
}

// # Queries

/*
Get retrieves a movie with its actor and genre sets.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *Movie: The hydrated movie
  - error: NotFound ("Movie with ID n not found") or storage failures
*/
func (service *Service) Get(context context.Context, id int) (*Movie, error) {
	return service.get(context, service.repo, id)
}

// GetActors returns the actor set of a movie, sorted by id.
func (service *Service) GetActors(context context.Context, id int) ([]actor.Actor, error) {
	movie, err := service.get(context, service.repo, id)
	if err != nil {
		return nil, err
	}
	return movie.Actors, nil
}

/*
List returns one page of movies and the total count. An empty page is not an error.

Parameters:
  - context: context.Context
  - params: pagination.Params (page >= 0, size within [1, 100])

Returns:
  - []Movie: The movies on the page, never nil
  - int: Total number of movies
  - error: InvalidArgument for out-of-range params, or storage failures
*/
func (service *Service) List(context context.Context, params pagination.Params) ([]Movie, int, error) {
	if !params.Valid() {
		return nil, 0, apperr.InvalidArgument(fmt.Sprintf("Page must be >= 0 and size between %d and %d", pagination.MinSize, pagination.MaxSize))
	}

	movies, total, err := service.repo.ListMovies(context, params)
	if err != nil {
		return nil, 0, err
	}
	return orEmpty(movies), total, nil
}

// FindByReleaseYear returns the movies released in year. No match is an empty slice.
func (service *Service) FindByReleaseYear(context context.Context, year int) ([]Movie, error) {
	movies, err := service.repo.FindByReleaseYear(context, year)
	return orEmpty(movies), err
}

/*
FindByActor returns the movies the actor appears in.

Parameters:
  - context: context.Context
  - actorID: int

Returns:
  - []Movie: Matching movies, possibly empty
  - error: NotFound only when the actor itself is unknown
*/
func (service *Service) FindByActor(context context.Context, actorID int) ([]Movie, error) {
	if _, err := service.actor(context, service.repo, actorID); err != nil {
		return nil, err
	}

	movies, err := service.repo.FindByActor(context, actorID)
	return orEmpty(movies), err
}

/*
FindByGenre returns the movies carrying the genre.

Parameters:
  - context: context.Context
  - genreID: int

Returns:
  - []Movie: Matching movies, possibly empty
  - error: NotFound only when the genre itself is unknown
*/
func (service *Service) FindByGenre(context context.Context, genreID int) ([]Movie, error) {
	if _, err := service.genre(context, service.repo, genreID); err != nil {
		return nil, err
	}

	movies, err := service.repo.FindByGenre(context, genreID)
	return orEmpty(movies), err
}

// FindByActorAndGenre returns the movies that have both the actor and the genre.
// Either id being unknown is NotFound.
func (service *Service) FindByActorAndGenre(context context.Context, actorID, genreID int) ([]Movie, error) {
	if _, err := service.actor(context, service.repo, actorID); err != nil {
		return nil, err
	}
	if _, err := service.genre(context, service.repo, genreID); err != nil {
		return nil, err
	}

	movies, err := service.repo.FindByActorAndGenre(context, actorID, genreID)
	return orEmpty(movies), err
}

// SearchByTitle matches a case-insensitive substring of the title.
func (service *Service) SearchByTitle(context context.Context, title string) ([]Movie, error) {
	movies, err := service.repo.SearchByTitle(context, title)
	return orEmpty(movies), err
}

// # Mutations

/*
Create resolves every actor id, then every genre id, and stores the movie
with rating 0. Repeated ids are collapsed.

Parameters:
  - context: context.Context
  - draft: Draft

Returns:
  - *Movie: The stored movie with sorted actor and genre sets
  - error: NotFound naming the first unknown id (nothing is stored), or storage failures
*/
func (service *Service) Create(context context.Context, draft Draft) (*Movie, error) {
	movie := &Movie{
		Title:       draft.Title,
		ReleaseYear: draft.ReleaseYear,
		Duration:    draft.Duration,
		Actors:      []actor.Actor{},
		Genres:      []genre.Genre{},
	}

	err := service.repo.WithinTransaction(context, func(ctx stdcontext.Context, repo Repository) error {
		for _, id := range slice.Unique(draft.ActorIDs) {
			found, err := service.actor(ctx, repo, id)
			if err != nil {
				return err
			}
			movie.Actors = append(movie.Actors, *found)
		}
		for _, id := range slice.Unique(draft.GenreIDs) {
			found, err := service.genre(ctx, repo, id)
			if err != nil {
				return err
			}
			movie.Genres = append(movie.Genres, *found)
		}

		return repo.CreateMovie(ctx, movie)
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(movie.Actors, func(a, b actor.Actor) int { return a.ID - b.ID })
	slices.SortFunc(movie.Genres, func(a, b genre.Genre) int { return a.ID - b.ID })

	service.logger.InfoContext(context, "movie_created",
		slog.Int("movie_id", movie.ID),
		slog.String("title", movie.Title),
		slog.Int("actors", len(movie.Actors)),
		slog.Int("genres", len(movie.Genres)),
	)
	events.Emit(context, service.publisher, events.New(context, events.MovieCreated, movie.ID, movie))

	return movie, nil
}

/*
AssignActor adds an actor to the movie. Assigning a current member is a no-op.

Parameters:
  - context: context.Context
  - movieID: int
  - actorID: int

Returns:
  - *Movie: The movie after the change
  - error: NotFound for an unknown movie or actor
*/
func (service *Service) AssignActor(context context.Context, movieID, actorID int) (*Movie, error) {
	return service.associate(context, "movie_actor_assigned", movieID, actorID, func(ctx stdcontext.Context, repo Repository, movie *Movie) error {
		if _, err := service.actor(ctx, repo, actorID); err != nil {
			return err
		}
		return repo.AddActor(ctx, movieID, actorID)
	})
}

// AssignGenre is the genre counterpart of [Service.AssignActor].
func (service *Service) AssignGenre(context context.Context, movieID, genreID int) (*Movie, error) {
	return service.associate(context, "movie_genre_assigned", movieID, genreID, func(ctx stdcontext.Context, repo Repository, movie *Movie) error {
		if _, err := service.genre(ctx, repo, genreID); err != nil {
			return err
		}
		return repo.AddGenre(ctx, movieID, genreID)
	})
}

/*
RemoveActor drops an actor from the movie.

Parameters:
  - context: context.Context
  - movieID: int
  - actorID: int

Returns:
  - *Movie: The movie after the change
  - error: NotFound for an unknown movie or actor, or when the actor is not a member
*/
func (service *Service) RemoveActor(context context.Context, movieID, actorID int) (*Movie, error) {
	return service.associate(context, "movie_actor_removed", movieID, actorID, func(ctx stdcontext.Context, repo Repository, movie *Movie) error {
		if _, err := service.actor(ctx, repo, actorID); err != nil {
			return err
		}
		if !movie.HasActor(actorID) {
			return apperr.NotFoundf("Actor with ID %d is not associated with Movie ID %d", actorID, movieID)
		}
		return repo.RemoveActor(ctx, movieID, actorID)
	})
}

// RemoveGenre is the genre counterpart of [Service.RemoveActor].
func (service *Service) RemoveGenre(context context.Context, movieID, genreID int) (*Movie, error) {
	return service.associate(context, "movie_genre_removed", movieID, genreID, func(ctx stdcontext.Context, repo Repository, movie *Movie) error {
		if _, err := service.genre(ctx, repo, genreID); err != nil {
			return err
		}
		if !movie.HasGenre(genreID) {
			return apperr.NotFoundf("Genre with ID %d is not associated with Movie ID %d", genreID, movieID)
		}
		return repo.RemoveGenre(ctx, movieID, genreID)
	})
}

// associate loads the movie, applies change and reloads it, all in one transaction.
func (service *Service) associate(
	context context.Context,
	event string,
	movieID, targetID int,
	change func(ctx context.Context, repo Repository, movie *Movie) error,
) (*Movie, error) {
	var updated *Movie

	err := service.repo.WithinTransaction(context, func(ctx stdcontext.Context, repo Repository) error {
		movie, err := service.get(ctx, repo, movieID)
		if err != nil {
			return err
		}
		if err := change(ctx, repo, movie); err != nil {
			return err
		}

		updated, err = service.get(ctx, repo, movieID)
		return err
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, event, slog.Int("movie_id", movieID), slog.Int("target_id", targetID))
	events.Emit(context, service.publisher, events.New(context, events.MovieUpdated, movieID, updated))
	return updated, nil
}

/*
Rate sets the star rating. The range is checked before the movie is looked up.

Parameters:
  - context: context.Context
  - id: int
  - stars: int (1 to 5)

Returns:
  - *Movie: The rated movie
  - error: InvalidArgument ("Rating must be between 1 and 5 stars"), NotFound or storage failures
*/
func (service *Service) Rate(context context.Context, id int, stars int) (*Movie, error) {
	if stars < MinStars || stars > MaxStars {
		return nil, apperr.InvalidArgument(fmt.Sprintf("Rating must be between %d and %d stars", MinStars, MaxStars))
	}

	var rated *Movie
	err := service.repo.WithinTransaction(context, func(ctx stdcontext.Context, repo Repository) error {
		movie, err := service.get(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := repo.SetRating(ctx, id, Stars(stars)); err != nil {
			return err
		}

		movie.Rating = Stars(stars)
		rated = movie
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "movie_rated", slog.Int("movie_id", id), slog.Int("stars", stars))
	events.Emit(context, service.publisher, events.New(context, events.MovieRated, id, rated))
	return rated, nil
}

/*
Delete removes the movie and its association rows. Movies are never blocked.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, id int) error {
	err := service.repo.WithinTransaction(context, func(ctx stdcontext.Context, repo Repository) error {
		if _, err := service.get(ctx, repo, id); err != nil {
			return err
		}
		return repo.DeleteMovie(ctx, id)
	})
	if err != nil {
		return err
	}

	service.logger.WarnContext(context, "movie_deleted", slog.Int("movie_id", id))
	events.Emit(context, service.publisher, events.New(context, events.MovieDeleted, id, nil))
	return nil
}

func orEmpty(movies []Movie) []Movie {
	if movies == nil {
		return []Movie{}
	}
	return movies
}
