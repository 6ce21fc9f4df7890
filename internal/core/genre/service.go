// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	stdcontext "context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/kmdb/internal/platform/apperr"
	"github.com/taibuivan/kmdb/internal/platform/dberr"
	"github.com/taibuivan/kmdb/internal/platform/events"
)

// Service is the genre rules engine. Duplicate names are detected ignoring
// case, and a forced delete detaches the genre from every movie first.
type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService constructs the genre [Service].
func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

/*
List returns every genre in id order.

Parameters:
  - context: context.Context

Returns:
  - []Genre: All stored genres
  - error: NotFound when the catalog has no genres, or storage failures
*/
func (service *Service) List(context context.Context) ([]Genre, error) {
	genres, err := service.repo.ListGenres(context)
	if err != nil {
		return nil, err
	}
	if len(genres) == 0 {
		return nil, apperr.NotFoundf("No genres found in the database")
	}
	return genres, nil
}

/*
Get retrieves a single genre.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *Genre: The stored genre
  - error: NotFound or storage failures
*/
func (service *Service) Get(context context.Context, id int) (*Genre, error) {
	return service.get(context, service.repo, id)
}

func (service *Service) get(context context.Context, repo Repository, id int) (*Genre, error) {
	genre, err := repo.GetGenre(context, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.NotFoundf("Genre with ID %d not found", id)
	}
	return genre, err
}

/*
SearchByName matches a case-insensitive substring of the name.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - []Genre: Matching genres
  - error: NotFound when nothing matches
*/
func (service *Service) SearchByName(context context.Context, name string) ([]Genre, error) {
	genres, err := service.repo.SearchGenres(context, name)
	if err != nil {
		return nil, err
	}
	if len(genres) == 0 {
		return nil, apperr.NotFoundf("No genres found with name containing: %s", name)
	}
	return genres, nil
}

/*
Create stores a new genre unless one with the same name, ignoring case, exists.

Parameters:
  - context: context.Context
  - draft: Draft

Returns:
  - *CreateResult: Assigned id and confirmation message
  - error: Conflict on a duplicate name, or storage failures
*/
func (service *Service) Create(context context.Context, draft Draft) (*CreateResult, error) {
	genre := &Genre{Name: draft.Name}

	err := service.repo.WithinTransaction(context, func(ctx stdcontext.Context, repo Repository) error {
		exists, err := repo.ExistsByName(ctx, genre.Name)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict(fmt.Sprintf("Genre '%s' already exists", genre.Name))
		}
		return repo.CreateGenre(ctx, genre)
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "genre_created", slog.Int("genre_id", genre.ID), slog.String("name", genre.Name))
	events.Emit(context, service.publisher, events.New(context, events.GenreCreated, genre.ID, genre))

	return &CreateResult{
		ID:      genre.ID,
		Message: fmt.Sprintf("Genre '%s' added successfully", genre.Name),
	}, nil
}

/*
Delete removes a genre. With force the genre is first detached from every
movie, in the same transaction as the delete.

Parameters:
  - context: context.Context
  - id: int
  - force: bool

Returns:
  - error: NotFound, InvalidState while referenced and not forced, or storage failures
*/
func (service *Service) Delete(context context.Context, id int, force bool) error {
	var detached int

	err := service.repo.WithinTransaction(context, func(ctx stdcontext.Context, repo Repository) error {
		if _, err := service.get(ctx, repo, id); err != nil {
			return err
		}

		movieIDs, err := repo.ListMovieIDs(ctx, id)
		if err != nil {
			return err
		}

		if len(movieIDs) > 0 && !force {
			return apperr.InvalidState("Cannot delete genre with associated movies. Use force=true to override.")
		}

		for _, movieID := range movieIDs {
			if err := repo.DetachFromMovie(ctx, movieID, id); err != nil {
				return err
			}
		}
		detached = len(movieIDs)

		return repo.DeleteGenre(ctx, id)
	})
	if err != nil {
		return err
	}

	service.logger.WarnContext(context, "genre_deleted",
		slog.Int("genre_id", id),
		slog.Bool("force", force),
		slog.Int("detached_movies", detached),
	)
	events.Emit(context, service.publisher, events.New(context, events.GenreDeleted, id, nil))
	return nil
}
