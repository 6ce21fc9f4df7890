// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package actor

import (
	"context"
	stdcontext "context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/kmdb/internal/platform/apperr"
	"github.com/taibuivan/kmdb/internal/platform/dberr"
	"github.com/taibuivan/kmdb/internal/platform/events"
	"github.com/taibuivan/kmdb/pkg/pagination"
	"github.com/taibuivan/kmdb/pkg/pointer"
)

// Service is the actor rules engine: unique names on create, delete blocked
// while referenced unless forced, and partial updates.
type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService constructs the actor [Service]. Committed changes are announced
// through publisher.
func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

/*
List returns every actor in id order.

Parameters:
  - context: context.Context

Returns:
  - []Actor: All stored actors
  - error: NotFound when the catalog has no actors, or storage failures
*/
func (service *Service) List(context context.Context) ([]Actor, error) {
	actors, err := service.repo.ListActors(context)
	if err != nil {
		return nil, err
	}
	if len(actors) == 0 {
		return nil, apperr.NotFoundf("No actors found in the database")
	}
	return actors, nil
}

/*
Count reports the number of stored actors as a sentence ("Actors in database: N").

Parameters:
  - context: context.Context

Returns:
  - string: The sentence
  - error: Storage failures
*/
func (service *Service) Count(context context.Context) (string, error) {
	total, err := service.repo.CountActors(context)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Actors in database: %d", total), nil
}

/*
ListPage returns one page of actors together with the total count.

Parameters:
  - context: context.Context
  - params: pagination.Params (page >= 0, size within [1, 100])

Returns:
  - []Actor: The actors on the page
  - int: Total number of actors
  - error: InvalidArgument for out-of-range params, NotFound for an empty page
*/
func (service *Service) ListPage(context context.Context, params pagination.Params) ([]Actor, int, error) {
	if !params.Valid() {
		return nil, 0, apperr.InvalidArgument(fmt.Sprintf("Page must be >= 0 and size between %d and %d", pagination.MinSize, pagination.MaxSize))
	}

	actors, total, err := service.repo.ListActorsPage(context, params)
	if err != nil {
		return nil, 0, err
	}
	if len(actors) == 0 {
		return nil, 0, apperr.NotFoundf("No actors found on page %d", params.Page)
	}
	return actors, total, nil
}

/*
Get retrieves a single actor.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *Actor: The stored actor
  - error: NotFound ("Actor with ID n does not exist") or storage failures
*/
func (service *Service) Get(context context.Context, id int) (*Actor, error) {
	return service.get(context, service.repo, id)
}

func (service *Service) get(context context.Context, repo Repository, id int) (*Actor, error) {
	actor, err := repo.GetActor(context, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.NotFoundf("Actor with ID %d does not exist", id)
	}
	return actor, err
}

/*
FindByName matches a case-insensitive substring of the name. A blank name
behaves like [Service.List].

Parameters:
  - context: context.Context
  - name: string

Returns:
  - []Actor: Matching actors
  - error: NotFound when nothing matches
*/
func (service *Service) FindByName(context context.Context, name string) ([]Actor, error) {
	if strings.TrimSpace(name) == "" {
		return service.List(context)
	}

	actors, err := service.repo.SearchActors(context, name)
	if err != nil {
		return nil, err
	}
	if len(actors) == 0 {
		return nil, apperr.NotFoundf("Actor with name containing '%s' does not exist", name)
	}
	return actors, nil
}

/*
ListMovies returns the movies an actor appears in.

Parameters:
  - context: context.Context
  - id: int (actor id)

Returns:
  - []MovieRef: Id and title of each movie
  - error: NotFound for an unknown actor or one without movies
*/
func (service *Service) ListMovies(context context.Context, id int) ([]MovieRef, error) {
	actor, err := service.get(context, service.repo, id)
	if err != nil {
		return nil, err
	}

	movies, err := service.repo.ListMovies(context, id)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, apperr.NotFoundf("No movies found starring actor '%s'", actor.Name)
	}
	return movies, nil
}

/*
Create stores a new actor. Names are unique under exact, case-sensitive
comparison. An empty birth date is stored as absent.

Parameters:
  - context: context.Context
  - draft: Draft

Returns:
  - *CreateResult: Assigned id and confirmation message
  - error: Conflict on a duplicate name, or storage failures
*/
func (service *Service) Create(context context.Context, draft Draft) (*CreateResult, error) {
	actor := &Actor{Name: draft.Name}
	if draft.BirthDate != nil {
		actor.BirthDate = pointer.NonEmpty(*draft.BirthDate)
	}

	err := service.repo.WithinTransaction(context, func(ctx stdcontext.Context, repo Repository) error {
		exists, err := repo.ExistsByName(ctx, actor.Name)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict(fmt.Sprintf("Actor '%s' already exists", actor.Name))
		}
		return repo.CreateActor(ctx, actor)
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "actor_created", slog.Int("actor_id", actor.ID), slog.String("name", actor.Name))
	events.Emit(context, service.publisher, events.New(context, events.ActorCreated, actor.ID, actor))

	return &CreateResult{
		ID:      actor.ID,
		Message: fmt.Sprintf("Actor '%s' added successfully", actor.Name),
	}, nil
}

/*
Delete removes an actor and, when forced, its movie associations.

Parameters:
  - context: context.Context
  - id: int
  - force: bool (ignore existing movie associations)

Returns:
  - error: NotFound, InvalidState while referenced and not forced, or storage failures
*/
func (service *Service) Delete(context context.Context, id int, force bool) error {
	err := service.repo.WithinTransaction(context, func(ctx stdcontext.Context, repo Repository) error {
		actor, err := service.get(ctx, repo, id)
		if err != nil {
			return err
		}

		if !force {
			movies, err := repo.CountMovies(ctx, id)
			if err != nil {
				return err
			}
			if movies > 0 {
				return apperr.InvalidState(fmt.Sprintf(
					"Cannot delete actor '%s' because they are associated with %d movie(s)", actor.Name, movies,
				))
			}
		}

		return repo.DeleteActor(ctx, id)
	})
	if err != nil {
		return err
	}

	service.logger.WarnContext(context, "actor_deleted", slog.Int("actor_id", id), slog.Bool("force", force))
	events.Emit(context, service.publisher, events.New(context, events.ActorDeleted, id, nil))
	return nil
}

/*
Update applies a partial update. Absent fields and an empty name are left
unchanged; an empty birth date clears the stored one.

Parameters:
  - context: context.Context
  - id: int
  - patch: Patch

Returns:
  - error: NotFound or storage failures
*/
func (service *Service) Update(context context.Context, id int, patch Patch) error {
	var updated *Actor

	err := service.repo.WithinTransaction(context, func(ctx stdcontext.Context, repo Repository) error {
		actor, err := service.get(ctx, repo, id)
		if err != nil {
			return err
		}

		if patch.Name != nil && *patch.Name != "" {
			actor.Name = *patch.Name
		}
		if patch.BirthDate != nil {
			actor.BirthDate = pointer.NonEmpty(*patch.BirthDate)
		}

		updated = actor
		return repo.UpdateActor(ctx, actor)
	})
	if err != nil {
		return err
	}

	service.logger.InfoContext(context, "actor_updated", slog.Int("actor_id", id))
	events.Emit(context, service.publisher, events.New(context, events.ActorUpdated, id, updated))
	return nil
}
