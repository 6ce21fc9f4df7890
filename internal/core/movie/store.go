// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"

	"github.com/taibuivan/kmdb/internal/core/actor"
	"github.com/taibuivan/kmdb/internal/core/genre"
	"github.com/taibuivan/kmdb/pkg/pagination"
)

// Repository is the movie side of the entity store. Every returned [Movie]
// carries its actor and genre sets.
type Repository interface {
	WithinTransaction(context context.Context, fn func(context context.Context, repository Repository) error) error

	ListMovies(context context.Context, params pagination.Params) ([]Movie, int, error)
	GetMovie(context context.Context, id int) (*Movie, error)

	FindByReleaseYear(context context.Context, year int) ([]Movie, error)
	FindByActor(context context.Context, actorID int) ([]Movie, error)
	FindByGenre(context context.Context, genreID int) ([]Movie, error)
	FindByActorAndGenre(context context.Context, actorID, genreID int) ([]Movie, error)

	// SearchByTitle matches a case-insensitive substring of the title.
	SearchByTitle(context context.Context, title string) ([]Movie, error)

	// GetActor and GetGenre resolve association targets without going through
	// the other engines.
	GetActor(context context.Context, id int) (*actor.Actor, error)
	GetGenre(context context.Context, id int) (*genre.Genre, error)

	// CreateMovie inserts the movie and the join rows of its actor and genre sets.
	CreateMovie(context context.Context, movie *Movie) error

	// AddActor and AddGenre are no-ops when the pair already exists.
	AddActor(context context.Context, movieID, actorID int) error
	AddGenre(context context.Context, movieID, genreID int) error
	RemoveActor(context context.Context, movieID, actorID int) error
	RemoveGenre(context context.Context, movieID, genreID int) error

	SetRating(context context.Context, movieID int, stars Stars) error
	DeleteMovie(context context.Context, id int) error
}
