// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import "context"

// Repository is the genre side of the entity store.
type Repository interface {
	WithinTransaction(context context.Context, fn func(context context.Context, repository Repository) error) error

	ListGenres(context context.Context) ([]Genre, error)
	GetGenre(context context.Context, id int) (*Genre, error)

	// SearchGenres matches a case-insensitive substring of the name.
	SearchGenres(context context.Context, name string) ([]Genre, error)

	// ExistsByName matches the whole name, ignoring case.
	ExistsByName(context context.Context, name string) (bool, error)

	CreateGenre(context context.Context, genre *Genre) error
	DeleteGenre(context context.Context, id int) error

	// ListMovieIDs returns the ids of the movies referencing the genre.
	ListMovieIDs(context context.Context, genreID int) ([]int, error)

	// DetachFromMovie removes the genre from one movie's genre set.
	DetachFromMovie(context context.Context, movieID, genreID int) error
}
