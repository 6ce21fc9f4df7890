// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package actor

import (
	"context"

	"github.com/taibuivan/kmdb/pkg/pagination"
)

// Repository is the actor side of the entity store. Lookups of unknown ids
// return [dberr.ErrNotFound].
type Repository interface {
	// WithinTransaction runs fn with a repository bound to one transaction.
	// Nested calls reuse the open transaction.
	WithinTransaction(context context.Context, fn func(context context.Context, repository Repository) error) error

	ListActors(context context.Context) ([]Actor, error)
	ListActorsPage(context context.Context, params pagination.Params) ([]Actor, int, error)
	CountActors(context context.Context) (int, error)
	GetActor(context context.Context, id int) (*Actor, error)

	// SearchActors matches a case-insensitive substring of the name.
	SearchActors(context context.Context, name string) ([]Actor, error)

	// ExistsByName matches the exact, case-sensitive name.
	ExistsByName(context context.Context, name string) (bool, error)

	CreateActor(context context.Context, actor *Actor) error
	UpdateActor(context context.Context, actor *Actor) error
	DeleteActor(context context.Context, id int) error

	CountMovies(context context.Context, actorID int) (int, error)
	ListMovies(context context.Context, actorID int) ([]MovieRef, error)
}
