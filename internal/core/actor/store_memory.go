// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package actor

import (
	"context"

	"github.com/taibuivan/kmdb/internal/platform/dberr"
	"github.com/taibuivan/kmdb/internal/platform/memstore"
	"github.com/taibuivan/kmdb/pkg/pagination"
	"github.com/taibuivan/kmdb/pkg/pointer"
)

// MemoryRepository serves actors from a [memstore.DB].
type MemoryRepository struct {
	db *memstore.DB
	tx *memstore.Snapshot
}

func NewMemoryRepository(db *memstore.DB) *MemoryRepository {
	return &MemoryRepository{db: db}
}

func (repository *MemoryRepository) view(fn func(*memstore.Snapshot) error) error {
	if repository.tx != nil {
		return fn(repository.tx)
	}
	return repository.db.View(fn)
}

func (repository *MemoryRepository) update(fn func(*memstore.Snapshot) error) error {
	if repository.tx != nil {
		return fn(repository.tx)
	}
	return repository.db.Update(fn)
}

func (repository *MemoryRepository) WithinTransaction(context context.Context, fn func(context context.Context, repository Repository) error) error {
	if repository.tx != nil {
		return fn(context, repository)
	}
	return repository.db.Update(func(snapshot *memstore.Snapshot) error {
		return fn(context, &MemoryRepository{db: repository.db, tx: snapshot})
	})
}

func (repository *MemoryRepository) ListActors(context context.Context) ([]Actor, error) {
	var actors []Actor
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		actors = toActors(snapshot.Actors.Select(nil))
		return nil
	})
	return actors, err
}

func (repository *MemoryRepository) ListActorsPage(context context.Context, params pagination.Params) ([]Actor, int, error) {
	var (
		actors []Actor
		total  int
	)
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		rows := snapshot.Actors.Select(nil)
		total = len(rows)

		start, end := params.Window(total)
		actors = toActors(rows[start:end])
		return nil
	})
	return actors, total, err
}

func (repository *MemoryRepository) CountActors(context context.Context) (int, error) {
	var total int
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		total = snapshot.Actors.Len()
		return nil
	})
	return total, err
}

func (repository *MemoryRepository) GetActor(context context.Context, id int) (*Actor, error) {
	var actor *Actor
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		row, ok := snapshot.Actors.Get(id)
		if !ok {
			return dberr.ErrNotFound
		}
		found := toActor(row)
		actor = &found
		return nil
	})
	return actor, err
}

func (repository *MemoryRepository) SearchActors(context context.Context, name string) ([]Actor, error) {
	var actors []Actor
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		actors = toActors(snapshot.Actors.Select(func(row memstore.ActorRow) bool {
			return memstore.ContainsFold(row.Name, name)
		}))
		return nil
	})
	return actors, err
}

func (repository *MemoryRepository) ExistsByName(context context.Context, name string) (bool, error) {
	var exists bool
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		exists = len(snapshot.Actors.Select(func(row memstore.ActorRow) bool { return row.Name == name })) > 0
		return nil
	})
	return exists, err
}

func (repository *MemoryRepository) CreateActor(context context.Context, actor *Actor) error {
	return repository.update(func(snapshot *memstore.Snapshot) error {
		row := snapshot.Actors.Insert(func(id int) memstore.ActorRow {
			return memstore.ActorRow{ID: id, Name: actor.Name, BirthDate: pointer.Clone(actor.BirthDate)}
		})
		actor.ID = row.ID
		return nil
	})
}

func (repository *MemoryRepository) UpdateActor(context context.Context, actor *Actor) error {
	return repository.update(func(snapshot *memstore.Snapshot) error {
		row := memstore.ActorRow{ID: actor.ID, Name: actor.Name, BirthDate: pointer.Clone(actor.BirthDate)}
		if !snapshot.Actors.Put(actor.ID, row) {
			return dberr.ErrNotFound
		}
		return nil
	})
}

func (repository *MemoryRepository) DeleteActor(context context.Context, id int) error {
	return repository.update(func(snapshot *memstore.Snapshot) error {
		if !snapshot.DeleteActor(id) {
			return dberr.ErrNotFound
		}
		return nil
	})
}

func (repository *MemoryRepository) CountMovies(context context.Context, actorID int) (int, error) {
	var total int
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		total = len(snapshot.MovieActors.Movies(actorID))
		return nil
	})
	return total, err
}

func (repository *MemoryRepository) ListMovies(context context.Context, actorID int) ([]MovieRef, error) {
	var movies []MovieRef
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		for _, row := range snapshot.Movies.Lookup(snapshot.MovieActors.Movies(actorID)) {
			movies = append(movies, MovieRef{ID: row.ID, Title: row.Title})
		}
		return nil
	})
	return movies, err
}

func toActor(row memstore.ActorRow) Actor {
	return Actor{ID: row.ID, Name: row.Name, BirthDate: pointer.Clone(row.BirthDate)}
}

func toActors(rows []memstore.ActorRow) []Actor {
	actors := make([]Actor, 0, len(rows))
	for _, row := range rows {
		actors = append(actors, toActor(row))
	}
	return actors
}
