// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"

	"github.com/taibuivan/kmdb/internal/platform/dberr"
	"github.com/taibuivan/kmdb/internal/platform/memstore"
)

// MemoryRepository serves genres from a [memstore.DB].
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

func (repository *MemoryRepository) ListGenres(context context.Context) ([]Genre, error) {
	return repository.selectGenres(nil)
}

func (repository *MemoryRepository) GetGenre(context context.Context, id int) (*Genre, error) {
	var genre *Genre
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		row, ok := snapshot.Genres.Get(id)
		if !ok {
			return dberr.ErrNotFound
		}
		genre = &Genre{ID: row.ID, Name: row.Name}
		return nil
	})
	return genre, err
}

func (repository *MemoryRepository) SearchGenres(context context.Context, name string) ([]Genre, error) {
	return repository.selectGenres(func(row memstore.GenreRow) bool {
		return memstore.ContainsFold(row.Name, name)
	})
}

func (repository *MemoryRepository) ExistsByName(context context.Context, name string) (bool, error) {
	genres, err := repository.selectGenres(func(row memstore.GenreRow) bool {
		return memstore.EqualFold(row.Name, name)
	})
	return len(genres) > 0, err
}

func (repository *MemoryRepository) CreateGenre(context context.Context, genre *Genre) error {
	return repository.update(func(snapshot *memstore.Snapshot) error {
		row := snapshot.Genres.Insert(func(id int) memstore.GenreRow {
			return memstore.GenreRow{ID: id, Name: genre.Name}
		})
		genre.ID = row.ID
		return nil
	})
}

func (repository *MemoryRepository) DeleteGenre(context context.Context, id int) error {
	return repository.update(func(snapshot *memstore.Snapshot) error {
		if !snapshot.DeleteGenre(id) {
			return dberr.ErrNotFound
		}
		return nil
	})
}

func (repository *MemoryRepository) ListMovieIDs(context context.Context, genreID int) ([]int, error) {
	var ids []int
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		ids = snapshot.MovieGenres.Movies(genreID)
		return nil
	})
	return ids, err
}

func (repository *MemoryRepository) DetachFromMovie(context context.Context, movieID, genreID int) error {
	return repository.update(func(snapshot *memstore.Snapshot) error {
		snapshot.MovieGenres.Remove(movieID, genreID)
		return nil
	})
}

func (repository *MemoryRepository) selectGenres(keep func(memstore.GenreRow) bool) ([]Genre, error) {
	var genres []Genre
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		for _, row := range snapshot.Genres.Select(keep) {
			genres = append(genres, Genre{ID: row.ID, Name: row.Name})
		}
		return nil
	})
	return genres, err
}
