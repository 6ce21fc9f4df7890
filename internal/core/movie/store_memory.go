// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"

	"github.com/taibuivan/kmdb/internal/core/actor"
	"github.com/taibuivan/kmdb/internal/core/genre"
	"github.com/taibuivan/kmdb/internal/platform/dberr"
	"github.com/taibuivan/kmdb/internal/platform/memstore"
	"github.com/taibuivan/kmdb/pkg/pagination"
	"github.com/taibuivan/kmdb/pkg/pointer"
)

// MemoryRepository serves movies and their associations from a [memstore.DB].
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

func (repository *MemoryRepository) ListMovies(context context.Context, params pagination.Params) ([]Movie, int, error) {
	var movies []Movie
	var total int
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		ids := snapshot.Movies.IDs()
		total = len(ids)

		start, end := params.Window(total)
		movies = assemble(snapshot, snapshot.Movies.Lookup(ids[start:end]))
		return nil
	})
	return movies, total, err
}

func (repository *MemoryRepository) GetMovie(context context.Context, id int) (*Movie, error) {
	var movie *Movie
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		row, ok := snapshot.Movies.Get(id)
		if !ok {
			return dberr.ErrNotFound
		}
		found := hydrate(snapshot, row)
		movie = &found
		return nil
	})
	return movie, err
}

func (repository *MemoryRepository) FindByReleaseYear(context context.Context, year int) ([]Movie, error) {
	return repository.selectMovies(func(snapshot *memstore.Snapshot, row memstore.MovieRow) bool {
		return row.ReleaseYear == year
	})
}

func (repository *MemoryRepository) FindByActor(context context.Context, actorID int) ([]Movie, error) {
	return repository.selectMovies(func(snapshot *memstore.Snapshot, row memstore.MovieRow) bool {
		return snapshot.MovieActors.Has(row.ID, actorID)
	})
}

func (repository *MemoryRepository) FindByGenre(context context.Context, genreID int) ([]Movie, error) {
	return repository.selectMovies(func(snapshot *memstore.Snapshot, row memstore.MovieRow) bool {
		return snapshot.MovieGenres.Has(row.ID, genreID)
	})
}

func (repository *MemoryRepository) FindByActorAndGenre(context context.Context, actorID, genreID int) ([]Movie, error) {
	return repository.selectMovies(func(snapshot *memstore.Snapshot, row memstore.MovieRow) bool {
		return snapshot.MovieActors.Has(row.ID, actorID) && snapshot.MovieGenres.Has(row.ID, genreID)
	})
}

func (repository *MemoryRepository) SearchByTitle(context context.Context, title string) ([]Movie, error) {
	return repository.selectMovies(func(snapshot *memstore.Snapshot, row memstore.MovieRow) bool {
		return memstore.ContainsFold(row.Title, title)
	})
}

func (repository *MemoryRepository) GetActor(context context.Context, id int) (*actor.Actor, error) {
	var found *actor.Actor
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		row, ok := snapshot.Actors.Get(id)
		if !ok {
			return dberr.ErrNotFound
		}
		found = &actor.Actor{ID: row.ID, Name: row.Name, BirthDate: row.BirthDate}
		return nil
	})
	return found, err
}

func (repository *MemoryRepository) GetGenre(context context.Context, id int) (*genre.Genre, error) {
	var found *genre.Genre
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		row, ok := snapshot.Genres.Get(id)
		if !ok {
			return dberr.ErrNotFound
		}
		found = &genre.Genre{ID: row.ID, Name: row.Name}
		return nil
	})
	return found, err
}

func (repository *MemoryRepository) CreateMovie(context context.Context, movie *Movie) error {
	return repository.update(func(snapshot *memstore.Snapshot) error {
		row := snapshot.Movies.Insert(func(id int) memstore.MovieRow {
			return memstore.MovieRow{
				ID:          id,
				Title:       movie.Title,
				ReleaseYear: movie.ReleaseYear,
				Duration:    movie.Duration,
				StarRating:  int(movie.Rating),
			}
		})
		movie.ID = row.ID

		for _, member := range movie.Actors {
			if !snapshot.Actors.Has(member.ID) {
				return dberr.ErrNotFound
			}
			snapshot.MovieActors.Add(row.ID, member.ID)
		}
		for _, category := range movie.Genres {
			if !snapshot.Genres.Has(category.ID) {
				return dberr.ErrNotFound
			}
			snapshot.MovieGenres.Add(row.ID, category.ID)
		}
		return nil
	})
}

func (repository *MemoryRepository) AddActor(context context.Context, movieID, actorID int) error {
	return repository.update(func(snapshot *memstore.Snapshot) error {
		if !snapshot.Movies.Has(movieID) || !snapshot.Actors.Has(actorID) {
			return dberr.ErrNotFound
		}
		snapshot.MovieActors.Add(movieID, actorID)
		return nil
	})
}

func (repository *MemoryRepository) AddGenre(context context.Context, movieID, genreID int) error {
	return repository.update(func(snapshot *memstore.Snapshot) error {
		if !snapshot.Movies.Has(movieID) || !snapshot.Genres.Has(genreID) {
			return dberr.ErrNotFound
		}
		snapshot.MovieGenres.Add(movieID, genreID)
		return nil
	})
}

func (repository *MemoryRepository) RemoveActor(context context.Context, movieID, actorID int) error {
	return repository.update(func(snapshot *memstore.Snapshot) error {
		if !snapshot.MovieActors.Remove(movieID, actorID) {
			return dberr.ErrNotFound
		}
		return nil
	})
}

func (repository *MemoryRepository) RemoveGenre(context context.Context, movieID, genreID int) error {
	return repository.update(func(snapshot *memstore.Snapshot) error {
		if !snapshot.MovieGenres.Remove(movieID, genreID) {
			return dberr.ErrNotFound
		}
		return nil
	})
}

func (repository *MemoryRepository) SetRating(context context.Context, movieID int, stars Stars) error {
	return repository.update(func(snapshot *memstore.Snapshot) error {
		row, ok := snapshot.Movies.Get(movieID)
		if !ok {
			return dberr.ErrNotFound
		}
		row.StarRating = int(stars)
		snapshot.Movies.Put(movieID, row)
		return nil
	})
}

func (repository *MemoryRepository) DeleteMovie(context context.Context, id int) error {
	return repository.update(func(snapshot *memstore.Snapshot) error {
		if !snapshot.DeleteMovie(id) {
			return dberr.ErrNotFound
		}
		return nil
	})
}

func (repository *MemoryRepository) selectMovies(keep func(*memstore.Snapshot, memstore.MovieRow) bool) ([]Movie, error) {
	var movies []Movie
	err := repository.view(func(snapshot *memstore.Snapshot) error {
		rows := snapshot.Movies.Select(func(row memstore.MovieRow) bool {
			return keep(snapshot, row)
		})
		movies = assemble(snapshot, rows)
		return nil
	})
	return movies, err
}

func assemble(snapshot *memstore.Snapshot, rows []memstore.MovieRow) []Movie {
	movies := make([]Movie, 0, len(rows))
	for _, row := range rows {
		movies = append(movies, hydrate(snapshot, row))
	}
	return movies
}

// hydrate resolves the join sets of row into entities, ordered by id.
func hydrate(snapshot *memstore.Snapshot, row memstore.MovieRow) Movie {
	movie := Movie{
		ID:          row.ID,
		Title:       row.Title,
		ReleaseYear: row.ReleaseYear,
		Duration:    row.Duration,
		Rating:      Stars(row.StarRating),
		Actors:      []actor.Actor{},
		Genres:      []genre.Genre{},
	}

	for _, member := range snapshot.Actors.Lookup(snapshot.MovieActors.Others(row.ID)) {
		movie.Actors = append(movie.Actors, actor.Actor{ID: member.ID, Name: member.Name, BirthDate: pointer.Clone(member.BirthDate)})
	}
	for _, category := range snapshot.Genres.Lookup(snapshot.MovieGenres.Others(row.ID)) {
		movie.Genres = append(movie.Genres, genre.Genre{ID: category.ID, Name: category.Name})
	}
	return movie
}
