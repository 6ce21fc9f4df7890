// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kmdb/internal/core/actor"
	"github.com/taibuivan/kmdb/internal/core/genre"
	"github.com/taibuivan/kmdb/internal/core/movie"
	"github.com/taibuivan/kmdb/internal/platform/apperr"
	"github.com/taibuivan/kmdb/internal/platform/events"
	"github.com/taibuivan/kmdb/internal/platform/memstore"
	"github.com/taibuivan/kmdb/pkg/pagination"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type catalog struct {
	actors   *actor.Service
	genres   *genre.Service
	movies   *movie.Service
	recorder *events.Recorder
}

func newCatalog(t *testing.T) *catalog {
	t.Helper()

	db := memstore.New()
	recorder := &events.Recorder{}
	return &catalog{
		actors:   actor.NewService(actor.NewMemoryRepository(db), recorder, discard),
		genres:   genre.NewService(genre.NewMemoryRepository(db), recorder, discard),
		movies:   movie.NewService(movie.NewMemoryRepository(db), recorder, discard),
		recorder: recorder,
	}
}

func (catalog *catalog) actor(t *testing.T, name string) int {
	t.Helper()

	result, err := catalog.actors.Create(context.Background(), actor.Draft{Name: name})
	require.NoError(t, err)
	return result.ID
}

func (catalog *catalog) genre(t *testing.T, name string) int {
	t.Helper()

	result, err := catalog.genres.Create(context.Background(), genre.Draft{Name: name})
	require.NoError(t, err)
	return result.ID
}

func (catalog *catalog) movie(t *testing.T, title string, actorIDs, genreIDs []int) *movie.Movie {
	t.Helper()

	created, err := catalog.movies.Create(context.Background(), movie.Draft{
		Title:       title,
		ReleaseYear: 2020,
		Duration:    100,
		ActorIDs:    actorIDs,
		GenreIDs:    genreIDs,
	})
	require.NoError(t, err)
	return created
}

func actorIDs(subject *movie.Movie) []int {
	ids := make([]int, 0, len(subject.Actors))
	for _, member := range subject.Actors {
		ids = append(ids, member.ID)
	}
	return ids
}

func genreIDs(subject *movie.Movie) []int {
	ids := make([]int, 0, len(subject.Genres))
	for _, category := range subject.Genres {
		ids = append(ids, category.ID)
	}
	return ids
}

/*
TestScenario walks through the canonical catalog flow: create, rate, detach a
genre and delete the now unreferenced genre without force.
*/
func TestScenario(t *testing.T) {
	catalog := newCatalog(t)
	ctx := context.Background()

	alice := catalog.actor(t, "Alice")
	drama := catalog.genre(t, "Drama")
	require.Equal(t, 1, alice)
	require.Equal(t, 1, drama)

	created := catalog.movie(t, "Test", []int{alice}, []int{drama})
	assert.Equal(t, 1, created.ID)
	require.Len(t, created.Actors, 1)
	assert.Equal(t, "Alice", created.Actors[0].Name)
	require.Len(t, created.Genres, 1)
	assert.Equal(t, "Drama", created.Genres[0].Name)
	assert.Equal(t, "☆☆☆☆☆", created.Rating.String())

	rated, err := catalog.movies.Rate(ctx, created.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, "★★★★☆", rated.Rating.String())

	data, err := json.Marshal(rated)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rating":"★★★★☆"`)

	detached, err := catalog.movies.RemoveGenre(ctx, created.ID, drama)
	require.NoError(t, err)
	assert.Empty(t, detached.Genres)

	require.NoError(t, catalog.genres.Delete(ctx, drama, false))

	assert.Equal(t, []string{
		events.ActorCreated, events.GenreCreated, events.MovieCreated,
		events.MovieRated, events.MovieUpdated, events.GenreDeleted,
	}, catalog.recorder.Types())
}

/*
TestService_Create_UnknownReference verifies that an unresolvable id aborts
the whole creation and names the first offending id.
*/
func TestService_Create_UnknownReference(t *testing.T) {
	catalog := newCatalog(t)
	ctx := context.Background()

	alice := catalog.actor(t, "Alice")
	drama := catalog.genre(t, "Drama")

	tests := []struct {
		name    string
		actors  []int
		genres  []int
		message string
	}{
		{"unknown_actor", []int{alice, 99, 98}, []int{drama}, "Actor with ID 99 not found"},
		{"actors_resolved_first", []int{97}, []int{96}, "Actor with ID 97 not found"},
		{"unknown_genre", []int{alice}, []int{drama, 42}, "Genre with ID 42 not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.movies.Create(ctx, movie.Draft{Title: "Broken", ActorIDs: tt.actors, GenreIDs: tt.genres})
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
			assert.Equal(t, tt.message, err.Error())
		})
	}

	movies, total, err := catalog.movies.List(ctx, pagination.Default())
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, movies)

	movies, err = catalog.movies.FindByActor(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, movies)

	created := catalog.movie(t, "Works", []int{alice}, nil)
	assert.Equal(t, 1, created.ID)
}

func TestService_Create_Dedupes(t *testing.T) {
	catalog := newCatalog(t)

	alice := catalog.actor(t, "Alice")
	bob := catalog.actor(t, "Bob")
	drama := catalog.genre(t, "Drama")

	created := catalog.movie(t, "Twice", []int{bob, alice, bob, alice}, []int{drama, drama})
	assert.Equal(t, []int{alice, bob}, actorIDs(created))
	assert.Equal(t, []int{drama}, genreIDs(created))
	assert.Zero(t, int(created.Rating))

	stored, err := catalog.movies.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{alice, bob}, actorIDs(stored))
}

/*
TestService_Associations covers idempotent assignment, the assign/remove round
trip and the membership check on removal.
*/
func TestService_Associations(t *testing.T) {
	catalog := newCatalog(t)
	ctx := context.Background()

	alice := catalog.actor(t, "Alice")
	bob := catalog.actor(t, "Bob")
	drama := catalog.genre(t, "Drama")
	comedy := catalog.genre(t, "Comedy")

	created := catalog.movie(t, "Test", []int{alice}, []int{drama})

	updated, err := catalog.movies.AssignActor(ctx, created.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, []int{alice, bob}, actorIDs(updated))

	again, err := catalog.movies.AssignActor(ctx, created.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, actorIDs(updated), actorIDs(again))

	restored, err := catalog.movies.RemoveActor(ctx, created.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, actorIDs(created), actorIDs(restored))

	_, err = catalog.movies.RemoveActor(ctx, created.ID, bob)
	require.Error(t, err)
	assert.Equal(t, "Actor with ID 2 is not associated with Movie ID 1", err.Error())

	updated, err = catalog.movies.AssignGenre(ctx, created.ID, comedy)
	require.NoError(t, err)
	assert.Equal(t, []int{drama, comedy}, genreIDs(updated))

	_, err = catalog.movies.AssignGenre(ctx, created.ID, comedy)
	require.NoError(t, err)

	restored, err = catalog.movies.RemoveGenre(ctx, created.ID, comedy)
	require.NoError(t, err)
	assert.Equal(t, []int{drama}, genreIDs(restored))

	_, err = catalog.movies.RemoveGenre(ctx, created.ID, comedy)
	assert.Equal(t, "Genre with ID 2 is not associated with Movie ID 1", err.Error())

	tests := []struct {
		name    string
		apply   func() error
		message string
	}{
		{"assign_actor_unknown_movie", func() error { _, err := catalog.movies.AssignActor(ctx, 50, alice); return err }, "Movie with ID 50 not found"},
		{"assign_actor_unknown_actor", func() error { _, err := catalog.movies.AssignActor(ctx, created.ID, 60); return err }, "Actor with ID 60 not found"},
		{"assign_genre_unknown_genre", func() error { _, err := catalog.movies.AssignGenre(ctx, created.ID, 70); return err }, "Genre with ID 70 not found"},
		{"remove_actor_unknown_actor", func() error { _, err := catalog.movies.RemoveActor(ctx, created.ID, 80); return err }, "Actor with ID 80 not found"},
		{"remove_genre_unknown_movie", func() error { _, err := catalog.movies.RemoveGenre(ctx, 90, drama); return err }, "Movie with ID 90 not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.apply()
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

/*
TestService_Rate verifies the [1,5] bound is checked before the movie lookup.
*/
func TestService_Rate(t *testing.T) {
	catalog := newCatalog(t)
	ctx := context.Background()

	created := catalog.movie(t, "Test", nil, nil)

	tests := []struct {
		name  string
		id    int
		stars int
		code  string
	}{
		{"zero_rejected", created.ID, 0, apperr.CodeInvalidArgument},
		{"six_rejected", created.ID, 6, apperr.CodeInvalidArgument},
		{"range_before_lookup", 999, 0, apperr.CodeInvalidArgument},
		{"unknown_movie", 999, 3, apperr.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.movies.Rate(ctx, tt.id, tt.stars)
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, tt.code), err.Error())
		})
	}

	_, err := catalog.movies.Rate(ctx, created.ID, 0)
	assert.Equal(t, "Rating must be between 1 and 5 stars", err.Error())

	for stars := movie.MinStars; stars <= movie.MaxStars; stars++ {
		rated, err := catalog.movies.Rate(ctx, created.ID, stars)
		require.NoError(t, err)
		assert.Equal(t, movie.Stars(stars), rated.Rating)
	}

	stored, err := catalog.movies.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, movie.Stars(movie.MaxStars), stored.Rating)
}

/*
TestService_Delete verifies movies are never blocked and that deleting one
releases its actors and genres.
*/
func TestService_Delete(t *testing.T) {
	catalog := newCatalog(t)
	ctx := context.Background()

	alice := catalog.actor(t, "Alice")
	drama := catalog.genre(t, "Drama")
	created := catalog.movie(t, "Test", []int{alice}, []int{drama})

	err := catalog.actors.Delete(ctx, alice, false)
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidState))

	require.NoError(t, catalog.movies.Delete(ctx, created.ID))

	_, err = catalog.movies.Get(ctx, created.ID)
	assert.Equal(t, "Movie with ID 1 not found", err.Error())

	err = catalog.movies.Delete(ctx, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	require.NoError(t, catalog.actors.Delete(ctx, alice, false))
	require.NoError(t, catalog.genres.Delete(ctx, drama, false))
}

/*
TestService_ForceDeleteGenre verifies the genre disappears from every movie
that referenced it.
*/
func TestService_ForceDeleteGenre(t *testing.T) {
	catalog := newCatalog(t)
	ctx := context.Background()

	drama := catalog.genre(t, "Drama")
	comedy := catalog.genre(t, "Comedy")
	first := catalog.movie(t, "First", nil, []int{drama, comedy})
	second := catalog.movie(t, "Second", nil, []int{drama})

	require.Error(t, catalog.genres.Delete(ctx, drama, false))

	stored, err := catalog.movies.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{drama, comedy}, genreIDs(stored))

	require.NoError(t, catalog.genres.Delete(ctx, drama, true))

	stored, err = catalog.movies.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{comedy}, genreIDs(stored))

	stored, err = catalog.movies.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Genres)
}

func TestService_Finders(t *testing.T) {
	catalog := newCatalog(t)
	ctx := context.Background()

	alice := catalog.actor(t, "Alice")
	bob := catalog.actor(t, "Bob")
	drama := catalog.genre(t, "Drama")
	comedy := catalog.genre(t, "Comedy")

	first := catalog.movie(t, "The First Film", []int{alice}, []int{drama})
	second := catalog.movie(t, "Second film", []int{alice, bob}, []int{comedy})

	_, err := catalog.movies.Create(ctx, movie.Draft{Title: "Old", ReleaseYear: 1950, ActorIDs: []int{}, GenreIDs: []int{}})
	require.NoError(t, err)

	ids := func(movies []movie.Movie) []int {
		out := make([]int, 0, len(movies))
		for _, found := range movies {
			out = append(out, found.ID)
		}
		return out
	}

	movies, err := catalog.movies.FindByReleaseYear(ctx, 2020)
	require.NoError(t, err)
	assert.Equal(t, []int{first.ID, second.ID}, ids(movies))

	movies, err = catalog.movies.FindByReleaseYear(ctx, 1999)
	require.NoError(t, err)
	assert.Empty(t, movies)

	movies, err = catalog.movies.FindByActor(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []int{first.ID, second.ID}, ids(movies))

	movies, err = catalog.movies.FindByGenre(ctx, comedy)
	require.NoError(t, err)
	assert.Equal(t, []int{second.ID}, ids(movies))

	movies, err = catalog.movies.FindByActorAndGenre(ctx, alice, drama)
	require.NoError(t, err)
	assert.Equal(t, []int{first.ID}, ids(movies))

	movies, err = catalog.movies.FindByActorAndGenre(ctx, bob, drama)
	require.NoError(t, err)
	assert.Empty(t, movies)

	_, err = catalog.movies.FindByActor(ctx, 404)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	_, err = catalog.movies.FindByGenre(ctx, 404)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	movies, err = catalog.movies.SearchByTitle(ctx, "FILM")
	require.NoError(t, err)
	assert.Equal(t, []int{first.ID, second.ID}, ids(movies))

	movies, err = catalog.movies.SearchByTitle(ctx, "sequel")
	require.NoError(t, err)
	assert.Empty(t, movies)

	actors, err := catalog.movies.GetActors(ctx, second.ID)
	require.NoError(t, err)
	assert.Len(t, actors, 2)

	page, total, err := catalog.movies.List(ctx, pagination.Params{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 1)

	page, _, err = catalog.movies.List(ctx, pagination.Params{Page: 5, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, page)

	_, _, err = catalog.movies.List(ctx, pagination.Params{Page: 0, Size: 0})
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidArgument))

	_, _, err = catalog.movies.List(ctx, pagination.Params{Page: 1 << 62, Size: 2})
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidArgument))

	stored, count, err := movie.NewMemoryRepository(memstore.New()).ListMovies(ctx, pagination.Params{Page: 1 << 62, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Zero(t, count)
}
