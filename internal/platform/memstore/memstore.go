// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memstore is the in-process catalog database used with STORE_DRIVER=memory
and by the engine tests.

It mirrors the relational layout: three entity tables plus the 'actors' and
'genres' join tables. Deleting an entity cascades through both joins the same
way the PostgreSQL foreign keys do.

# Transactions

[DB.Update] runs a function against a private copy of the state and publishes
the copy only when the function returns nil, so a failing operation leaves no
partial writes. Writers are serialized; readers see the last committed state.
*/
package memstore

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// ActorRow is a stored 'actor' record.
type ActorRow struct {
	ID        int
	Name      string
	BirthDate *string
}

// GenreRow is a stored 'genre' record.
type GenreRow struct {
	ID   int
	Name string
}

// MovieRow is a stored 'movie' record without its associations.
type MovieRow struct {
	ID          int
	Title       string
	ReleaseYear int
	Duration    int
	StarRating  int
}

// Snapshot is one consistent version of every table.
type Snapshot struct {
	Actors      *Table[ActorRow]
	Genres      *Table[GenreRow]
	Movies      *Table[MovieRow]
	MovieActors *Join
	MovieGenres *Join
}

func newSnapshot() *Snapshot {
	return &Snapshot{
		Actors:      NewTable[ActorRow](),
		Genres:      NewTable[GenreRow](),
		Movies:      NewTable[MovieRow](),
		MovieActors: NewJoin(),
		MovieGenres: NewJoin(),
	}
}

func (s *Snapshot) clone() *Snapshot {
	return &Snapshot{
		Actors:      s.Actors.clone(),
		Genres:      s.Genres.clone(),
		Movies:      s.Movies.clone(),
		MovieActors: s.MovieActors.clone(),
		MovieGenres: s.MovieGenres.clone(),
	}
}

// DeleteActor removes the actor and its movie associations.
func (s *Snapshot) DeleteActor(id int) bool {
	if !s.Actors.Delete(id) {
		return false
	}
	s.MovieActors.DeleteOther(id)
	return true
}

// DeleteGenre removes the genre and its movie associations.
func (s *Snapshot) DeleteGenre(id int) bool {
	if !s.Genres.Delete(id) {
		return false
	}
	s.MovieGenres.DeleteOther(id)
	return true
}

// DeleteMovie removes the movie and both of its join sets.
func (s *Snapshot) DeleteMovie(id int) bool {
	if !s.Movies.Delete(id) {
		return false
	}
	s.MovieActors.DeleteMovie(id)
	s.MovieGenres.DeleteMovie(id)
	return true
}

// DB guards the committed snapshot.
type DB struct {
	mu    sync.RWMutex
	state *Snapshot
}

// New returns an empty database.
func New() *DB {
	return &DB{state: newSnapshot()}
}

// View runs fn against the committed state under a read lock.
// fn must not modify the snapshot.
func (db *DB) View(fn func(*Snapshot) error) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return fn(db.state)
}

// Update runs fn against a copy of the committed state and commits the copy
// if fn returns nil.
func (db *DB) Update(fn func(*Snapshot) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	working := db.state.clone()
	if err := fn(working); err != nil {
		return err
	}

	db.state = working
	return nil
}

// # Text matching

// EqualFold reports whether a and b are equal under Unicode case folding.
func EqualFold(a, b string) bool {
	return fold(a) == fold(b)
}

// ContainsFold reports whether substr occurs in s under Unicode case folding.
func ContainsFold(s, substr string) bool {
	return strings.Contains(fold(s), fold(substr))
}

// fold builds a fresh Caser per call since a Caser is not safe for concurrent use.
func fold(value string) string {
	return cases.Fold().String(value)
}
