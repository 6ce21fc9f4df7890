// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogMovieActorTable represents the 'actors' join table
type CatalogMovieActorTable struct {
	Table   string
	MovieID string
	ActorID string
}

// CatalogMovieActor is the schema definition for actors
var CatalogMovieActor = CatalogMovieActorTable{
	Table:   "actors",
	MovieID: "movie_id",
	ActorID: "actor_id",
}

func (t CatalogMovieActorTable) Columns() []string { return []string{t.MovieID, t.ActorID} }
