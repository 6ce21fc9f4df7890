// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogMovieGenreTable represents the 'genres' join table
type CatalogMovieGenreTable struct {
	Table   string
	MovieID string
	GenreID string
}

// CatalogMovieGenre is the schema definition for genres
var CatalogMovieGenre = CatalogMovieGenreTable{
	Table:   "genres",
	MovieID: "movie_id",
	GenreID: "genre_id",
}

func (t CatalogMovieGenreTable) Columns() []string { return []string{t.MovieID, t.GenreID} }
