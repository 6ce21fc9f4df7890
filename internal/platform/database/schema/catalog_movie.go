// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogMovieTable represents the 'movie' table
type CatalogMovieTable struct {
	Table       string
	ID          string
	Title       string
	ReleaseYear string
	Duration    string
	StarRating  string
}

// CatalogMovie is the schema definition for movie
var CatalogMovie = CatalogMovieTable{
	Table:       "movie",
	ID:          "id",
	Title:       "title",
	ReleaseYear: "release_year",
	Duration:    "duration",
	StarRating:  "star_rating",
}

func (t CatalogMovieTable) Columns() []string {
	return []string{t.ID, t.Title, t.ReleaseYear, t.Duration, t.StarRating}
}
