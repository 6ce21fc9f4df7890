// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/kmdb/internal/core/actor"
	"github.com/taibuivan/kmdb/internal/core/genre"
)

// Movie is the owning side of both associations. Actors and Genres are sets
// kept in ascending id order.
type Movie struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	ReleaseYear int           `json:"release_year"`
	Duration    int           `json:"duration"`
	Actors      []actor.Actor `json:"actors"`
	Genres      []genre.Genre `json:"genres"`
	Rating      Stars         `json:"rating"`
}

// HasActor reports whether the actor is in the movie's actor set.
func (movie *Movie) HasActor(actorID int) bool {
	for _, member := range movie.Actors {
		if member.ID == actorID {
			return true
		}
	}
	return false
}

// HasGenre reports whether the genre is in the movie's genre set.
func (movie *Movie) HasGenre(genreID int) bool {
	for _, member := range movie.Genres {
		if member.ID == genreID {
			return true
		}
	}
	return false
}

// Draft is the caller-provided data for a new movie.
type Draft struct {
	Title       string `json:"title" validate:"notblank,max=255"`
	ReleaseYear int    `json:"release_year" validate:"gte=0,lte=2300"`
	Duration    int    `json:"duration" validate:"gte=0,lte=1000"`
	ActorIDs    []int  `json:"actors" validate:"required,dive,gt=0"`
	GenreIDs    []int  `json:"genres" validate:"required,dive,gt=0"`
}

// # Star Rating

const (
	MinStars = 1
	MaxStars = 5

	filledStar = "★"
	emptyStar  = "☆"
)

// Stars is a rating in [0, MaxStars]. Zero means unrated.
// It is serialized as MaxStars glyphs, filled ones first.
type Stars int

func (stars Stars) String() string {
	filled := min(max(int(stars), 0), MaxStars)
	return strings.Repeat(filledStar, filled) + strings.Repeat(emptyStar, MaxStars-filled)
}

func (stars Stars) MarshalJSON() ([]byte, error) {
	return json.Marshal(stars.String())
}

func (stars *Stars) UnmarshalJSON(data []byte) error {
	var glyphs string
	if err := json.Unmarshal(data, &glyphs); err != nil {
		return err
	}
	if utf8.RuneCountInString(glyphs) != MaxStars ||
		strings.Trim(glyphs, filledStar+emptyStar) != "" {
		return fmt.Errorf("movie: invalid rating %q", glyphs)
	}

	filled := strings.Count(glyphs, filledStar)
	if strings.Repeat(filledStar, filled) != glyphs[:filled*len(filledStar)] {
		return fmt.Errorf("movie: invalid rating %q", glyphs)
	}

	*stars = Stars(filled)
	return nil
}

// Global field names for validation
const (
	FieldTitle       = "title"
	FieldReleaseYear = "release_year"
	FieldStars       = "stars"
)
