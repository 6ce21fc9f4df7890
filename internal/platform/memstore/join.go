// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memstore

import (
	"maps"
	"slices"
)

type pair struct {
	movieID int
	otherID int
}

// Join is a many-to-many relation keyed by (movie id, other id) pairs.
// A pair is stored at most once.
type Join struct {
	pairs map[pair]struct{}
}

func NewJoin() *Join {
	return &Join{pairs: make(map[pair]struct{})}
}

// Add reports whether the pair was newly inserted.
func (j *Join) Add(movieID, otherID int) bool {
	key := pair{movieID, otherID}
	if _, ok := j.pairs[key]; ok {
		return false
	}
	j.pairs[key] = struct{}{}
	return true
}

// Remove reports whether the pair existed.
func (j *Join) Remove(movieID, otherID int) bool {
	key := pair{movieID, otherID}
	if _, ok := j.pairs[key]; !ok {
		return false
	}
	delete(j.pairs, key)
	return true
}

func (j *Join) Has(movieID, otherID int) bool {
	_, ok := j.pairs[pair{movieID, otherID}]
	return ok
}

// Others returns the ids related to movieID in ascending order.
func (j *Join) Others(movieID int) []int {
	var ids []int
	for key := range j.pairs {
		if key.movieID == movieID {
			ids = append(ids, key.otherID)
		}
	}
	slices.Sort(ids)
	return ids
}

// Movies returns the movie ids related to otherID in ascending order.
func (j *Join) Movies(otherID int) []int {
	var ids []int
	for key := range j.pairs {
		if key.otherID == otherID {
			ids = append(ids, key.movieID)
		}
	}
	slices.Sort(ids)
	return ids
}

// DeleteMovie drops every pair of movieID.
func (j *Join) DeleteMovie(movieID int) {
	for key := range j.pairs {
		if key.movieID == movieID {
			delete(j.pairs, key)
		}
	}
}

// DeleteOther drops every pair of otherID.
func (j *Join) DeleteOther(otherID int) {
	for key := range j.pairs {
		if key.otherID == otherID {
			delete(j.pairs, key)
		}
	}
}

func (j *Join) clone() *Join {
	return &Join{pairs: maps.Clone(j.pairs)}
}
