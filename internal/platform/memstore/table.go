// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memstore

import (
	"maps"
	"slices"
)

// Table is an id-keyed row set with a sequential id generator.
// Rows are stored by value; callers replace rows instead of mutating them.
type Table[T any] struct {
	nextID int
	rows   map[int]T
}

// NewTable returns an empty table whose first id is 1.
func NewTable[T any]() *Table[T] {
	return &Table[T]{nextID: 1, rows: make(map[int]T)}
}

// Insert assigns the next id, stores the row built for it and returns that row.
func (t *Table[T]) Insert(build func(id int) T) T {
	id := t.nextID
	t.nextID++

	row := build(id)
	t.rows[id] = row
	return row
}

func (t *Table[T]) Get(id int) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *Table[T]) Has(id int) bool {
	_, ok := t.rows[id]
	return ok
}

// Put replaces an existing row. It reports false when id is unknown.
func (t *Table[T]) Put(id int, row T) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = row
	return true
}

// Delete removes a row. It reports false when id is unknown.
func (t *Table[T]) Delete(id int) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func (t *Table[T]) Len() int {
	return len(t.rows)
}

// IDs returns every id in ascending order.
func (t *Table[T]) IDs() []int {
	return slices.Sorted(maps.Keys(t.rows))
}

// Select returns the rows accepted by keep, ordered by id. A nil keep selects everything.
func (t *Table[T]) Select(keep func(T) bool) []T {
	out := make([]T, 0, len(t.rows))
	for _, id := range t.IDs() {
		row := t.rows[id]
		if keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// Lookup returns the rows for ids in the given order, skipping unknown ids.
func (t *Table[T]) Lookup(ids []int) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if row, ok := t.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out
}

func (t *Table[T]) clone() *Table[T] {
	return &Table[T]{nextID: t.nextID, rows: maps.Clone(t.rows)}
}
