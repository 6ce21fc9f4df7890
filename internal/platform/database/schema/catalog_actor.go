// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column names of the catalog database so
// repositories never embed identifiers in SQL literals.
package schema

// CatalogActorTable represents the 'actor' table
type CatalogActorTable struct {
	Table     string
	ID        string
	Name      string
	BirthDate string
}

// CatalogActor is the schema definition for actor
var CatalogActor = CatalogActorTable{
	Table:     "actor",
	ID:        "id",
	Name:      "name",
	BirthDate: "birth_date",
}

func (t CatalogActorTable) Columns() []string {
	return []string{t.ID, t.Name, t.BirthDate}
}
