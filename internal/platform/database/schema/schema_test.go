// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kmdb/internal/platform/database/schema"
)

func TestList(t *testing.T) {
	assert.Equal(t, "id, name, birth_date", schema.List("", schema.CatalogActor.Columns()...))
	assert.Equal(t, "m.movie_id, m.genre_id", schema.List("m", schema.CatalogMovieGenre.Columns()...))
}
