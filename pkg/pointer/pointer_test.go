// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kmdb/pkg/pointer"
)

func TestDeref(t *testing.T) {
	assert.Equal(t, "unknown", pointer.Deref(nil, "unknown"))
	assert.Equal(t, "1980-02-03", pointer.Deref(pointer.To("1980-02-03"), "unknown"))
}

func TestClone(t *testing.T) {
	assert.Nil(t, pointer.Clone[string](nil))

	original := pointer.To(4)
	copied := pointer.Clone(original)
	require.NotNil(t, copied)

	*original = 5
	assert.Equal(t, 4, *copied)
}

func TestNonEmpty(t *testing.T) {
	assert.Nil(t, pointer.NonEmpty(""))

	value := pointer.NonEmpty("1990-01-01")
	require.NotNil(t, value)
	assert.Equal(t, "1990-01-01", *value)
}
