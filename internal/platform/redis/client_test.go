// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kmdb/internal/platform/redis"
)

func TestOptions(t *testing.T) {
	options, err := redis.Options("redis://cache:6379/2")
	require.NoError(t, err)

	assert.Equal(t, "cache:6379", options.Addr)
	assert.Equal(t, 2, options.DB)
	assert.Equal(t, 10, options.PoolSize)

	options, err = redis.Options("redis://cache:6379/0?pool_size=4")
	require.NoError(t, err)
	assert.Equal(t, 4, options.PoolSize)

	_, err = redis.Options("http://cache")
	assert.ErrorContains(t, err, "redis: invalid URL")
}
