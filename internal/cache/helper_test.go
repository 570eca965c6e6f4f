package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var missing payload
	found, err := GetJSON(ctx, "nothing", &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "thing", payload{Name: "x", Count: 3}, time.Minute))

	var got payload
	found, err = GetJSON(ctx, "thing", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "x", Count: 3}, got)
}

func TestCacheAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *int) func() error {
		return func() error {
			calls++
			*dest = 42
			return nil
		}
	}

	var v int
	require.NoError(t, CacheAside(ctx, "answer", &v, time.Minute, fetch(&v)))
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)

	// Second read is served from cache.
	var v2 int
	require.NoError(t, CacheAside(ctx, "answer", &v2, time.Minute, fetch(&v2)))
	assert.Equal(t, 42, v2)
	assert.Equal(t, 1, calls)
}

func TestInvalidateModeration(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, StatsKey, 1, time.Minute))
	require.NoError(t, SetJSON(ctx, ApprovedListKey, 2, time.Minute))
	require.NoError(t, SetJSON(ctx, RejectedListKey, 3, time.Minute))

	InvalidateModeration(ctx)

	var v int
	for _, key := range []string{StatsKey, ApprovedListKey, RejectedListKey} {
		found, err := GetJSON(ctx, key, &v)
		require.NoError(t, err)
		assert.False(t, found, "key %s should be gone", key)
	}
}

func TestNilClientIsNoop(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var v int
	found, err := GetJSON(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, SetJSON(ctx, "k", 1, time.Minute))
}
