package helper

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTravelCacheRoundTripAndInvalidate(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	cache := NewTravelCache(rdb, time.Minute)
	cache.Set(ctx, "destinations", []string{"goa", "kerala"})
	cache.Set(ctx, "packages:goa", map[string]int{"count": 2})
	require.NoError(t, rdb.Set(ctx, "other:key", "keep", 0).Err())

	var got []string
	require.True(t, cache.Get(ctx, "destinations", &got))
	assert.Equal(t, []string{"goa", "kerala"}, got)
	assert.True(t, mr.TTL("travel:destinations") > 0)

	cache.Invalidate(ctx)
	assert.False(t, cache.Get(ctx, "destinations", &got))
	assert.False(t, mr.Exists("travel:packages:goa"))
	assert.True(t, mr.Exists("other:key"))
}

func TestTravelCacheWithoutRedis(t *testing.T) {
	var cache *TravelCache
	var v string
	assert.False(t, cache.Get(context.Background(), "x", &v))
	cache.Set(context.Background(), "x", "y")
	cache.Invalidate(context.Background())

	empty := NewTravelCache(nil, 0)
	assert.False(t, empty.Get(context.Background(), "x", &v))
}
