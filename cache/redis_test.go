package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geohash-engine/geohash"
)

const (
	tokyoLat = 35.68952987243547
	tokyoLon = 139.69953972279566
)

func newTestCache(t *testing.T, ttl time.Duration) (*CoverCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })
	return NewCoverCache(rdb, ttl), mr
}

func TestCircleCachesCover(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	got, err := c.Circle(ctx, tokyoLat, tokyoLon, 300, 6, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"xn774b", "xn774c", "xn7750", "xn7751"}, got)

	key := CircleKey(tokyoLat, tokyoLon, 300, 6, 0)
	stored, err := mr.List(key)
	require.NoError(t, err)
	assert.Equal(t, got, stored)
	assert.Equal(t, time.Minute, mr.TTL(key))

	// Served from Redis on the second call.
	mr.Del(key)
	_, err = mr.Push(key, "xn774c")
	require.NoError(t, err)
	got, err = c.Circle(ctx, tokyoLat, tokyoLon, 300, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"xn774c"}, got)
}

func TestCircleCompressesWithAccuracy(t *testing.T) {
	c, _ := newTestCache(t, 0)
	ctx := context.Background()

	got, err := c.Circle(ctx, tokyoLat, tokyoLon, 2000, 7, 0.5)
	require.NoError(t, err)

	raw, err := geohash.Circle(tokyoLat, tokyoLon, 2000, 7)
	require.NoError(t, err)
	want, err := geohash.Compress(raw, 0.5)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCircleExpires(t *testing.T) {
	c, mr := newTestCache(t, time.Second)
	_, err := c.Circle(context.Background(), tokyoLat, tokyoLon, 300, 6, 0)
	require.NoError(t, err)

	key := CircleKey(tokyoLat, tokyoLon, 300, 6, 0)
	require.True(t, mr.Exists(key))
	mr.FastForward(2 * time.Second)
	assert.False(t, mr.Exists(key))
}

func TestCircleFallsBackWhenRedisIsDown(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	mr.Close()

	got, err := c.Circle(context.Background(), tokyoLat, tokyoLon, 300, 6, 0)
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestNilCacheComputes(t *testing.T) {
	var c *CoverCache
	got, err := c.Circle(context.Background(), tokyoLat, tokyoLon, 300, 6, 0)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	_, err = c.Circle(context.Background(), tokyoLat, tokyoLon, -1, 6, 0)
	require.ErrorIs(t, err, geohash.ErrInvalidRadius)

	n, err := c.Invalidate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInvalidate(t *testing.T) {
	c, mr := newTestCache(t, 0)
	ctx := context.Background()
	for _, r := range []float64{100, 200, 300} {
		_, err := c.Circle(ctx, tokyoLat, tokyoLon, r, 6, 0)
		require.NoError(t, err)
	}
	require.NoError(t, mr.Set("keep", "1"))

	n, err := c.Invalidate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, mr.Exists("keep"))
}

func TestNewRedisClientFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), addr, "", 0)
	require.Error(t, err)
}
