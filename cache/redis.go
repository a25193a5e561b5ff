package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"geohash-engine/geohash"
	"geohash-engine/metrics"
)

// NewRedisClient connects to Redis and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	slog.Info("connected to redis", "addr", addr)
	return rdb, nil
}

// CoverCache memoises circle covers in Redis lists. A nil *CoverCache is
// valid and always computes.
type CoverCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCoverCache(rdb *redis.Client, ttl time.Duration) *CoverCache {
	return &CoverCache{rdb: rdb, ttl: ttl}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// CircleKey is the Redis key of a circle cover. accuracy 0 means uncompressed.
func CircleKey(lat, lon, radius float64, precision uint, accuracy float64) string {
	return fmt.Sprintf("cover:circle:%s:%s:%s:%d:%s",
		formatFloat(lat), formatFloat(lon), formatFloat(radius), precision, formatFloat(accuracy))
}

// Circle returns the cover of a circle, compressed with accuracy when it is
// non-zero. Redis errors are logged and the cover is computed directly.
func (c *CoverCache) Circle(ctx context.Context, lat, lon, radius float64, precision uint, accuracy float64) ([]string, error) {
	compute := func() ([]string, error) {
		codes, err := geohash.Circle(lat, lon, radius, precision)
		if err != nil || accuracy == 0 {
			return codes, err
		}
		return geohash.Compress(codes, accuracy)
	}
	if c == nil {
		return compute()
	}

	key := CircleKey(lat, lon, radius, precision, accuracy)
	cached, err := c.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		slog.WarnContext(ctx, "cover cache read failed", "key", key, "error", err)
		return compute()
	}
	if len(cached) > 0 {
		metrics.CacheHits.WithLabelValues("circle").Inc()
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues("circle").Inc()

	codes, err := compute()
	if err != nil || len(codes) == 0 {
		return codes, err
	}
	if err := c.store(ctx, key, codes); err != nil {
		slog.WarnContext(ctx, "cover cache write failed", "key", key, "error", err)
	}
	return codes, nil
}

func (c *CoverCache) store(ctx context.Context, key string, codes []string) error {
	values := make([]interface{}, len(codes))
	for i, code := range codes {
		values[i] = code
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.RPush(ctx, key, values...)
		if c.ttl > 0 {
			pipe.Expire(ctx, key, c.ttl)
		}
		return nil
	})
	return err
}

// Invalidate drops every cached circle cover.
func (c *CoverCache) Invalidate(ctx context.Context) (int, error) {
	if c == nil {
		return 0, nil
	}
	var n int
	iter := c.rdb.Scan(ctx, 0, "cover:circle:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return n, err
		}
		n++
	}
	return n, iter.Err()
}
