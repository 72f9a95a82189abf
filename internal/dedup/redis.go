package dedup

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "agri-updates:fp:"

// RedisCache shares fingerprints between server replicas; Redis expires
// entries after Retention.
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache parses redisURL and verifies connectivity.
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisCache{rdb: rdb}, nil
}

func (rc *RedisCache) Lookup(ctx context.Context, fp string) (string, bool, error) {
	id, err := rc.rdb.Get(ctx, keyPrefix+fp).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return id, true, nil
}

func (rc *RedisCache) Remember(ctx context.Context, fp, postID string) error {
	if err := rc.rdb.Set(ctx, keyPrefix+fp, postID, Retention).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (rc *RedisCache) Close() error {
	return rc.rdb.Close()
}
