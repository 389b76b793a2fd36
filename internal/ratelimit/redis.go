package ratelimit

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisPolicy is a fixed-window counter shared across API instances.
// INCR + EXPIRE inside a pipeline keeps it a single round trip.
type RedisPolicy struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisPolicy(rdb *redis.Client, limit int, window time.Duration) *RedisPolicy {
	return &RedisPolicy{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
	}
}

func (p *RedisPolicy) Allow(ctx context.Context, key string) (bool, error) {
	pipe := p.rdb.TxPipeline()
	incr := pipe.Incr(ctx, p.prefix+key)
	pipe.Expire(ctx, p.prefix+key, p.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= int64(p.limit), nil
}

var _ Policy = (*RedisPolicy)(nil)
