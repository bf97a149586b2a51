package service

import (
	"context"
	"time"

	"sharkpay/api/internal/infra/cache"

	goredis "github.com/redis/go-redis/v9"
)

// fixed window counter per key
type CacheRateLimiter struct {
	cache  *cache.Cache
	limit  int
	window time.Duration
}

func NewCacheRateLimiter(cache *cache.Cache, limit int, window time.Duration) *CacheRateLimiter {
	return &CacheRateLimiter{cache: cache, limit: limit, window: window}
}

func (s *CacheRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	return s.cache.Incr(key, s.window) <= s.limit, nil
}

type RedisRateLimiter struct {
	client *goredis.Client
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(client *goredis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limit: limit, window: window}
}

func (s *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	key = "ratelimit:" + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= int64(s.limit), nil
}
