package service

import (
	"context"
	"time"

	"sharkpay/api/internal/infra/cache"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// LockerService is the single-instance locker.
type LockerService struct {
	cache *cache.Cache
}

func NewLockerService(cache *cache.Cache) *LockerService {
	return &LockerService{cache: cache}
}

func (s *LockerService) TryLock(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	if _, loaded := s.cache.LoadOrSet(key, token, ttl); loaded {
		return nil, false, nil
	}

	return func() {
		if s.cache.Load(key) == token {
			s.cache.Del(key)
		}
	}, true, nil
}

// deletes the key only if it still holds our token
var unlockScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker shares locks between gateway instances.
type RedisLocker struct {
	client *goredis.Client
}

func NewRedisLocker(client *goredis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (s *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	key = "lock:" + key

	ok, err := s.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil || !ok {
		return nil, false, err
	}

	return func() {
		unlockScript.Run(context.Background(), s.client, []string{key}, token)
	}, true, nil
}
