package redis

import (
	"context"
	"strings"
	"time"

	"sharkpay/api/internal/config"
	"sharkpay/api/internal/logger"
	"sharkpay/pkg/logsink"

	goredis "github.com/redis/go-redis/v9"
)

// Init returns nil when redis is not configured, callers then fall back to
// in-process locks and counters.
func Init(config *config.Config, log logger.Logger) *goredis.Client {
	addr := strings.TrimPrefix(config.Redis.Addr, "redis://")
	if addr == "" {
		log.Debug("redis disabled, using in-process cache")
		return nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: config.Redis.Password,
		DB:       config.Redis.Db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Error("redis ping failed", logsink.LogstreamFatal, false, "addr", addr, "error", err.Error())
		panic("redis: connect failed: " + err.Error())
	}

	log.Debug("connected to redis", "addr", addr)
	return client
}
