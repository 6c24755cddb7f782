// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"carrent/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient is the generic cache client. It is best-effort: callers must
// tolerate a nil client, since the database conditional writes remain the
// authoritative idempotency guard.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client.
func InitCache() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("Redis unreachable, continuing without cache", zap.Error(err))
		return
	}
	CacheClient = client
}

// GetCacheClient returns the cache client, which may be nil.
func GetCacheClient() *redis.Client {
	return CacheClient
}
