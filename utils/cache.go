// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"trilhas/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient is the dedicated client for verified-session caching.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for session caching (using DB from AppConfig for auth cache).
func InitAuthCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (Auth Cache): %w", err)
	}
	AuthCacheClient = client
	return nil
}

// GetAuthCacheClient returns the Redis client for session caching, or nil
// when Redis is not reachable.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}
