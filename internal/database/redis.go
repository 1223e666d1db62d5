package database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"atelier-backoffice-api/internal/config"
)

var redisClient *redis.Client

// InitRedis connects to Redis. Caching is optional: when no host is
// configured the client stays nil and callers fall through to the database.
func InitRedis(cfg config.RedisConfig, log *zap.Logger) error {
	if cfg.Host == "" {
		log.Info("Redis not configured, dashboard caching disabled")
		return nil
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	redisClient = client
	log.Info("Redis connection established", zap.String("addr", addr), zap.Int("db", cfg.DB))
	return nil
}

// GetRedis returns the Redis client, or nil when caching is disabled
func GetRedis() *redis.Client {
	return redisClient
}
