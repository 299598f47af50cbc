package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/ecobin/ecobin-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedis returns a client for the optional cache, or nil when no address
// is configured. Callers treat a nil client as cache-disabled.
func NewRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("redis unavailable, cache disabled", "addr", cfg.RedisAddr, "error", err)
		return nil
	}

	slog.Info("redis connected", "addr", cfg.RedisAddr)
	return client
}
