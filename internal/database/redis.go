package database

import (
	"context"
	"fmt"
	"time"

	"github.com/fitlog/fitlog/backend/go-services/internal/config"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis creates a client for cfg and checks it with PING.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, timeout time.Duration) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr(), Password: cfg.Password, DB: cfg.DB})
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
