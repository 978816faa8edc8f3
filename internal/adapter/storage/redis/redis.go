package redis

import (
	"context"
	"fmt"

	"laundry-hub/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Options maps RedisConfig onto client options. The receipt cache and the
// rate limiter both fail open, so a short timeout keeps a slow Redis off
// the webhook path.
func Options(cfg config.RedisConfig) *goredis.Options {
	opts := &goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}
	if cfg.Timeout > 0 {
		opts.DialTimeout = cfg.Timeout
		opts.ReadTimeout = cfg.Timeout
		opts.WriteTimeout = cfg.Timeout
	}
	return opts
}

// NewClient creates a Redis client and verifies connectivity.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(Options(cfg))
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Int("pool_size", cfg.PoolSize).
		Dur("timeout", cfg.Timeout).
		Msg("receipt cache connected")

	return client, nil
}
