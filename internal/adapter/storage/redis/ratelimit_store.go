package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RateLimitStore implements ports.RateLimiter with fixed-window counters.
type RateLimitStore struct {
	client goredis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRateLimitStore creates a new Redis-backed rate limit store.
func NewRateLimitStore(client goredis.UniversalClient) *RateLimitStore {
	return &RateLimitStore{
		client: client,
		prefix: "ratelimit:",
		now:    time.Now,
	}
}

// Allow counts one request against key in the current window and reports
// whether it fits under limit, plus how many requests remain.
// The counter key is scoped by window index: unix time / window length.
func (s *RateLimitStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	seconds := int64(window / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	windowID := s.now().Unix() / seconds
	redisKey := fmt.Sprintf("%s%s:%d", s.prefix, key, windowID)

	n, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("redis rate limit incr: %w", err)
	}
	if n == 1 {
		if err := s.client.Expire(ctx, redisKey, window+time.Second).Err(); err != nil {
			return false, 0, fmt.Errorf("redis rate limit expire: %w", err)
		}
	}

	count := int(n)
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= limit, remaining, nil
}
