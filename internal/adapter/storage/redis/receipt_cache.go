package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laundry-hub/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// ReceiptCache implements ports.ReceiptCache. It only short-circuits
// redeliveries; the webhook_receipts table stays the source of truth.
type ReceiptCache struct {
	client goredis.UniversalClient
}

// NewReceiptCache creates a new Redis-backed receipt cache.
func NewReceiptCache(client goredis.UniversalClient) *ReceiptCache {
	return &ReceiptCache{client: client}
}

// Seen reports whether an event id was remembered and has not expired.
func (c *ReceiptCache) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := c.client.Exists(ctx, domain.ReceiptCacheKey(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis receipt exists: %w", err)
	}
	return n > 0, nil
}

// Remember marks an event id as applied for ttl. The first writer wins; a
// later call leaves the original expiry in place.
func (c *ReceiptCache) Remember(ctx context.Context, eventID string, ttl time.Duration) error {
	err := c.client.SetArgs(ctx, domain.ReceiptCacheKey(eventID), 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Err()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("redis receipt remember: %w", err)
	}
	return nil
}
