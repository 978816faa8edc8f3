package middleware

import (
	"strconv"
	"time"

	"laundry-hub/internal/core/ports"
	"laundry-hub/pkg/apperror"
	"laundry-hub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int
	Window time.Duration
}

// DefaultRateLimitRules returns the limits per endpoint group.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"orders_place":  {Limit: 20, Window: time.Minute},
		"orders":        {Limit: 120, Window: time.Minute},
		"tokens_scan":   {Limit: 30, Window: time.Minute},
		"wallets":       {Limit: 60, Window: time.Minute},
		"wallets_money": {Limit: 10, Window: time.Minute},
		"webhooks":      {Limit: 600, Window: time.Minute},
	}
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
// A limiter outage lets the request through.
func RateLimiter(limiter ports.RateLimiter, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := extractIdentifier(c) + ":" + group

		allowed, remaining, err := limiter.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		windowSec := int64(rule.Window / time.Second)
		if windowSec < 1 {
			windowSec = 1
		}
		now := time.Now().Unix()
		resetAt := (now/windowSec + 1) * windowSec

		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt, 10))

		if !allowed {
			retryAfter := resetAt - now
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractIdentifier keys limits by actor when authenticated, else by IP.
func extractIdentifier(c *gin.Context) string {
	if actor, ok := ActorFrom(c); ok {
		return actor.ID
	}
	return c.ClientIP()
}
