package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter applies a fixed-window per-IP limit backed by Redis. It fails
// open: Redis being unreachable must never lock users out of login.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

// NewRateLimiter creates a rate limiter. A nil client disables limiting.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
		prefix: "ratelimit",
	}
}

// Limit returns middleware enforcing the limit for one named scope
func (rl *RateLimiter) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.client == nil || rl.limit <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("%s:%s:%s", rl.prefix, scope, c.ClientIP())

		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("RATELIMIT_REDIS_ERROR: key=%s error=%v", key, err)
			c.Next()
			return
		}
		if count == 1 {
			rl.client.Expire(ctx, key, rl.window)
		}

		remaining := rl.limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.FormatInt(rl.limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > rl.limit {
			retryAfter := int64(rl.window.Seconds())
			if ttl, err := rl.client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
				retryAfter = int64(ttl.Seconds())
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":        "rate_limited",
				"error":       "Too many requests, try again later",
				"retry_after": retryAfter,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
