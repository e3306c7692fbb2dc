package ratelimit

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tripspark/internal/pkg/response"
)

// Middleware creates a rate limiting middleware for Gin, keyed by client IP
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		if !limiter.Allow(key) {
			resetTime := limiter.ResetTime(key)
			retryAfter := int(time.Until(resetTime).Seconds()) + 1

			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", resetTime.Format(time.RFC3339))
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			response.TooManyRequests(c, "Rate limit exceeded. Try again later.", "RATE_LIMITED")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Header("X-RateLimit-Reset", limiter.ResetTime(key).Format(time.RFC3339))

		c.Next()
	}
}
