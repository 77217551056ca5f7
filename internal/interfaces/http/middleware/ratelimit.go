package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swiftsupply/backend/internal/infrastructure/throttle"
	"github.com/swiftsupply/backend/internal/interfaces/http/dto"
)

// KeyFunc derives the rate limit key of a request
type KeyFunc func(*gin.Context) string

// ClientIPKey limits per client address
func ClientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// NewRequestLimiter allows requests per window, as a token bucket refilled
// evenly across the window with a burst of the full allowance
func NewRequestLimiter(requests int, window time.Duration) *throttle.KeyedLimiter {
	if requests < 1 {
		requests = 1
	}
	return throttle.New(window/time.Duration(requests), requests)
}

// RateLimit returns a rate limiting middleware keyed by client IP
func RateLimit(limiter *throttle.KeyedLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, ClientIPKey)
}

// RateLimitByKey returns a rate limiting middleware with a custom key extractor
func RateLimitByKey(limiter *throttle.KeyedLimiter, keyFunc KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)

		if !limiter.Allow(key) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.",
				getRequestID(c),
			))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Burst()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}
