package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"job-tracker-backend/internal/delivery/http/response"
	"job-tracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Prefix keeps separate limiters apart in logs
	KeyPrefix string
}

// rateLimitEntry tracks request count for a key
type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

// fixedWindow is a single-node counter store; entries expire with their window.
type fixedWindow struct {
	mu        sync.Mutex
	entries   map[string]*rateLimitEntry
	lastSweep time.Time
}

func (w *fixedWindow) hit(key string, window time.Duration, now time.Time) (int, time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if now.Sub(w.lastSweep) > window {
		for k, e := range w.entries {
			if now.After(e.resetAt) {
				delete(w.entries, k)
			}
		}
		w.lastSweep = now
	}

	entry, ok := w.entries[key]
	if !ok || now.After(entry.resetAt) {
		entry = &rateLimitEntry{resetAt: now.Add(window)}
		w.entries[key] = entry
	}
	entry.count++
	return entry.count, entry.resetAt
}

// GlobalRateLimitConfig is applied to every API route.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// AuthRateLimitConfig returns strict config for authentication endpoints
func AuthRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:auth:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// Each middleware instance keeps its own counters.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	store := &fixedWindow{entries: make(map[string]*rateLimitEntry)}

	return func(c *gin.Context) {
		key := config.KeyPrefix + config.KeyFunc(c)
		count, resetAt := store.hit(key, config.Window, time.Now())

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("rate limit triggered",
				zap.String("key", key),
				zap.String("path", c.FullPath()),
				zap.String("request_id", RequestIDFrom(c)),
			)

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
