// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/farm-manager/backend/internal/domain/error"
	"github.com/farm-manager/backend/internal/integration/entrypoint/dto"
)

// rateLimitEntry tracks the requests of one caller in the current window.
type rateLimitEntry struct {
	requests  int
	resetTime time.Time
}

// RateLimiter caps how often a caller may request finance data.
// Callers are keyed by authenticated user, or by client IP before authentication.
type RateLimiter struct {
	mu          sync.Mutex
	entries     map[string]*rateLimitEntry
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// NewRateLimiter creates a rate limiter allowing maxRequests per window.
// A non-positive maxRequests disables limiting.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		entries:     make(map[string]*rateLimitEntry),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.maxRequests <= 0 {
			c.Next()
			return
		}

		if !rl.allow(callerKey(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

func callerKey(c *gin.Context) string {
	if userID, ok := GetUserIDFromContext(c); ok {
		return "user:" + userID.String()
	}
	if ip := c.ClientIP(); ip != "" {
		return "ip:" + ip
	}
	return "ip:" + c.Request.RemoteAddr
}

// allow records a request for key and reports whether it is within the limit.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	entry, exists := rl.entries[key]
	if !exists || now.After(entry.resetTime) {
		rl.entries[key] = &rateLimitEntry{
			requests:  1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if entry.requests < rl.maxRequests {
		entry.requests++
		return true
	}

	return false
}

// Cleanup removes expired entries.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, entry := range rl.entries {
		if now.After(entry.resetTime) {
			delete(rl.entries, key)
		}
	}
}
