package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// SlidingWindowLimiter keeps the hit timestamps per key that fall inside a
// moving window. Entries idle for two full windows are dropped by the
// cleanup goroutine.
type SlidingWindowLimiter struct {
	mu          sync.Mutex
	window      time.Duration
	maxRequests int
	hits        map[string][]time.Time
}

func NewSlidingWindowLimiter(window time.Duration, maxRequests int) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		window:      window,
		maxRequests: maxRequests,
		hits:        make(map[string][]time.Time),
	}
}

// Allow records a hit for key and reports whether it stays under the limit.
func (limiter *SlidingWindowLimiter) Allow(key string) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-limiter.window)

	hits := limiter.hits[key]
	alive := 0
	for ; alive < len(hits); alive++ {
		if !hits[alive].Before(windowStart) {
			break
		}
	}
	hits = hits[alive:]

	if len(hits) >= limiter.maxRequests {
		limiter.hits[key] = hits
		return false
	}

	limiter.hits[key] = append(hits, now)
	return true
}

func (limiter *SlidingWindowLimiter) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			limiter.dropIdleKeys()
		}
	}()
}

func (limiter *SlidingWindowLimiter) dropIdleKeys() {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	threshold := time.Now().Add(-2 * limiter.window)
	for key, hits := range limiter.hits {
		if len(hits) == 0 || hits[len(hits)-1].Before(threshold) {
			delete(limiter.hits, key)
		}
	}
}

func RateLimitMiddleware(limiter *SlidingWindowLimiter, keyFunc func(ctx echo.Context) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if !limiter.Allow(keyFunc(ctx)) {
				return ctx.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"code":    "RATE_LIMIT_EXCEEDED",
					"message": "too many requests, retry later",
					"data":    nil,
				})
			}
			return next(ctx)
		}
	}
}

// IPKeyFunc keys the limiter on the client address.
func IPKeyFunc(ctx echo.Context) string {
	return ctx.RealIP()
}

// CombinedKeyFunc keys the limiter on client address and endpoint.
func CombinedKeyFunc(ctx echo.Context) string {
	return ctx.RealIP() + "|" + ctx.Path()
}
