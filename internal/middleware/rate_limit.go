package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultRateLimitRequests is the number of requests a client may send per window
	DefaultRateLimitRequests = 1000
	// DefaultRateLimitWindow is the window DefaultRateLimitRequests refills over
	DefaultRateLimitWindow = 15 * time.Minute
	// CleanupInterval is the interval for cleaning up stale limiters
	CleanupInterval = 5 * time.Minute
)

// RateLimiter manages per-client rate limiting. Each client gets a token
// bucket holding requests tokens that refills completely over window.
type RateLimiter struct {
	limiters map[string]*limiterEntry
	mu       sync.Mutex
	requests int
	window   time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter with default settings
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(DefaultRateLimitRequests, DefaultRateLimitWindow)
}

// NewRateLimiterWithConfig creates a RateLimiter allowing requests per window
func NewRateLimiterWithConfig(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		requests: requests,
		window:   window,
		stopCh:   make(chan struct{}),
		now:      time.Now,
	}

	go rl.cleanup()

	return rl
}

func (r *RateLimiter) refill() rate.Limit {
	return rate.Limit(float64(r.requests) / r.window.Seconds())
}

// Allow reports whether a request from key may proceed. When it may not,
// retryAfter is the wait until the next token is available.
func (r *RateLimiter) Allow(key string) (ok bool, remaining int, retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	entry, exists := r.limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(r.refill(), r.requests)}
		r.limiters[key] = entry
	}
	entry.lastSeen = now

	res := entry.limiter.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, 0, delay
	}

	remaining = int(entry.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return true, remaining, 0
}

// Len returns the number of tracked clients
func (r *RateLimiter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.limiters)
}

// cleanup periodically removes limiters idle for a full window
func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictStale()
		case <-r.stopCh:
			return
		}
	}
}

func (r *RateLimiter) evictStale() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for key, entry := range r.limiters {
		if now.Sub(entry.lastSeen) > r.window {
			delete(r.limiters, key)
			log.Debug().Str("client_ip", key).Msg("Cleaned up stale rate limiter")
		}
	}
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// RateLimitMiddleware returns an Echo middleware limiting requests per client IP
func RateLimitMiddleware(rl *RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			ok, remaining, wait := rl.Allow(ip)

			h := c.Response().Header()
			h.Set("RateLimit-Limit", strconv.Itoa(rl.requests))

			if !ok {
				retryAfter := int(wait.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				h.Set("RateLimit-Remaining", "0")
				h.Set("Retry-After", strconv.Itoa(retryAfter))

				log.Warn().
					Str("client_ip", ip).
					Int("retry_after", retryAfter).
					Msg("Rate limit exceeded")

				return tooManyRequestsError(c)
			}

			h.Set("RateLimit-Remaining", strconv.Itoa(remaining))
			return next(c)
		}
	}
}
