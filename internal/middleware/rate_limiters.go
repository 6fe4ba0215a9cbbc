package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterInfo is a struct that holds a rate limiter and the last time it was seen.
type limiterInfo struct {
	limiter *rate.Limiter

	mu       sync.Mutex
	lastSeen time.Time
}

func (l *limiterInfo) touch(now time.Time) {
	l.mu.Lock()
	l.lastSeen = now
	l.mu.Unlock()
}

func (l *limiterInfo) idleSince(now time.Time) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return now.Sub(l.lastSeen)
}

// IPRateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than the expiration are dropped by a background sweep.
type IPRateLimiter struct {
	rps      int
	limiters sync.Map
}

// NewIPRateLimiter creates a limiter allowing rps requests per second per IP,
// with bursts of rps.
func NewIPRateLimiter(rps int, cleanupInterval, expiration time.Duration) *IPRateLimiter {
	l := &IPRateLimiter{rps: rps}

	go func() {
		for range time.Tick(cleanupInterval) {
			now := time.Now()
			l.limiters.Range(func(key, value interface{}) bool {
				if value.(*limiterInfo).idleSince(now) > expiration {
					l.limiters.Delete(key)
				}
				return true
			})
		}
	}()

	return l
}

// Allow reports whether a request from ip may proceed.
func (l *IPRateLimiter) Allow(ip string) bool {
	// Use LoadOrStore to ensure thread safety
	actual, _ := l.limiters.LoadOrStore(ip, &limiterInfo{
		limiter:  rate.NewLimiter(rate.Limit(l.rps), l.rps),
		lastSeen: time.Now(),
	})

	info := actual.(*limiterInfo)
	info.touch(time.Now())
	return info.limiter.Allow()
}

// Middleware rate limits every request.
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return l.MiddlewareWhen(nil)
}

// MiddlewareWhen rate limits only the requests for which limited returns
// true. A nil predicate limits every request.
func (l *IPRateLimiter) MiddlewareWhen(limited func(c *gin.Context) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limited != nil && !limited(c) {
			c.Next()
			return
		}

		if !l.Allow(c.ClientIP()) {
			// Too many requests
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RateLimitByIP applies rate limiting to requests per IP address.
func RateLimitByIP(rps int, cleanupInterval time.Duration, expiration time.Duration) gin.HandlerFunc {
	return NewIPRateLimiter(rps, cleanupInterval, expiration).Middleware()
}
