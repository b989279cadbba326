package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"paypal-ipn/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Limits for host traffic. Notifications never reach the limiter: the IPN
// listener sits ahead of it and always acknowledges.
const (
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies per-IP token buckets to the routes behind the IPN
// listener.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewRateLimiter starts a cleanup goroutine that stops with ctx.
func NewRateLimiter(ctx context.Context) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
	}
	go rl.cleanupLoop(ctx)
	return rl
}

// getVisitor retrieves or creates a rate limiter for the given key.
func (rl *RateLimiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		rl.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup(visitorTTL)
		}
	}
}

// cleanup removes entries idle for longer than ttl.
func (rl *RateLimiter) cleanup(ttl time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.visitors {
		if time.Since(v.lastSeen) > ttl {
			delete(rl.visitors, key)
		}
	}
}

// Middleware checks if the request is allowed by the rate limiter.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		// e.g. "ip:203.0.113.7"
		key := "ip:" + ip

		if !rl.getVisitor(key, limitGeneral, burstGeneral).Allow() {
			logger.FromCtx(r.Context()).Warn("rate limit exceeded",
				zap.String("ip", ip),
				zap.String("path", r.URL.Path),
			)
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
