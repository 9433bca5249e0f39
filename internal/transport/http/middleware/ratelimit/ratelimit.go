// Package ratelimit provides per-client rate limiting using a token bucket.
package ratelimit

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// bucket represents a token bucket for one client.
type bucket struct {
	tokens   float64
	lastFill time.Time
	mu       sync.Mutex
}

// Limiter tracks request quotas per client IP over a rolling window.
type Limiter struct {
	limit   int
	window  time.Duration
	buckets sync.Map // map[clientIP]*bucket
}

// New creates a limiter allowing limit requests per window per client.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{limit: limit, window: window}
}

// Allow checks if a request from clientIP is allowed under the rate limit.
func (l *Limiter) Allow(clientIP string) bool {
	if l.limit <= 0 {
		return true // 0 = unlimited
	}

	// Get or create bucket for this client
	val, _ := l.buckets.LoadOrStore(clientIP, &bucket{
		tokens:   float64(l.limit),
		lastFill: time.Now(),
	})
	b := val.(*bucket)

	b.mu.Lock()
	defer b.mu.Unlock()

	// Refill tokens based on elapsed time
	now := time.Now()
	elapsed := now.Sub(b.lastFill).Seconds()
	refillRate := float64(l.limit) / l.window.Seconds() // tokens per second
	b.tokens += elapsed * refillRate
	if b.tokens > float64(l.limit) {
		b.tokens = float64(l.limit) // cap at max capacity
	}
	b.lastFill = now

	if b.tokens >= 1.0 {
		b.tokens--
		return true
	}
	return false
}

// Middleware enforces the rate limit for every request it wraps.
func Middleware(limiter *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(ClientIP(r)) {
				writeTooManyRequests(w, limiter.window)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP extracts the client address, honoring X-Forwarded-For when a
// reverse proxy sits in front of the server.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First hop is the original client
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// writeTooManyRequests writes a JSON 429 response.
func writeTooManyRequests(w http.ResponseWriter, window time.Duration) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "Too many requests, please try again later",
	})
}
