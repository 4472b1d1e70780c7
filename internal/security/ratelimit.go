package security

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a fixed-window limiter keyed by client identity.
// It guards the credential endpoints against brute force attempts.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*windowState
	limit   int
	window  time.Duration
}

type windowState struct {
	count       int
	windowStart time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*windowState),
		limit:   limit,
		window:  window,
	}
	go rl.evictStale()
	return rl
}

// Allow reports whether a request from the given key may proceed
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	state, ok := rl.clients[key]
	if !ok || now.Sub(state.windowStart) >= rl.window {
		rl.clients[key] = &windowState{count: 1, windowStart: now}
		return true
	}

	if state.count >= rl.limit {
		return false
	}
	state.count++
	return true
}

// evictStale drops entries whose window has long passed
func (rl *RateLimiter) evictStale() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, state := range rl.clients {
			if now.Sub(state.windowStart) > rl.window*2 {
				delete(rl.clients, key)
			}
		}
		rl.mu.Unlock()
	}
}

// GetClientIP extracts the client IP from the request
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// First hop is the original client
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
