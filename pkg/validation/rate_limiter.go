// Package validation guards the SSH front end: it throttles new sessions per
// remote host and sanitises client-supplied strings before they are logged.
package validation

import (
	"sync"
	"time"
)

// RateLimiter is a token bucket per client. Buckets refill continuously and
// idle ones are pruned lazily on Allow.
type RateLimiter struct {
	capacity float64
	window   time.Duration
	now      func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastPrune time.Time
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// NewRateLimiter allows maxRequests per window for each client. A
// non-positive maxRequests disables limiting.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		capacity: float64(maxRequests),
		window:   window,
		now:      time.Now,
		buckets:  make(map[string]*bucket),
	}
}

// Allow takes a token for clientID and reports whether one was available
func (rl *RateLimiter) Allow(clientID string) bool {
	if rl == nil || rl.capacity <= 0 {
		return true
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.prune(now)

	b, ok := rl.buckets[clientID]
	if !ok {
		b = &bucket{tokens: rl.capacity, seen: now}
		rl.buckets[clientID] = b
	}
	b.tokens += rl.capacity * float64(now.Sub(b.seen)) / float64(rl.window)
	if b.tokens > rl.capacity {
		b.tokens = rl.capacity
	}
	b.seen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// prune drops buckets that have refilled completely, at most once a window
func (rl *RateLimiter) prune(now time.Time) {
	if now.Sub(rl.lastPrune) < rl.window {
		return
	}
	rl.lastPrune = now
	for id, b := range rl.buckets {
		if now.Sub(b.seen) >= rl.window {
			delete(rl.buckets, id)
		}
	}
}

// Clients returns how many clients are being tracked
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}
