package service

import (
	"sync"
	"time"
)

// AttemptLimiter is a per-key token bucket used to throttle login attempts.
// Each failed or attempted login consumes one token; Reset refills the
// bucket after a successful login so a legitimate user is never locked out
// by their own earlier typos. It is safe for concurrent use and cleans up
// stale buckets in the background.
type AttemptLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*attemptBucket
	rate     float64 // tokens added per second
	capacity float64 // maximum tokens
}

type attemptBucket struct {
	tokens float64
	last   time.Time
}

// NewAttemptLimiter creates a limiter that allows up to capacity attempts
// per key, refilling at the given rate (attempts per second). It starts a
// background goroutine that periodically removes stale buckets.
func NewAttemptLimiter(rate, capacity float64) *AttemptLimiter {
	l := &AttemptLimiter{
		buckets:  make(map[string]*attemptBucket),
		rate:     rate,
		capacity: capacity,
	}
	go l.cleanup()
	return l
}

// Allow reports whether the given key may attempt a login. Each call
// consumes one token; returns false when the bucket is empty.
func (l *AttemptLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &attemptBucket{tokens: l.capacity, last: time.Now()}
		l.buckets[key] = b
	}

	now := time.Now()
	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(b.tokens+elapsed*l.rate, l.capacity)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Reset refills the bucket for the given key.
func (l *AttemptLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// cleanup runs periodically and removes buckets that haven't been accessed
// in 10 minutes.
func (l *AttemptLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		l.mu.Lock()
		cutoff := time.Now().Add(-10 * time.Minute)
		for key, b := range l.buckets {
			if b.last.Before(cutoff) {
				delete(l.buckets, key)
			}
		}
		l.mu.Unlock()
	}
}
