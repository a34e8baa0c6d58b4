package ratelimit

import (
	"sync"
	"time"
)

// TokenBucketLimiter admits requests while tokens remain in the bucket.
// Tokens refill lazily from elapsed wall-clock time rather than via a
// background timer, and may be fractional so sub-second refill stays
// accurate. A zero refill rate is valid: the bucket never refills and
// acts as a fixed one-time quota.
type TokenBucketLimiter struct {
	mu sync.Mutex

	maxTokens       float64
	refillPerSecond float64
	tokens          float64
	lastRefill      time.Time

	now func() time.Time // injectable clock for tests
}

// NewTokenBucketLimiter creates a token bucket that starts full.
func NewTokenBucketLimiter(maxTokens, refillPerSecond float64) *TokenBucketLimiter {
	l := &TokenBucketLimiter{
		maxTokens:       maxTokens,
		refillPerSecond: refillPerSecond,
		tokens:          maxTokens,
		now:             time.Now,
	}
	l.lastRefill = l.now()
	return l
}

// refill credits tokens for the time elapsed since the last refill,
// capped at maxTokens. Caller must hold the lock. Refill is monotonic:
// a non-advancing clock credits nothing.
func (l *TokenBucketLimiter) refill() {
	now := l.now()
	elapsed := now.Sub(l.lastRefill).Seconds()
	if elapsed > 0 && l.refillPerSecond > 0 {
		l.tokens += elapsed * l.refillPerSecond
		if l.tokens > l.maxTokens {
			l.tokens = l.maxTokens
		}
	}
	l.lastRefill = now
}

// Allow implements Limiter. A request is admitted while at least one
// whole token is available.
func (l *TokenBucketLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	return l.tokens >= 1
}

// Record implements Limiter. Consumes weight tokens, floored at zero so
// the bucket never goes negative.
func (l *TokenBucketLimiter) Record(weight int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	l.tokens -= float64(weight)
	if l.tokens < 0 {
		l.tokens = 0
	}
}

// TryConsume implements Limiter. Check and consumption happen under one
// lock acquisition.
func (l *TokenBucketLimiter) TryConsume(weight int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	need := float64(weight)
	if need < 1 {
		need = 1
	}
	if l.tokens < need {
		return false
	}
	l.tokens -= float64(weight)
	return true
}

// RetryAfter implements Limiter. Returns the time until a whole token
// has refilled, or a negative duration when the bucket never refills.
func (l *TokenBucketLimiter) RetryAfter() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	if l.tokens >= 1 {
		return 0
	}
	if l.refillPerSecond <= 0 {
		return -1
	}

	missing := 1 - l.tokens
	return time.Duration(missing / l.refillPerSecond * float64(time.Second))
}
