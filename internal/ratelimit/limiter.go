package ratelimit

import "time"

// Limiter is the admission-control contract shared by all strategies.
// Implementations must be safe for concurrent use.
type Limiter interface {
	// Allow reports whether a request would currently be admitted.
	// It does not consume capacity.
	Allow() bool

	// Record consumes capacity for a request that proceeded. The weight
	// is the number of permits consumed; callers normally pass 1.
	Record(weight int)

	// TryConsume atomically checks and consumes in one step: if the
	// request is admitted the capacity is consumed and true is returned,
	// otherwise state is left untouched and false is returned. Prefer
	// this over separate Allow/Record calls under concurrency.
	TryConsume(weight int) bool

	// RetryAfter returns how long a denied caller should wait before the
	// next request could be admitted. Zero means a request would be
	// admitted now; a negative value means capacity will never return
	// (for example a token bucket with zero refill rate).
	RetryAfter() time.Duration
}

// NoopLimiter admits everything. Used where limiting is disabled.
type NoopLimiter struct{}

// NewNoopLimiter returns a limiter that never denies.
func NewNoopLimiter() *NoopLimiter {
	return &NoopLimiter{}
}

// Allow implements Limiter.
func (l *NoopLimiter) Allow() bool { return true }

// Record implements Limiter.
func (l *NoopLimiter) Record(weight int) {}

// TryConsume implements Limiter.
func (l *NoopLimiter) TryConsume(weight int) bool { return true }

// RetryAfter implements Limiter.
func (l *NoopLimiter) RetryAfter() time.Duration { return 0 }

// Ensure all strategies satisfy the interface at compile time.
var (
	_ Limiter = (*NoopLimiter)(nil)
	_ Limiter = (*TokenBucketLimiter)(nil)
	_ Limiter = (*SlidingWindowLimiter)(nil)
)
