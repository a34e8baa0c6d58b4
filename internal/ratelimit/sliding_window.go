package ratelimit

import (
	"sync"
	"time"
)

// SlidingWindowLimiter admits requests while fewer than maxRequests
// timestamps fall inside the trailing window. Capacity returns only when
// a specific old request ages out of the window, so recovery is gradual
// rather than continuous; callers pick this strategy over the token
// bucket when they want that burst-vs-sustained-rate tradeoff.
// A zero maxRequests always denies.
type SlidingWindowLimiter struct {
	mu sync.Mutex

	maxRequests int
	window      time.Duration
	timestamps  []time.Time

	now func() time.Time // injectable clock for tests
}

// NewSlidingWindowLimiter creates a sliding-window limiter.
func NewSlidingWindowLimiter(maxRequests int, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// prune drops timestamps that have aged out of the window. Caller must
// hold the lock.
func (l *SlidingWindowLimiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	kept := l.timestamps[:0]
	for _, ts := range l.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	l.timestamps = kept
}

// Allow implements Limiter.
func (l *SlidingWindowLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(l.now())
	return len(l.timestamps) < l.maxRequests
}

// Record implements Limiter. Appends weight copies of the current time.
func (l *SlidingWindowLimiter) Record(weight int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)
	for i := 0; i < weight; i++ {
		l.timestamps = append(l.timestamps, now)
	}
}

// TryConsume implements Limiter.
func (l *SlidingWindowLimiter) TryConsume(weight int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)
	if len(l.timestamps) >= l.maxRequests {
		return false
	}
	for i := 0; i < weight; i++ {
		l.timestamps = append(l.timestamps, now)
	}
	return true
}

// RetryAfter implements Limiter. Returns the time until the oldest
// retained request leaves the window, or a negative duration when the
// limiter admits nothing at all.
func (l *SlidingWindowLimiter) RetryAfter() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.maxRequests <= 0 {
		return -1
	}

	now := l.now()
	l.prune(now)
	if len(l.timestamps) < l.maxRequests {
		return 0
	}

	oldest := l.timestamps[0]
	return oldest.Add(l.window).Sub(now)
}
