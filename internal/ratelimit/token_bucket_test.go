package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock provides a manually advanced clock for limiter tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestBucket(maxTokens, refillPerSecond float64, clock *fakeClock) *TokenBucketLimiter {
	l := NewTokenBucketLimiter(maxTokens, refillPerSecond)
	l.now = clock.Now
	l.lastRefill = clock.Now()
	return l
}

func TestTokenBucketExhaustionAndRefill(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	l := newTestBucket(3, 1, clock)

	// Consume the full bucket.
	for i := 0; i < 3; i++ {
		require.True(t, l.Allow(), "request %d should be admitted", i)
		l.Record(1)
	}
	assert.False(t, l.Allow(), "exhausted bucket must deny")

	// One second refills one token.
	clock.Advance(time.Second)
	assert.True(t, l.Allow())

	// After maxTokens/refillRate seconds the bucket is usable again in full.
	l.Record(1)
	clock.Advance(3 * time.Second)
	for i := 0; i < 3; i++ {
		require.True(t, l.TryConsume(1), "request %d should be admitted after full refill", i)
	}
	assert.False(t, l.TryConsume(1))
}

func TestTokenBucketNeverExceedsMax(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	l := newTestBucket(2, 10, clock)

	// A long wait must not accumulate more than maxTokens.
	clock.Advance(time.Hour)
	assert.True(t, l.TryConsume(1))
	assert.True(t, l.TryConsume(1))
	assert.False(t, l.TryConsume(1))
}

func TestTokenBucketFractionalRefill(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	l := newTestBucket(1, 2, clock)

	require.True(t, l.TryConsume(1))
	require.False(t, l.Allow())

	// 250ms at 2 tokens/sec yields half a token: still below the 1.0
	// admission threshold.
	clock.Advance(250 * time.Millisecond)
	assert.False(t, l.Allow())

	clock.Advance(250 * time.Millisecond)
	assert.True(t, l.Allow())
}

func TestTokenBucketZeroRefillIsFixedQuota(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	l := newTestBucket(2, 0, clock)

	assert.True(t, l.TryConsume(1))
	assert.True(t, l.TryConsume(1))
	assert.False(t, l.TryConsume(1))

	// No amount of waiting restores a zero-rate bucket.
	clock.Advance(24 * time.Hour)
	assert.False(t, l.Allow())
	assert.Negative(t, int64(l.RetryAfter()))
}

func TestTokenBucketRecordFloorsAtZero(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	l := newTestBucket(2, 1, clock)

	// Overweight usage drains to zero, never negative.
	l.Record(10)
	assert.False(t, l.Allow())

	// Refill resumes from zero, not from a deficit.
	clock.Advance(time.Second)
	assert.True(t, l.Allow())
}

func TestTokenBucketRetryAfter(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	l := newTestBucket(1, 1, clock)

	assert.Equal(t, time.Duration(0), l.RetryAfter())

	require.True(t, l.TryConsume(1))
	assert.InDelta(t, time.Second, l.RetryAfter(), float64(time.Millisecond))

	clock.Advance(400 * time.Millisecond)
	assert.InDelta(t, 600*time.Millisecond, l.RetryAfter(), float64(time.Millisecond))
}

func TestTokenBucketTryConsumeIsAtomic(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	l := newTestBucket(5, 0, clock)

	var admitted int64
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.TryConsume(1) {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(5), admitted, "exactly maxTokens callers may win")
}
