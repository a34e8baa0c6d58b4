package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(ttl time.Duration, maxEntries int, clock *fakeClock) *Registry {
	r := NewRegistry(func() Limiter {
		return NewTokenBucketLimiter(10, 1)
	}, ttl, maxEntries)
	r.now = clock.Now
	r.lastSweep = clock.Now()
	return r
}

func TestRegistryReturnsSameLimiterPerIdentity(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	r := newTestRegistry(time.Hour, 100, clock)

	first := r.Get("user-a")
	second := r.Get("user-a")
	other := r.Get("user-b")

	assert.Same(t, first, second, "one identity maps to one limiter instance")
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, r.Len())
}

func TestRegistryEvictsIdleEntries(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	r := newTestRegistry(time.Hour, 100, clock)

	stale := r.Get("stale-user")
	clock.Advance(30 * time.Minute)
	r.Get("active-user")

	// active-user was refreshed 30 minutes ago; stale-user is now past
	// the TTL and a sweep drops it on the next lookup.
	clock.Advance(45 * time.Minute)
	fresh := r.Get("active-user")
	_ = fresh

	require.Equal(t, 1, r.Len(), "stale entry should be swept")

	replacement := r.Get("stale-user")
	assert.NotSame(t, stale, replacement, "evicted identity gets a fresh limiter")
}

func TestRegistryBoundsEntryCount(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	r := newTestRegistry(time.Hour, 3, clock)

	for i := 0; i < 10; i++ {
		clock.Advance(time.Millisecond)
		r.Get(fmt.Sprintf("user-%d", i))
	}

	assert.LessOrEqual(t, r.Len(), 3, "registry must respect the entry cap")
}

func TestRegistryDefaults(t *testing.T) {
	t.Parallel()
	r := NewRegistry(func() Limiter { return NewNoopLimiter() }, 0, 0)

	assert.Equal(t, DefaultEntryTTL, r.ttl)
	assert.Equal(t, DefaultMaxEntries, r.maxEntries)
}
