package ratelimit

import (
	"sync"
	"time"
)

// Registry defaults. Sweeps run opportunistically during lookups, so a
// quiet registry holds stale entries until the next access rather than
// waking a background goroutine.
const (
	DefaultEntryTTL   = time.Hour
	DefaultMaxEntries = 10000

	sweepInterval = time.Minute
)

type registryEntry struct {
	limiter  Limiter
	lastSeen time.Time
}

// Registry maps caller identities to limiter instances for one protected
// operation. Entries idle longer than the TTL are evicted, and a hard
// cap on entry count bounds memory even under identity churn. Safe for
// concurrent use.
type Registry struct {
	mu sync.Mutex

	newLimiter func() Limiter
	entries    map[string]*registryEntry
	ttl        time.Duration
	maxEntries int
	lastSweep  time.Time

	now func() time.Time // injectable clock for tests
}

// NewRegistry creates a registry that builds limiters with newLimiter on
// first sight of an identity. A non-positive ttl or maxEntries selects
// the package default.
func NewRegistry(newLimiter func() Limiter, ttl time.Duration, maxEntries int) *Registry {
	if ttl <= 0 {
		ttl = DefaultEntryTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	r := &Registry{
		newLimiter: newLimiter,
		entries:    make(map[string]*registryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
	r.lastSweep = r.now()
	return r
}

// Get returns the limiter for the given identity, creating one if the
// identity has not been seen (or its previous entry was evicted).
func (r *Registry) Get(identity string) Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.maybeSweep(now)

	if entry, ok := r.entries[identity]; ok {
		entry.lastSeen = now
		return entry.limiter
	}

	if len(r.entries) >= r.maxEntries {
		r.evictOldest()
	}

	entry := &registryEntry{limiter: r.newLimiter(), lastSeen: now}
	r.entries[identity] = entry
	return entry.limiter
}

// Len returns the current number of tracked identities.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// maybeSweep drops expired entries at most once per sweep interval.
// Caller must hold the lock.
func (r *Registry) maybeSweep(now time.Time) {
	if now.Sub(r.lastSweep) < sweepInterval {
		return
	}
	r.lastSweep = now

	cutoff := now.Add(-r.ttl)
	for identity, entry := range r.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(r.entries, identity)
		}
	}
}

// evictOldest removes the entry idle the longest to make room for a new
// identity. Caller must hold the lock.
func (r *Registry) evictOldest() {
	var oldestKey string
	var oldestSeen time.Time
	first := true
	for identity, entry := range r.entries {
		if first || entry.lastSeen.Before(oldestSeen) {
			oldestKey = identity
			oldestSeen = entry.lastSeen
			first = false
		}
	}
	if !first {
		delete(r.entries, oldestKey)
	}
}
