// Package ratelimit provides admission-control primitives used to bound
// how frequently a caller may invoke protected operations such as deck
// creation, flashcard creation, and AI generation requests.
//
// Three interchangeable strategies implement the Limiter interface: a
// token bucket (continuous refill, burst friendly), a sliding window
// (gradual recovery as old requests age out), and a no-op used where
// limiting is disabled. Every limiter instance is scoped to a single
// caller identity; the Registry maintains the identity-to-limiter mapping
// with TTL-based eviction so the map cannot grow without bound.
//
// All limiters are safe for concurrent use. TryConsume performs the
// check and the consumption under one lock, so two concurrent callers
// cannot both be admitted on the same last permit.
package ratelimit
