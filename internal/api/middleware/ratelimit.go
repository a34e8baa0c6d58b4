package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/cardloop/cardloop-api/internal/api/shared"
	"github.com/cardloop/cardloop-api/internal/ratelimit"
)

// RateLimitMiddleware enforces a per-user limit on one operation. Each
// protected operation gets its own middleware instance with its own
// limiter registry, so deck creation and card creation are throttled
// independently.
type RateLimitMiddleware struct {
	registry  *ratelimit.Registry
	operation string
	logger    *slog.Logger
}

// NewRateLimitMiddleware creates a RateLimitMiddleware for the named
// operation backed by the given registry.
func NewRateLimitMiddleware(registry *ratelimit.Registry, operation string, logger *slog.Logger) *RateLimitMiddleware {
	if registry == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("registry cannot be nil for RateLimitMiddleware")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for RateLimitMiddleware")
	}

	return &RateLimitMiddleware{
		registry:  registry,
		operation: operation,
		logger:    logger.With(slog.String("component", "ratelimit_middleware")),
	}
}

// Limit admits or rejects the request against the caller's limiter. The
// check and consume are a single atomic step, so concurrent requests
// from one user cannot both pass on the same last token. Rejections get
// 429 with a Retry-After header when the limiter can say when capacity
// returns.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := r.RemoteAddr
		if userID, ok := GetUserID(r); ok {
			identity = userID.String()
		}

		limiter := m.registry.Get(identity)
		if !limiter.TryConsume(1) {
			retryAfter := limiter.RetryAfter()
			if retryAfter > 0 {
				seconds := int(math.Ceil(retryAfter.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
			}

			m.logger.Warn("rate limit exceeded",
				slog.String("operation", m.operation),
				slog.String("identity", identity),
				slog.Duration("retry_after", retryAfter))
			shared.RespondWithCodedError(w, r, http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
