package app

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"service-courier-panel/internal/config"
	"service-courier-panel/internal/http/middleware/ratelimit"
	"service-courier-panel/internal/logx"
	"service-courier-panel/internal/metrics"
)

// ratelimitMiddleware wraps the optional rate limit handler so dig has a
// concrete type to provide.
type ratelimitMiddleware struct {
	mw      *ratelimit.Middleware
	enabled bool
}

func (m *ratelimitMiddleware) handler() func(http.Handler) http.Handler {
	if m == nil || !m.enabled {
		return nil
	}
	return m.mw.Handler()
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucketPerWindow(clock, rl.Max, rl.Window, rl.TTL, rl.MaxBuckets)
}

func newRateLimitMiddleware(cfg *config.Config, logger logx.Logger, limiter ratelimit.Limiter) *ratelimitMiddleware {
	counter := metrics.NewRateLimitExceededTotal()
	if err := prometheus.Register(counter); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			counter = are.ExistingCollector.(prometheus.Counter)
		}
	}
	return &ratelimitMiddleware{
		mw:      ratelimit.New(logger, counter, limiter),
		enabled: cfg.RateLimit.Enabled,
	}
}
