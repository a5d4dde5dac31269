package app

import (
	"github.com/prometheus/client_golang/prometheus"

	"gofo-dispatch/internal/config"
	"gofo-dispatch/internal/http/middleware/ratelimit"
	"gofo-dispatch/internal/logx"
	"gofo-dispatch/internal/metrics"
)

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucketLimiter(clock, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

func newRateLimitMiddleware(logger logx.Logger, limiter ratelimit.Limiter) *ratelimit.Middleware {
	counter := metrics.NewRateLimitExceededTotal()
	prometheus.MustRegister(counter)
	return ratelimit.New(logger, counter, limiter)
}
