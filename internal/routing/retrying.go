package routing

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gofo-dispatch/internal/domain"
	"gofo-dispatch/internal/logx"
)

type counter interface {
	Inc()
}

// RetryConfig describes the retry behavior of RetryingProvider.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingProvider retries transient provider failures with exponential
// backoff. Client-side errors are never retried.
type RetryingProvider struct {
	next    Provider
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingProvider checks that next is not nil and returns a RetryingProvider.
func NewRetryingProvider(next Provider, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingProvider {
	if next == nil {
		return nil
	}
	return &RetryingProvider{next: next, logger: logger, retries: retries, cfg: cfg}
}

// GetRoute calls the wrapped provider, retrying transient failures.
func (p *RetryingProvider) GetRoute(ctx context.Context, from, to domain.Coordinate) (Route, error) {
	var lastErr error
	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		route, err := p.next.GetRoute(ctx, from, to)
		if err == nil {
			return route, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == p.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(p.cfg.BaseDelay, p.cfg.MaxDelay, attempt)
		if p.retries != nil {
			p.retries.Inc()
		}
		p.logger.Warn("route provider retry",
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return Route{}, lastErr
}

// isRetryable treats transport failures, rate limiting and server errors as
// transient. A missing API key or a 4xx rejection will not heal on retry.
func isRetryable(err error) bool {
	var perr *ProviderError
	if !errors.As(err, &perr) {
		return false
	}
	switch {
	case perr.StatusCode == 0 && perr.Message == "api key is not configured":
		return false
	case perr.StatusCode == 0:
		return true
	case perr.StatusCode == http.StatusTooManyRequests:
		return true
	case perr.StatusCode >= 500:
		return true
	default:
		return false
	}
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
