// Package routing estimates travel time between coordinates, primarily
// through the OpenRouteService directions API with a degraded-mode local
// estimate when the API is unreachable.
package routing

import (
	"context"
	"fmt"

	"gofo-dispatch/internal/domain"
)

// Route is a single driving route between two points.
type Route struct {
	DurationSeconds float64
	DistanceMeters  float64
}

// Provider computes driving routes.
type Provider interface {
	GetRoute(ctx context.Context, from, to domain.Coordinate) (Route, error)
}

// ProviderError reports a failed provider call. StatusCode is zero for
// transport-level failures.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("route provider: %s", e.Message)
	}
	return fmt.Sprintf("route provider: status %d: %s", e.StatusCode, e.Message)
}
