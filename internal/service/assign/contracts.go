package assign

import (
	"context"

	"gofo-dispatch/internal/domain"
	"gofo-dispatch/internal/routing"
)

// Store is the slice of the fleet store the engine mutates.
type Store interface {
	Snapshot() domain.Snapshot
	ClearAssignments()
	CommitAssignment(driverID, orderID string, minutes int) (domain.Assignment, error)
	Restore(domain.Snapshot)
}

// Provider computes driving routes between two coordinates.
type Provider interface {
	GetRoute(ctx context.Context, from, to domain.Coordinate) (routing.Route, error)
}

// Fallback produces degraded-mode travel-time estimates.
type Fallback interface {
	Estimate(from, to domain.Coordinate) int
	Default() int
}

type counter interface {
	Inc()
}
