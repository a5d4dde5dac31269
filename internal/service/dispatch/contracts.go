package dispatch

import (
	"context"

	"gofo-dispatch/internal/domain"
	"gofo-dispatch/internal/service/assign"
)

// Store is the slice of the fleet store the dispatcher uses.
type Store interface {
	AddDriver(domain.Driver) domain.Driver
	AddOrder(domain.Order) domain.Order
	UpdateDriver(id string, p domain.DriverPatch) (domain.Driver, bool)
	UpdateOrder(id string, p domain.OrderPatch) (domain.Order, bool)
	Snapshot() domain.Snapshot
	Restore(domain.Snapshot)
}

// Engine runs assignment batches and manual pairings.
type Engine interface {
	Assign(ctx context.Context) (assign.BatchResult, error)
	AssignOne(ctx context.Context, driverID, orderID string) (domain.Assignment, error)
}

// Geocoder resolves free-text location names.
type Geocoder interface {
	Resolve(nameOrAddress string) domain.Location
	Hub() domain.Location
}

// Generator produces randomized fleet data.
type Generator interface {
	Driver() domain.Driver
	Order() domain.Order
}
