package handlers

import (
	"context"

	"gofo-dispatch/internal/domain"
	"gofo-dispatch/internal/service/dispatch"
)

// Dispatcher is the operation set the HTTP layer exposes.
type Dispatcher interface {
	AddDriver(spec dispatch.DriverSpec) (dispatch.Result, error)
	AddOrder(spec dispatch.OrderSpec) (dispatch.Result, error)
	UpdateDriver(id string, p domain.DriverPatch) (dispatch.Result, error)
	UpdateOrder(id string, p domain.OrderPatch) (dispatch.Result, error)
	Assign(ctx context.Context, strategy string) (dispatch.Result, error)
	Pair(ctx context.Context, driverID, orderID string) (dispatch.Result, error)
	QueryStatus() dispatch.Result
	State() domain.Snapshot
	Reset() dispatch.Result
	Generate(drivers, orders int) dispatch.Result
}
