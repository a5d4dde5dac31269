// Package assign implements the greedy driver-to-order matcher. Orders are
// taken in priority order and each goes to the idle driver with the smallest
// three-leg route-time estimate whose remaining capacity covers the order's
// weight. A batch run is all-or-nothing: any store-level failure rolls the
// fleet back to its pre-batch snapshot.
package assign

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"gofo-dispatch/internal/apperr"
	"gofo-dispatch/internal/domain"
	"gofo-dispatch/internal/logx"
	"gofo-dispatch/internal/routing"
)

// Batch outcome sentinels. Both mean the store was left untouched.
var (
	ErrNoIdleDrivers   = errors.New("no idle drivers available")
	ErrNoPendingOrders = errors.New("no pending orders")
)

// BatchResult is the outcome of one assignment run.
type BatchResult struct {
	Assignments []domain.Assignment
	State       domain.Snapshot
}

// Deps wires the engine's collaborators.
type Deps struct {
	Store    Store
	Provider Provider
	Fallback Fallback
	Hub      domain.Coordinate
	Logger   logx.Logger

	// LegTimeout bounds each provider call. Zero means no per-leg bound
	// beyond the caller's context.
	LegTimeout time.Duration

	// Optional metric counters.
	FallbackEstimates counter
	Committed         counter
}

// Engine matches idle drivers to pending orders.
type Engine struct {
	deps  Deps
	runMu sync.Mutex
}

// NewEngine checks mandatory collaborators and returns an Engine.
func NewEngine(deps Deps) *Engine {
	if deps.Store == nil || deps.Provider == nil || deps.Fallback == nil {
		return nil
	}
	if deps.Logger == nil {
		deps.Logger = logx.Nop()
	}
	return &Engine{deps: deps}
}

// Assign runs one batch: clear existing assignments, sort pending orders by
// priority, and greedily commit the cheapest eligible driver per order.
// Batches are serialized; concurrent callers queue behind the run mutex.
//
// Provider failures degrade single candidates to the fallback estimate and
// never abort the run. Store failures and cancellation roll the fleet back
// to the pre-batch snapshot.
func (e *Engine) Assign(ctx context.Context) (BatchResult, error) {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	prev := e.deps.Store.Snapshot()

	// Eligibility is judged as of after the clear: assigned drivers and
	// orders are about to be released. The early exits must not mutate,
	// so they are checked against the pre-clear state.
	if !anyDriverReleasable(prev.Drivers) {
		return BatchResult{}, ErrNoIdleDrivers
	}
	if !anyOrderReleasable(prev.Orders) {
		return BatchResult{}, ErrNoPendingOrders
	}

	e.deps.Store.ClearAssignments()
	cur := e.deps.Store.Snapshot()

	var drivers []domain.Driver
	for _, d := range cur.Drivers {
		if d.Status == domain.DriverIdle {
			drivers = append(drivers, d)
		}
	}
	var orders []domain.Order
	for _, o := range cur.Orders {
		if o.Status == domain.OrderPending {
			orders = append(orders, o)
		}
	}

	// Stable: equal priorities keep their original order.
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Priority.Rank() > orders[j].Priority.Rank()
	})

	load := make(map[string]int, len(drivers))
	committed := make([]domain.Assignment, 0, len(orders))

	for _, order := range orders {
		if err := ctx.Err(); err != nil {
			e.deps.Store.Restore(prev)
			return BatchResult{}, fmt.Errorf("assignment run canceled: %w", err)
		}

		var eligible []domain.Driver
		for _, d := range drivers {
			if d.Capacity-load[d.ID] >= order.Weight {
				eligible = append(eligible, d)
			}
		}
		if len(eligible) == 0 {
			e.deps.Logger.Info("order skipped, no driver has remaining capacity",
				logx.String("order_id", order.ID),
				logx.Int("weight", order.Weight),
			)
			continue
		}

		estimates := e.estimateCandidates(ctx, eligible, order)

		best := 0
		for i := 1; i < len(eligible); i++ {
			if estimates[i] < estimates[best] {
				best = i
			}
		}

		a, err := e.deps.Store.CommitAssignment(eligible[best].ID, order.ID, estimates[best])
		if err != nil {
			e.deps.Store.Restore(prev)
			return BatchResult{}, fmt.Errorf("commit assignment: %w", err)
		}
		load[eligible[best].ID] += order.Weight
		committed = append(committed, a)
		if e.deps.Committed != nil {
			e.deps.Committed.Inc()
		}

		e.deps.Logger.Debug("assignment committed",
			logx.String("driver_id", a.DriverID),
			logx.String("order_id", a.OrderID),
			logx.Int("estimated_minutes", a.EstimatedMinutes),
		)
	}

	return BatchResult{Assignments: committed, State: e.deps.Store.Snapshot()}, nil
}

// AssignOne pairs a specific driver with a specific order. The estimate is
// best-effort: if the provider fails the flat default is used.
func (e *Engine) AssignOne(ctx context.Context, driverID, orderID string) (domain.Assignment, error) {
	snap := e.deps.Store.Snapshot()
	driver, ok := snap.FindDriver(driverID)
	if !ok {
		return domain.Assignment{}, fmt.Errorf("driver %s: %w", driverID, apperr.NotFound)
	}
	order, ok := snap.FindOrder(orderID)
	if !ok {
		return domain.Assignment{}, fmt.Errorf("order %s: %w", orderID, apperr.NotFound)
	}

	minutes, err := e.threeLeg(ctx, driver.Location.Coordinate(), order)
	if err != nil {
		e.deps.Logger.Warn("route lookup failed, using default estimate",
			logx.String("driver_id", driverID),
			logx.String("order_id", orderID),
			logx.Any("err", err),
		)
		minutes = e.deps.Fallback.Default()
	}

	a, err := e.deps.Store.CommitAssignment(driverID, orderID, minutes)
	if err != nil {
		return domain.Assignment{}, err
	}
	if e.deps.Committed != nil {
		e.deps.Committed.Inc()
	}
	return a, nil
}

// estimateCandidates scores every eligible driver for one order. Lookups run
// concurrently; results land in a slice indexed like eligible so commit
// ordering stays deterministic.
func (e *Engine) estimateCandidates(ctx context.Context, eligible []domain.Driver, order domain.Order) []int {
	estimates := make([]int, len(eligible))

	var wg sync.WaitGroup
	for i, d := range eligible {
		wg.Add(1)
		go func(i int, d domain.Driver) {
			defer wg.Done()
			minutes, err := e.threeLeg(ctx, d.Location.Coordinate(), order)
			if err != nil {
				minutes = e.deps.Fallback.Estimate(d.Location.Coordinate(), order.Pickup.Coordinate())
				if e.deps.FallbackEstimates != nil {
					e.deps.FallbackEstimates.Inc()
				}
				e.deps.Logger.Warn("route lookup failed, using fallback estimate",
					logx.String("driver_id", d.ID),
					logx.String("order_id", order.ID),
					logx.Int("estimated_minutes", minutes),
					logx.Any("err", err),
				)
			}
			estimates[i] = minutes
		}(i, d)
	}
	wg.Wait()

	return estimates
}

// threeLeg estimates driver → pickup → hub → destination in whole minutes.
func (e *Engine) threeLeg(ctx context.Context, from domain.Coordinate, order domain.Order) (int, error) {
	legs := [][2]domain.Coordinate{
		{from, order.Pickup.Coordinate()},
		{order.Pickup.Coordinate(), e.deps.Hub},
		{e.deps.Hub, order.Destination.Coordinate()},
	}

	var seconds float64
	for _, leg := range legs {
		route, err := e.getRoute(ctx, leg[0], leg[1])
		if err != nil {
			return 0, err
		}
		seconds += route.DurationSeconds
	}
	return int(math.Round(seconds / 60)), nil
}

func (e *Engine) getRoute(ctx context.Context, from, to domain.Coordinate) (routing.Route, error) {
	if e.deps.LegTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.deps.LegTimeout)
		defer cancel()
	}
	return e.deps.Provider.GetRoute(ctx, from, to)
}

func anyDriverReleasable(drivers []domain.Driver) bool {
	for _, d := range drivers {
		if d.Status == domain.DriverIdle || d.Status == domain.DriverAssigned {
			return true
		}
	}
	return false
}

func anyOrderReleasable(orders []domain.Order) bool {
	for _, o := range orders {
		if o.Status == domain.OrderPending || o.Status == domain.OrderAssigned {
			return true
		}
	}
	return false
}
