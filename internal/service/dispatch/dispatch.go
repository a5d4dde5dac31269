// Package dispatch exposes the fixed operation set of the dispatch service:
// add or update drivers and orders, run an assignment batch, pair a single
// driver with a single order, query fleet status, reset and bulk-generate.
// Every operation returns a Result with an explicit success flag, a
// human-readable message and the resulting fleet snapshot.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gofo-dispatch/internal/apperr"
	"gofo-dispatch/internal/domain"
	"gofo-dispatch/internal/logx"
	"gofo-dispatch/internal/service/assign"
)

// Default dataset sizes for bulk generation.
const (
	DefaultGenerateDrivers = 10
	DefaultGenerateOrders  = 20
)

// DriverSpec is the caller-facing shape for creating a driver.
type DriverSpec struct {
	Name        string
	Capacity    int
	Location    string
	ShiftWindow string
}

// OrderSpec is the caller-facing shape for creating an order.
type OrderSpec struct {
	Pickup      string
	Destination string
	Weight      int
	Volume      int
	Contact     string
	Priority    string
	TimeWindow  string
}

// Stats summarizes the fleet by status.
type Stats struct {
	DriversTotal      int `json:"drivers_total"`
	DriversIdle       int `json:"drivers_idle"`
	DriversAssigned   int `json:"drivers_assigned"`
	DriversBusy       int `json:"drivers_busy"`
	OrdersTotal       int `json:"orders_total"`
	OrdersPending     int `json:"orders_pending"`
	OrdersAssigned    int `json:"orders_assigned"`
	OrdersCompleted   int `json:"orders_completed"`
	AssignmentsActive int `json:"assignments_active"`
}

// Result is the uniform outcome of every dispatcher operation.
type Result struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	RunID       string              `json:"run_id,omitempty"`
	Assignments []domain.Assignment `json:"assignments,omitempty"`
	Stats       *Stats              `json:"stats,omitempty"`
	State       domain.Snapshot     `json:"state"`
}

// Seed configures how many drivers and orders a reset regenerates.
type Seed struct {
	Drivers int
	Orders  int
}

// Service implements the dispatcher operations.
type Service struct {
	store  Store
	engine Engine
	geo    Geocoder
	gen    Generator
	seed   Seed
	logger logx.Logger
}

// NewService checks mandatory collaborators and returns a Service.
func NewService(store Store, engine Engine, geo Geocoder, gen Generator, seed Seed, logger logx.Logger) *Service {
	if store == nil || engine == nil || geo == nil || gen == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{store: store, engine: engine, geo: geo, gen: gen, seed: seed, logger: logger}
}

// AddDriver validates the spec, resolves the location and stores the driver.
// A zero capacity is rejected; an empty location places the driver at the hub.
func (s *Service) AddDriver(spec DriverSpec) (Result, error) {
	if spec.Name == "" {
		return Result{}, fmt.Errorf("driver name is required: %w", apperr.Invalid)
	}
	if spec.Capacity <= 0 {
		return Result{}, fmt.Errorf("driver capacity must be positive: %w", apperr.Invalid)
	}

	d := s.store.AddDriver(domain.Driver{
		Name:        spec.Name,
		Capacity:    spec.Capacity,
		Status:      domain.DriverIdle,
		Location:    s.geo.Resolve(spec.Location),
		ShiftWindow: domain.NormalizeShiftWindow(spec.ShiftWindow),
	})
	s.logger.Info("driver added", logx.String("driver_id", d.ID), logx.String("name", d.Name))

	return Result{
		Success: true,
		Message: fmt.Sprintf("Driver %s (%s) added", d.ID, d.Name),
		State:   s.store.Snapshot(),
	}, nil
}

// AddOrder validates the spec, resolves both locations and stores the order.
// A missing destination defaults to the hub; a missing priority to normal.
func (s *Service) AddOrder(spec OrderSpec) (Result, error) {
	if spec.Pickup == "" {
		return Result{}, fmt.Errorf("order pickup location is required: %w", apperr.Invalid)
	}
	if spec.Weight <= 0 {
		return Result{}, fmt.Errorf("order weight must be positive: %w", apperr.Invalid)
	}
	priority := domain.Priority(spec.Priority)
	if spec.Priority == "" {
		priority = domain.PriorityNormal
	}
	if !priority.Valid() {
		return Result{}, fmt.Errorf("unknown priority %q: %w", spec.Priority, apperr.Invalid)
	}

	destination := s.geo.Hub()
	if spec.Destination != "" {
		destination = s.geo.Resolve(spec.Destination)
	}

	o := s.store.AddOrder(domain.Order{
		Pickup:      s.geo.Resolve(spec.Pickup),
		Destination: destination,
		Weight:      spec.Weight,
		Volume:      spec.Volume,
		Contact:     spec.Contact,
		Priority:    priority,
		TimeWindow:  spec.TimeWindow,
		Status:      domain.OrderPending,
	})
	s.logger.Info("order added", logx.String("order_id", o.ID), logx.String("priority", string(o.Priority)))

	return Result{
		Success: true,
		Message: fmt.Sprintf("Order %s added, pickup at %s", o.ID, o.Pickup.Address),
		State:   s.store.Snapshot(),
	}, nil
}

// UpdateDriver applies a partial update. Unknown ids are lenient: the state
// is returned unchanged with success=false.
func (s *Service) UpdateDriver(id string, p domain.DriverPatch) (Result, error) {
	if p.Status != nil && !p.Status.Valid() {
		return Result{}, fmt.Errorf("unknown driver status %q: %w", *p.Status, apperr.Invalid)
	}
	d, ok := s.store.UpdateDriver(id, p)
	if !ok {
		return Result{
			Message: fmt.Sprintf("Driver %s not found, state unchanged", id),
			State:   s.store.Snapshot(),
		}, nil
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Driver %s updated", d.ID),
		State:   s.store.Snapshot(),
	}, nil
}

// UpdateOrder applies a partial update. Unknown ids are lenient: the state
// is returned unchanged with success=false.
func (s *Service) UpdateOrder(id string, p domain.OrderPatch) (Result, error) {
	if p.Status != nil && !p.Status.Valid() {
		return Result{}, fmt.Errorf("unknown order status %q: %w", *p.Status, apperr.Invalid)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return Result{}, fmt.Errorf("unknown priority %q: %w", *p.Priority, apperr.Invalid)
	}
	o, ok := s.store.UpdateOrder(id, p)
	if !ok {
		return Result{
			Message: fmt.Sprintf("Order %s not found, state unchanged", id),
			State:   s.store.Snapshot(),
		}, nil
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Order %s updated", o.ID),
		State:   s.store.Snapshot(),
	}, nil
}

// Assign runs one assignment batch. An empty strategy defaults to greedy;
// the named variants are accepted but all run the same greedy pass. Runs
// that find no work report success=false without an error.
func (s *Service) Assign(ctx context.Context, strategy string) (Result, error) {
	st := domain.Strategy(strategy)
	if strategy == "" {
		st = domain.StrategyGreedy
	}
	if !st.Valid() {
		return Result{}, fmt.Errorf("unknown strategy %q: %w", strategy, apperr.Invalid)
	}

	runID := uuid.NewString()
	log := s.logger.With(logx.String("run_id", runID), logx.String("strategy", string(st)))

	res, err := s.engine.Assign(ctx)
	switch {
	case errors.Is(err, assign.ErrNoIdleDrivers):
		return Result{
			Message: "No idle drivers available",
			RunID:   runID,
			State:   s.store.Snapshot(),
		}, nil
	case errors.Is(err, assign.ErrNoPendingOrders):
		return Result{
			Message: "No pending orders to assign",
			RunID:   runID,
			State:   s.store.Snapshot(),
		}, nil
	case err != nil:
		log.Error("assignment batch failed", logx.Any("err", err))
		return Result{}, err
	}

	log.Info("assignment batch completed", logx.Int("assignments", len(res.Assignments)))

	return Result{
		Success:     true,
		Message:     fmt.Sprintf("Created %d assignments", len(res.Assignments)),
		RunID:       runID,
		Assignments: res.Assignments,
		State:       res.State,
	}, nil
}

// Pair assigns one specific order to one specific driver.
func (s *Service) Pair(ctx context.Context, driverID, orderID string) (Result, error) {
	if driverID == "" || orderID == "" {
		return Result{}, fmt.Errorf("driver id and order id are required: %w", apperr.Invalid)
	}

	a, err := s.engine.AssignOne(ctx, driverID, orderID)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Success:     true,
		Message:     fmt.Sprintf("Assigned order %s to driver %s, ETA %d min", a.OrderID, a.DriverID, a.EstimatedMinutes),
		Assignments: []domain.Assignment{a},
		State:       s.store.Snapshot(),
	}, nil
}

// QueryStatus summarizes the fleet.
func (s *Service) QueryStatus() Result {
	snap := s.store.Snapshot()
	stats := summarize(snap)
	return Result{
		Success: true,
		Message: fmt.Sprintf("%d drivers (%d idle), %d orders (%d pending), %d active assignments",
			stats.DriversTotal, stats.DriversIdle, stats.OrdersTotal, stats.OrdersPending, stats.AssignmentsActive),
		Stats: &stats,
		State: snap,
	}
}

// State returns the current snapshot without any summary.
func (s *Service) State() domain.Snapshot {
	return s.store.Snapshot()
}

// Reset discards the fleet and regenerates the configured seed dataset.
func (s *Service) Reset() Result {
	s.store.Restore(domain.Snapshot{})
	for i := 0; i < s.seed.Drivers; i++ {
		s.store.AddDriver(s.gen.Driver())
	}
	for i := 0; i < s.seed.Orders; i++ {
		s.store.AddOrder(s.gen.Order())
	}
	s.logger.Info("fleet reset",
		logx.Int("drivers", s.seed.Drivers),
		logx.Int("orders", s.seed.Orders),
	)
	return Result{
		Success: true,
		Message: fmt.Sprintf("Fleet reset with %d drivers and %d orders", s.seed.Drivers, s.seed.Orders),
		State:   s.store.Snapshot(),
	}
}

// Generate adds random drivers and orders on top of the current fleet.
// Non-positive counts fall back to the defaults.
func (s *Service) Generate(drivers, orders int) Result {
	if drivers <= 0 {
		drivers = DefaultGenerateDrivers
	}
	if orders <= 0 {
		orders = DefaultGenerateOrders
	}
	for i := 0; i < drivers; i++ {
		s.store.AddDriver(s.gen.Driver())
	}
	for i := 0; i < orders; i++ {
		s.store.AddOrder(s.gen.Order())
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Generated %d drivers and %d orders", drivers, orders),
		State:   s.store.Snapshot(),
	}
}

func summarize(snap domain.Snapshot) Stats {
	stats := Stats{
		DriversTotal: len(snap.Drivers),
		OrdersTotal:  len(snap.Orders),
	}
	for _, d := range snap.Drivers {
		switch d.Status {
		case domain.DriverIdle:
			stats.DriversIdle++
		case domain.DriverAssigned:
			stats.DriversAssigned++
		case domain.DriverBusy:
			stats.DriversBusy++
		}
	}
	for _, o := range snap.Orders {
		switch o.Status {
		case domain.OrderPending:
			stats.OrdersPending++
		case domain.OrderAssigned:
			stats.OrdersAssigned++
		case domain.OrderCompleted:
			stats.OrdersCompleted++
		}
	}
	for _, a := range snap.Assignments {
		if a.Active() {
			stats.AssignmentsActive++
		}
	}
	return stats
}
