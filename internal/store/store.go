// Package store keeps the fleet state in memory behind a mutex. It is the
// single source of truth for drivers, orders and assignments; every mutation
// publishes a fresh snapshot through the change hook so persistence stays
// out of the request path.
package store

import (
	"fmt"
	"sync"
	"time"

	"gofo-dispatch/internal/apperr"
	"gofo-dispatch/internal/domain"
)

// FleetStore is an in-memory fleet state store safe for concurrent use.
type FleetStore struct {
	mu          sync.Mutex
	drivers     []domain.Driver
	orders      []domain.Order
	assignments []domain.Assignment
	onChange    func(domain.Snapshot)
	now         func() time.Time
}

// New creates an empty FleetStore.
func New() *FleetStore {
	return &FleetStore{now: time.Now}
}

// OnChange registers a hook invoked with a snapshot after every mutation.
// The hook runs outside the store lock and must not block.
func (s *FleetStore) OnChange(fn func(domain.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

func (s *FleetStore) notify(snap domain.Snapshot, fn func(domain.Snapshot)) {
	if fn != nil {
		fn(snap)
	}
}

func (s *FleetStore) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		Drivers:     s.drivers,
		Orders:      s.orders,
		Assignments: s.assignments,
	}.Clone()
}

// AddDriver stores a driver under a newly issued id and returns it.
// An empty status defaults to idle.
func (s *FleetStore) AddDriver(d domain.Driver) domain.Driver {
	s.mu.Lock()
	d.ID = fmt.Sprintf("D%03d", len(s.drivers)+1)
	if d.Status == "" {
		d.Status = domain.DriverIdle
	}
	s.drivers = append(s.drivers, d)
	snap, fn := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	s.notify(snap, fn)
	return d
}

// AddOrder stores an order under a newly issued id and returns it.
// An empty status defaults to pending.
func (s *FleetStore) AddOrder(o domain.Order) domain.Order {
	s.mu.Lock()
	o.ID = fmt.Sprintf("O%03d", len(s.orders)+1)
	if o.Status == "" {
		o.Status = domain.OrderPending
	}
	s.orders = append(s.orders, o)
	snap, fn := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	s.notify(snap, fn)
	return o
}

// UpdateDriver applies the patch to the driver with the given id. Unknown
// ids are a no-op and report false.
func (s *FleetStore) UpdateDriver(id string, p domain.DriverPatch) (domain.Driver, bool) {
	s.mu.Lock()
	idx := -1
	for i := range s.drivers {
		if s.drivers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.Driver{}, false
	}

	d := &s.drivers[idx]
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Capacity != nil {
		d.Capacity = *p.Capacity
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.Location != nil {
		d.Location = *p.Location
	}
	if p.ShiftWindow != nil {
		d.ShiftWindow = domain.NormalizeShiftWindow(*p.ShiftWindow)
	}
	updated := *d
	snap, fn := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	s.notify(snap, fn)
	return updated, true
}

// UpdateOrder applies the patch to the order with the given id. Unknown
// ids are a no-op and report false.
func (s *FleetStore) UpdateOrder(id string, p domain.OrderPatch) (domain.Order, bool) {
	s.mu.Lock()
	idx := -1
	for i := range s.orders {
		if s.orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.Order{}, false
	}

	o := &s.orders[idx]
	if p.Pickup != nil {
		o.Pickup = *p.Pickup
	}
	if p.Destination != nil {
		o.Destination = *p.Destination
	}
	if p.Weight != nil {
		o.Weight = *p.Weight
	}
	if p.Volume != nil {
		o.Volume = *p.Volume
	}
	if p.Contact != nil {
		o.Contact = *p.Contact
	}
	if p.Priority != nil {
		o.Priority = *p.Priority
	}
	if p.TimeWindow != nil {
		o.TimeWindow = *p.TimeWindow
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	updated := *o
	snap, fn := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	s.notify(snap, fn)
	return updated, true
}

// CommitAssignment records an assignment and flips the driver to assigned
// and the order to assigned. The (driver, order) pair must be unique among
// active assignments.
func (s *FleetStore) CommitAssignment(driverID, orderID string, minutes int) (domain.Assignment, error) {
	s.mu.Lock()

	var driver *domain.Driver
	for i := range s.drivers {
		if s.drivers[i].ID == driverID {
			driver = &s.drivers[i]
			break
		}
	}
	if driver == nil {
		s.mu.Unlock()
		return domain.Assignment{}, fmt.Errorf("driver %s: %w", driverID, apperr.NotFound)
	}

	var order *domain.Order
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			order = &s.orders[i]
			break
		}
	}
	if order == nil {
		s.mu.Unlock()
		return domain.Assignment{}, fmt.Errorf("order %s: %w", orderID, apperr.NotFound)
	}

	for _, a := range s.assignments {
		if a.DriverID == driverID && a.OrderID == orderID && a.Active() {
			s.mu.Unlock()
			return domain.Assignment{}, fmt.Errorf("driver %s already holds order %s: %w", driverID, orderID, apperr.Conflict)
		}
	}

	a := domain.Assignment{
		ID:               fmt.Sprintf("A%03d", len(s.assignments)+1),
		DriverID:         driverID,
		OrderID:          orderID,
		EstimatedMinutes: minutes,
		Status:           domain.AssignmentActive,
		CreatedAt:        s.now().UTC(),
	}
	s.assignments = append(s.assignments, a)
	if driver.Status == domain.DriverIdle {
		driver.Status = domain.DriverAssigned
	}
	order.Status = domain.OrderAssigned

	snap, fn := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	s.notify(snap, fn)
	return a, nil
}

// ClearAssignments drops all assignments and releases their participants:
// assigned drivers go back to idle and assigned orders back to pending.
// Busy drivers and completed orders keep their status.
func (s *FleetStore) ClearAssignments() {
	s.mu.Lock()
	s.assignments = nil
	for i := range s.drivers {
		if s.drivers[i].Status == domain.DriverAssigned {
			s.drivers[i].Status = domain.DriverIdle
		}
	}
	for i := range s.orders {
		if s.orders[i].Status == domain.OrderAssigned {
			s.orders[i].Status = domain.OrderPending
		}
	}
	snap, fn := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	s.notify(snap, fn)
}

// Snapshot returns a deep copy of the current state.
func (s *FleetStore) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Restore replaces the entire state with the given snapshot.
func (s *FleetStore) Restore(snap domain.Snapshot) {
	c := snap.Clone()
	s.mu.Lock()
	s.drivers = c.Drivers
	s.orders = c.Orders
	s.assignments = c.Assignments
	out, fn := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	s.notify(out, fn)
}
