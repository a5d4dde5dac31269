package assign

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"gofo-dispatch/internal/apperr"
	"gofo-dispatch/internal/domain"
	"gofo-dispatch/internal/geo"
	"gofo-dispatch/internal/logx"
	"gofo-dispatch/internal/routing"
	"gofo-dispatch/internal/store"
)

type providerMock struct {
	getRoute func(ctx context.Context, from, to domain.Coordinate) (routing.Route, error)
}

func (m *providerMock) GetRoute(ctx context.Context, from, to domain.Coordinate) (routing.Route, error) {
	return m.getRoute(ctx, from, to)
}

// distanceProvider makes route duration proportional to straight-line
// distance, so closer drivers score lower.
func distanceProvider() *providerMock {
	return &providerMock{getRoute: func(ctx context.Context, from, to domain.Coordinate) (routing.Route, error) {
		return routing.Route{DurationSeconds: from.DistanceTo(to) * 3600}, nil
	}}
}

func failingProvider() *providerMock {
	return &providerMock{getRoute: func(ctx context.Context, from, to domain.Coordinate) (routing.Route, error) {
		return routing.Route{}, &routing.ProviderError{Message: "connection refused"}
	}}
}

func newEngine(s Store, p Provider) *Engine {
	return NewEngine(Deps{
		Store:    s,
		Provider: p,
		Fallback: routing.NewEstimator(10, 60, 60),
		Hub:      geo.Hub.Coordinate(),
		Logger:   logx.Nop(),
	})
}

func trenton() domain.Location  { return geo.New().Resolve("Trenton") }
func newarkNJ() domain.Location { return geo.New().Resolve("Newark") }
func camden() domain.Location   { return geo.New().Resolve("Camden") }

func TestEngine_Assign_ProcessesOrdersByPriority(t *testing.T) {
	t.Parallel()

	s := store.New()
	s.AddDriver(domain.Driver{Name: "Ann", Capacity: 10000, Location: geo.Hub})

	add := func(p domain.Priority) domain.Order {
		return s.AddOrder(domain.Order{
			Pickup: trenton(), Destination: camden(), Weight: 100, Priority: p,
		})
	}
	o1 := add(domain.PriorityUrgent)
	o2 := add(domain.PriorityNormal)
	o3 := add(domain.PriorityHigh)
	o4 := add(domain.PriorityUrgent)

	res, err := newEngine(s, distanceProvider()).Assign(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Assignments, 4)

	var got []string
	for _, a := range res.Assignments {
		got = append(got, a.OrderID)
	}
	// Urgent before high before normal, stable among equals.
	require.Equal(t, []string{o1.ID, o4.ID, o3.ID, o2.ID}, got)
}

func TestEngine_Assign_CapacityEligibility(t *testing.T) {
	t.Parallel()

	s := store.New()
	big := s.AddDriver(domain.Driver{Name: "Big", Capacity: 1000, Location: geo.Hub})
	small := s.AddDriver(domain.Driver{Name: "Small", Capacity: 500, Location: geo.Hub})
	o := s.AddOrder(domain.Order{Pickup: trenton(), Destination: camden(), Weight: 600, Priority: domain.PriorityNormal})

	res, err := newEngine(s, distanceProvider()).Assign(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Assignments, 1)
	require.Equal(t, big.ID, res.Assignments[0].DriverID)
	require.Equal(t, o.ID, res.Assignments[0].OrderID)

	gotSmall, _ := res.State.FindDriver(small.ID)
	require.Equal(t, domain.DriverIdle, gotSmall.Status)
}

func TestEngine_Assign_RunningLoadLimitsRepeatAssignments(t *testing.T) {
	t.Parallel()

	s := store.New()
	d := s.AddDriver(domain.Driver{Name: "Ann", Capacity: 1000, Location: geo.Hub})
	s.AddOrder(domain.Order{Pickup: trenton(), Destination: camden(), Weight: 600, Priority: domain.PriorityNormal})
	o2 := s.AddOrder(domain.Order{Pickup: trenton(), Destination: camden(), Weight: 600, Priority: domain.PriorityNormal})

	res, err := newEngine(s, distanceProvider()).Assign(context.Background())
	require.NoError(t, err)

	// Only one 600 fits in a 1000 capacity; the second order stays pending.
	require.Len(t, res.Assignments, 1)
	gotO2, _ := res.State.FindOrder(o2.ID)
	require.Equal(t, domain.OrderPending, gotO2.Status)
	gotD, _ := res.State.FindDriver(d.ID)
	require.Equal(t, domain.DriverAssigned, gotD.Status)
}

func TestEngine_Assign_MultipleOrdersUpToCapacity(t *testing.T) {
	t.Parallel()

	s := store.New()
	d := s.AddDriver(domain.Driver{Name: "Ann", Capacity: 1000, Location: geo.Hub})
	s.AddOrder(domain.Order{Pickup: trenton(), Destination: camden(), Weight: 400, Priority: domain.PriorityNormal})
	s.AddOrder(domain.Order{Pickup: trenton(), Destination: camden(), Weight: 400, Priority: domain.PriorityNormal})

	res, err := newEngine(s, distanceProvider()).Assign(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Assignments, 2)
	for _, a := range res.Assignments {
		require.Equal(t, d.ID, a.DriverID)
	}
}

func TestEngine_Assign_NearestDriverWins(t *testing.T) {
	t.Parallel()

	s := store.New()
	far := s.AddDriver(domain.Driver{Name: "Far", Capacity: 1000, Location: newarkNJ()})
	near := s.AddDriver(domain.Driver{Name: "Near", Capacity: 1000, Location: trenton()})
	s.AddOrder(domain.Order{Pickup: trenton(), Destination: camden(), Weight: 100, Priority: domain.PriorityNormal})

	res, err := newEngine(s, distanceProvider()).Assign(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Assignments, 1)
	require.Equal(t, near.ID, res.Assignments[0].DriverID)

	gotFar, _ := res.State.FindDriver(far.ID)
	require.Equal(t, domain.DriverIdle, gotFar.Status)
}

func TestEngine_Assign_TieGoesToFirstEncountered(t *testing.T) {
	t.Parallel()

	s := store.New()
	first := s.AddDriver(domain.Driver{Name: "First", Capacity: 1000, Location: trenton()})
	s.AddDriver(domain.Driver{Name: "Second", Capacity: 1000, Location: trenton()})
	s.AddOrder(domain.Order{Pickup: trenton(), Destination: camden(), Weight: 100, Priority: domain.PriorityNormal})

	res, err := newEngine(s, distanceProvider()).Assign(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Assignments, 1)
	require.Equal(t, first.ID, res.Assignments[0].DriverID)
}

func TestEngine_Assign_NoIdleDrivers(t *testing.T) {
	t.Parallel()

	s := store.New()
	s.AddDriver(domain.Driver{Name: "Busy", Capacity: 1000, Status: domain.DriverBusy, Location: geo.Hub})
	s.AddOrder(domain.Order{Pickup: trenton(), Destination: camden(), Weight: 100, Priority: domain.PriorityNormal})

	before := s.Snapshot()

	_, err := newEngine(s, distanceProvider()).Assign(context.Background())
	require.ErrorIs(t, err, ErrNoIdleDrivers)
	require.Equal(t, before, s.Snapshot(), "early exit must not mutate the store")
}

func TestEngine_Assign_NoPendingOrders(t *testing.T) {
	t.Parallel()

	s := store.New()
	s.AddDriver(domain.Driver{Name: "Ann", Capacity: 1000, Location: geo.Hub})

	before := s.Snapshot()

	_, err := newEngine(s, distanceProvider()).Assign(context.Background())
	require.ErrorIs(t, err, ErrNoPendingOrders)
	require.Equal(t, before, s.Snapshot())
}

func TestEngine_Assign_ReassignsReleasedWork(t *testing.T) {
	t.Parallel()

	s := store.New()
	d := s.AddDriver(domain.Driver{Name: "Ann", Capacity: 1000, Location: geo.Hub})
	o := s.AddOrder(domain.Order{Pickup: trenton(), Destination: camden(), Weight: 100, Priority: domain.PriorityNormal})
	_, err := s.CommitAssignment(d.ID, o.ID, 15)
	require.NoError(t, err)

	// A fresh batch clears the old assignment and rebuilds from scratch.
	res, err := newEngine(s, distanceProvider()).Assign(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Assignments, 1)
	require.Equal(t, d.ID, res.Assignments[0].DriverID)
	require.Equal(t, o.ID, res.Assignments[0].OrderID)
	require.Len(t, res.State.Assignments, 1)
}

func TestEngine_Assign_FallbackEstimateDeterminism(t *testing.T) {
	t.Parallel()

	s := store.New()
	d := s.AddDriver(domain.Driver{Name: "Ann", Capacity: 1000, Location: geo.Hub})
	pickup := trenton()
	s.AddOrder(domain.Order{Pickup: pickup, Destination: camden(), Weight: 100, Priority: domain.PriorityNormal})

	res, err := newEngine(s, failingProvider()).Assign(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Assignments, 1)

	dist := d.Location.Coordinate().DistanceTo(pickup.Coordinate())
	want := int(math.Round(dist*10)) + 60
	require.Equal(t, want, res.Assignments[0].EstimatedMinutes)
}

type flakyStore struct {
	*store.FleetStore
	failAfter int
	commits   int
}

func (f *flakyStore) CommitAssignment(driverID, orderID string, minutes int) (domain.Assignment, error) {
	f.commits++
	if f.commits > f.failAfter {
		return domain.Assignment{}, errors.New("commit rejected")
	}
	return f.FleetStore.CommitAssignment(driverID, orderID, minutes)
}

func TestEngine_Assign_RollsBackOnStoreFailure(t *testing.T) {
	t.Parallel()

	s := store.New()
	d := s.AddDriver(domain.Driver{Name: "Ann", Capacity: 10000, Location: geo.Hub})
	o := s.AddOrder(domain.Order{Pickup: trenton(), Destination: camden(), Weight: 100, Priority: domain.PriorityNormal})
	s.AddOrder(domain.Order{Pickup: trenton(), Destination: camden(), Weight: 100, Priority: domain.PriorityNormal})

	// Seed an existing assignment so rollback has something nontrivial to
	// put back after the batch's clear.
	_, err := s.CommitAssignment(d.ID, o.ID, 15)
	require.NoError(t, err)
	before := s.Snapshot()

	flaky := &flakyStore{FleetStore: s, failAfter: 1}
	_, err = newEngine(flaky, distanceProvider()).Assign(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoIdleDrivers)

	require.Equal(t, before, s.Snapshot(), "failed batch must restore the pre-batch state")
}

func TestEngine_Assign_CanceledContextRollsBack(t *testing.T) {
	t.Parallel()

	s := store.New()
	s.AddDriver(domain.Driver{Name: "Ann", Capacity: 1000, Location: geo.Hub})
	s.AddOrder(domain.Order{Pickup: trenton(), Destination: camden(), Weight: 100, Priority: domain.PriorityNormal})

	before := s.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newEngine(s, distanceProvider()).Assign(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, before, s.Snapshot())
}

func TestEngine_AssignOne(t *testing.T) {
	t.Parallel()

	s := store.New()
	d := s.AddDriver(domain.Driver{Name: "Ann", Capacity: 1000, Location: geo.Hub})
	o := s.AddOrder(domain.Order{Pickup: trenton(), Destination: camden(), Weight: 100, Priority: domain.PriorityNormal})

	e := newEngine(s, distanceProvider())

	a, err := e.AssignOne(context.Background(), d.ID, o.ID)
	require.NoError(t, err)
	require.Equal(t, d.ID, a.DriverID)
	require.Equal(t, o.ID, a.OrderID)
	require.Positive(t, a.EstimatedMinutes)

	// Same pair twice is rejected by the store.
	_, err = e.AssignOne(context.Background(), d.ID, o.ID)
	require.ErrorIs(t, err, apperr.Conflict)
}

func TestEngine_AssignOne_UnknownIDs(t *testing.T) {
	t.Parallel()

	s := store.New()
	d := s.AddDriver(domain.Driver{Name: "Ann", Capacity: 1000, Location: geo.Hub})

	e := newEngine(s, distanceProvider())

	_, err := e.AssignOne(context.Background(), "D999", "O001")
	require.ErrorIs(t, err, apperr.NotFound)

	_, err = e.AssignOne(context.Background(), d.ID, "O999")
	require.ErrorIs(t, err, apperr.NotFound)
}

func TestEngine_AssignOne_DefaultEstimateWhenProviderFails(t *testing.T) {
	t.Parallel()

	s := store.New()
	d := s.AddDriver(domain.Driver{Name: "Ann", Capacity: 1000, Location: geo.Hub})
	o := s.AddOrder(domain.Order{Pickup: trenton(), Destination: camden(), Weight: 100, Priority: domain.PriorityNormal})

	a, err := newEngine(s, failingProvider()).AssignOne(context.Background(), d.ID, o.ID)
	require.NoError(t, err)
	require.Equal(t, 60, a.EstimatedMinutes)
}
