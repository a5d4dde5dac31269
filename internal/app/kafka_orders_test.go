package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gofo-dispatch/internal/apperr"
	"gofo-dispatch/internal/domain"
	"gofo-dispatch/internal/geo"
	"gofo-dispatch/internal/service/assign"
	"gofo-dispatch/internal/service/dispatch"
	"gofo-dispatch/internal/store"
	testlog "gofo-dispatch/internal/testutil"
)

type engineStub struct{}

func (engineStub) Assign(context.Context) (assign.BatchResult, error) {
	return assign.BatchResult{}, nil
}

func (engineStub) AssignOne(context.Context, string, string) (domain.Assignment, error) {
	return domain.Assignment{}, nil
}

func newIntakeService(t *testing.T) (*dispatch.Service, *store.FleetStore) {
	t.Helper()

	s := store.New()
	gaz := geo.New()
	gen := store.NewGenerator(1, gaz)

	svc := dispatch.NewService(s, engineStub{}, gaz, gen, dispatch.Seed{}, testlog.New().Logger())
	require.NotNil(t, svc)
	return svc, s
}

func TestMakeOrderIntake_AddsOrder(t *testing.T) {
	t.Parallel()

	svc, s := newIntakeService(t)
	h := makeOrderIntake(svc)

	err := h(context.Background(), dispatch.OrderSpec{
		Pickup:      "Trenton",
		Destination: "Newark",
		Weight:      300,
		Priority:    "urgent",
	})
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap.Orders, 1)
	require.Equal(t, domain.PriorityUrgent, snap.Orders[0].Priority)
	require.Equal(t, domain.OrderPending, snap.Orders[0].Status)
}

func TestMakeOrderIntake_InvalidSpec_ReturnsError(t *testing.T) {
	t.Parallel()

	svc, s := newIntakeService(t)
	h := makeOrderIntake(svc)

	err := h(context.Background(), dispatch.OrderSpec{Weight: 100})
	require.ErrorIs(t, err, apperr.Invalid)
	require.Empty(t, s.Snapshot().Orders)
}
