package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"gofo-dispatch/internal/apperr"
	"gofo-dispatch/internal/domain"
	"gofo-dispatch/internal/logx"
	"gofo-dispatch/internal/service/dispatch"
)

type dispatcherMock struct {
	addDriver    func(spec dispatch.DriverSpec) (dispatch.Result, error)
	addOrder     func(spec dispatch.OrderSpec) (dispatch.Result, error)
	updateDriver func(id string, p domain.DriverPatch) (dispatch.Result, error)
	updateOrder  func(id string, p domain.OrderPatch) (dispatch.Result, error)
	assign       func(ctx context.Context, strategy string) (dispatch.Result, error)
	pair         func(ctx context.Context, driverID, orderID string) (dispatch.Result, error)
	queryStatus  func() dispatch.Result
	state        func() domain.Snapshot
	reset        func() dispatch.Result
	generate     func(drivers, orders int) dispatch.Result
}

func (m *dispatcherMock) AddDriver(spec dispatch.DriverSpec) (dispatch.Result, error) {
	return m.addDriver(spec)
}

func (m *dispatcherMock) AddOrder(spec dispatch.OrderSpec) (dispatch.Result, error) {
	return m.addOrder(spec)
}

func (m *dispatcherMock) UpdateDriver(id string, p domain.DriverPatch) (dispatch.Result, error) {
	return m.updateDriver(id, p)
}

func (m *dispatcherMock) UpdateOrder(id string, p domain.OrderPatch) (dispatch.Result, error) {
	return m.updateOrder(id, p)
}

func (m *dispatcherMock) Assign(ctx context.Context, strategy string) (dispatch.Result, error) {
	return m.assign(ctx, strategy)
}

func (m *dispatcherMock) Pair(ctx context.Context, driverID, orderID string) (dispatch.Result, error) {
	return m.pair(ctx, driverID, orderID)
}

func (m *dispatcherMock) QueryStatus() dispatch.Result { return m.queryStatus() }
func (m *dispatcherMock) State() domain.Snapshot       { return m.state() }
func (m *dispatcherMock) Reset() dispatch.Result       { return m.reset() }
func (m *dispatcherMock) Generate(drivers, orders int) dispatch.Result {
	return m.generate(drivers, orders)
}

func TestFleetHandler_CreateDriver(t *testing.T) {
	t.Parallel()

	m := &dispatcherMock{addDriver: func(spec dispatch.DriverSpec) (dispatch.Result, error) {
		require.Equal(t, "Ann", spec.Name)
		require.Equal(t, 1500, spec.Capacity)
		return dispatch.Result{Success: true, Message: "Driver D001 (Ann) added"}, nil
	}}
	h := NewFleetHandler(m)

	body := `{"name":"Ann","capacity":1500,"location":"Trenton","shift_window":"9-17"}`
	r := httptest.NewRequest(http.MethodPost, "/api/drivers", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateDriver(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "D001")
}

func TestFleetHandler_CreateDriver_Invalid(t *testing.T) {
	t.Parallel()

	m := &dispatcherMock{addDriver: func(spec dispatch.DriverSpec) (dispatch.Result, error) {
		return dispatch.Result{}, fmt.Errorf("driver name is required: %w", apperr.Invalid)
	}}
	h := NewFleetHandler(m)

	r := httptest.NewRequest(http.MethodPost, "/api/drivers", strings.NewReader(`{"capacity":10}`))
	w := httptest.NewRecorder()

	h.CreateDriver(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFleetHandler_CreateDriver_BadJSON(t *testing.T) {
	t.Parallel()

	h := NewFleetHandler(&dispatcherMock{})

	r := httptest.NewRequest(http.MethodPost, "/api/drivers", strings.NewReader(`{broken`))
	w := httptest.NewRecorder()

	h.CreateDriver(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "invalid json")
}

func TestFleetHandler_UpdateDriver(t *testing.T) {
	t.Parallel()

	m := &dispatcherMock{updateDriver: func(id string, p domain.DriverPatch) (dispatch.Result, error) {
		require.Equal(t, "D001", id)
		require.NotNil(t, p.Capacity)
		require.Equal(t, 2000, *p.Capacity)
		return dispatch.Result{Success: true}, nil
	}}
	h := NewFleetHandler(m)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "D001")
	r := httptest.NewRequest(http.MethodPut, "/api/drivers/D001", strings.NewReader(`{"capacity":2000}`))
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	h.UpdateDriver(w, r)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestAssignHandler_Batch_EmptyBodyRunsDefault(t *testing.T) {
	t.Parallel()

	m := &dispatcherMock{assign: func(ctx context.Context, strategy string) (dispatch.Result, error) {
		require.Empty(t, strategy)
		return dispatch.Result{Success: true, Message: "Created 2 assignments"}, nil
	}}
	h := NewAssignHandler(m)

	r := httptest.NewRequest(http.MethodPost, "/api/assignments", nil)
	w := httptest.NewRecorder()

	h.Batch(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Created 2 assignments")
}

func TestAssignHandler_Batch_UnknownStrategy(t *testing.T) {
	t.Parallel()

	m := &dispatcherMock{assign: func(ctx context.Context, strategy string) (dispatch.Result, error) {
		return dispatch.Result{}, fmt.Errorf("unknown strategy %q: %w", strategy, apperr.Invalid)
	}}
	h := NewAssignHandler(m)

	r := httptest.NewRequest(http.MethodPost, "/api/assignments", strings.NewReader(`{"strategy":"optimal"}`))
	w := httptest.NewRecorder()

	h.Batch(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssignHandler_Pair_Conflict(t *testing.T) {
	t.Parallel()

	m := &dispatcherMock{pair: func(ctx context.Context, driverID, orderID string) (dispatch.Result, error) {
		return dispatch.Result{}, fmt.Errorf("driver %s already holds order %s: %w", driverID, orderID, apperr.Conflict)
	}}
	h := NewAssignHandler(m)

	r := httptest.NewRequest(http.MethodPost, "/api/assign", strings.NewReader(`{"driver_id":"D001","order_id":"O001"}`))
	w := httptest.NewRecorder()

	h.Pair(w, r)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAssignHandler_Pair_NotFound(t *testing.T) {
	t.Parallel()

	m := &dispatcherMock{pair: func(ctx context.Context, driverID, orderID string) (dispatch.Result, error) {
		return dispatch.Result{}, fmt.Errorf("driver %s: %w", driverID, apperr.NotFound)
	}}
	h := NewAssignHandler(m)

	r := httptest.NewRequest(http.MethodPost, "/api/assign", strings.NewReader(`{"driver_id":"D999","order_id":"O001"}`))
	w := httptest.NewRecorder()

	h.Pair(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignHandler_Generate(t *testing.T) {
	t.Parallel()

	m := &dispatcherMock{generate: func(drivers, orders int) dispatch.Result {
		require.Equal(t, 3, drivers)
		require.Equal(t, 5, orders)
		return dispatch.Result{Success: true}
	}}
	h := NewAssignHandler(m)

	r := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"drivers":3,"orders":5}`))
	w := httptest.NewRecorder()

	h.Generate(w, r)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandlers_Health(t *testing.T) {
	t.Parallel()

	h := New(logx.Nop())

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.Health(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
