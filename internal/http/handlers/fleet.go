package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gofo-dispatch/internal/domain"
)

// FleetHandler serves HTTP endpoints for drivers and orders.
type FleetHandler struct{ svc Dispatcher }

// NewFleetHandler wires a Dispatcher into HTTP handlers.
func NewFleetHandler(svc Dispatcher) *FleetHandler { return &FleetHandler{svc: svc} }

// State handles GET /api/state.
func (h *FleetHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.State())
}

// CreateDriver handles POST /api/drivers.
func (h *FleetHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var req driverRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	res, err := h.svc.AddDriver(req.toSpec())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, res)
}

// UpdateDriver handles PUT /api/drivers/{id} with partial updates.
func (h *FleetHandler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	var patch domain.DriverPatch
	if ok := decodeJSON(w, r, &patch); !ok {
		return
	}

	res, err := h.svc.UpdateDriver(id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// CreateOrder handles POST /api/orders.
func (h *FleetHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	res, err := h.svc.AddOrder(req.toSpec())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, res)
}

// UpdateOrder handles PUT /api/orders/{id} with partial updates.
func (h *FleetHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	var patch domain.OrderPatch
	if ok := decodeJSON(w, r, &patch); !ok {
		return
	}

	res, err := h.svc.UpdateOrder(id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}
