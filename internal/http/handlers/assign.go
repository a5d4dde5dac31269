package handlers

import (
	"net/http"
)

// AssignHandler serves the assignment and fleet management endpoints.
type AssignHandler struct{ svc Dispatcher }

// NewAssignHandler wires a Dispatcher into HTTP handlers.
func NewAssignHandler(svc Dispatcher) *AssignHandler { return &AssignHandler{svc: svc} }

// Batch handles POST /api/assignments: one full assignment run. An empty
// body is accepted and runs the default strategy.
func (h *AssignHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if r.ContentLength != 0 {
		if ok := decodeJSON(w, r, &req); !ok {
			return
		}
	}

	res, err := h.svc.Assign(r.Context(), req.Strategy)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Pair handles POST /api/assign: one manual driver-order pairing.
func (h *AssignHandler) Pair(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	res, err := h.svc.Pair(r.Context(), req.DriverID, req.OrderID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Status handles GET /api/status.
func (h *AssignHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.QueryStatus())
}

// Reset handles POST /api/reset: discard the fleet and reseed.
func (h *AssignHandler) Reset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.Reset())
}

// Generate handles POST /api/generate: add random drivers and orders.
func (h *AssignHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if r.ContentLength != 0 {
		if ok := decodeJSON(w, r, &req); !ok {
			return
		}
	}
	writeJSON(w, r, http.StatusOK, h.svc.Generate(req.Drivers, req.Orders))
}
