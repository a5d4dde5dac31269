package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gofo-dispatch/internal/http/handlers"
	mw "gofo-dispatch/internal/http/middleware"
	"gofo-dispatch/internal/http/middleware/ratelimit"
	"gofo-dispatch/internal/logx"
)

// Deps collects everything the router mounts.
type Deps struct {
	Base   *handlers.Handlers
	Fleet  *handlers.FleetHandler
	Assign *handlers.AssignHandler
	Limit  *ratelimit.Middleware
	Logger logx.Logger
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(mw.Observability(d.Logger))
	if d.Limit != nil {
		r.Use(d.Limit.Handler())
	}
	// Batch runs issue many provider calls; the timeout covers the worst case.
	r.Use(chimw.Timeout(60 * time.Second))

	r.Get("/health", d.Base.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", d.Fleet.State)
		r.Post("/drivers", d.Fleet.CreateDriver)
		r.Put("/drivers/{id}", d.Fleet.UpdateDriver)
		r.Post("/orders", d.Fleet.CreateOrder)
		r.Put("/orders/{id}", d.Fleet.UpdateOrder)

		r.Post("/assignments", d.Assign.Batch)
		r.Post("/assign", d.Assign.Pair)
		r.Get("/status", d.Assign.Status)
		r.Post("/reset", d.Assign.Reset)
		r.Post("/generate", d.Assign.Generate)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
