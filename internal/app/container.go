// Package app assembles the dispatch service: configuration, logging, the
// fleet store, the assignment engine, persistence, optional Kafka intake and
// the HTTP surface, wired through a dig container.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"gofo-dispatch/internal/config"
	"gofo-dispatch/internal/geo"
	"gofo-dispatch/internal/http/handlers"
	"gofo-dispatch/internal/http/middleware/ratelimit"
	"gofo-dispatch/internal/http/router"
	"gofo-dispatch/internal/logx"
	"gofo-dispatch/internal/metrics"
	"gofo-dispatch/internal/persist"
	"gofo-dispatch/internal/routing"
	"gofo-dispatch/internal/service/assign"
	"gofo-dispatch/internal/service/dispatch"
	"gofo-dispatch/internal/store"
	"gofo-dispatch/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{logFatalf: log.Fatalf}
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerFleet(container); err != nil {
		return nil, fmt.Errorf("fleet: %w", err)
	}
	if err := registerEngine(container); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
	)
}

func registerFleet(container *dig.Container) error {
	return provideAll(container,
		geo.New,
		store.New,
		func(gaz *geo.Gazetteer) *store.Generator {
			return store.NewGenerator(time.Now().UnixNano(), gaz)
		},
		func(cfg *config.Config) *persist.FileStore {
			return persist.NewFileStore(cfg.Persist.Path, cfg.Persist.Backups)
		},
		func(fileStore *persist.FileStore, logger logx.Logger) *persist.Saver {
			return persist.NewSaver(fileStore, logger)
		},
	)
}

func registerEngine(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config, s *store.FleetStore, gaz *geo.Gazetteer, logger logx.Logger) *assign.Engine {
			client := routing.NewClient(
				cfg.Routing.BaseURL,
				cfg.Routing.APIKey,
				&http.Client{Timeout: cfg.Routing.Timeout},
			)

			retries := metrics.NewProviderRetriesTotal()
			fallbacks := metrics.NewFallbackEstimatesTotal()
			committed := metrics.NewAssignmentsCommittedTotal()
			prometheus.MustRegister(retries, fallbacks, committed)

			provider := routing.NewRetryingProvider(client, logger, retries, routing.RetryConfig{
				MaxAttempts: cfg.Routing.MaxAttempts,
				BaseDelay:   cfg.Routing.BaseDelay,
				MaxDelay:    cfg.Routing.MaxDelay,
			})

			return assign.NewEngine(assign.Deps{
				Store:    s,
				Provider: provider,
				Fallback: routing.NewEstimator(
					cfg.Fallback.MinutesPerDegree,
					cfg.Fallback.BaseMinutes,
					cfg.Fallback.DefaultMinutes,
				),
				Hub:               gaz.Hub().Coordinate(),
				Logger:            logger,
				LegTimeout:        cfg.Routing.Timeout,
				FallbackEstimates: fallbacks,
				Committed:         committed,
			})
		},
	)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		func(
			s *store.FleetStore,
			engine *assign.Engine,
			gaz *geo.Gazetteer,
			gen *store.Generator,
			cfg *config.Config,
			logger logx.Logger,
		) *dispatch.Service {
			seed := dispatch.Seed{Drivers: cfg.Seed.Drivers, Orders: cfg.Seed.Orders}
			return dispatch.NewService(s, engine, gaz, gen, seed, logger)
		},
		func(cfg *config.Config, svc *dispatch.Service, logger logx.Logger) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, makeOrderIntake(svc))
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      75 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		func(svc *dispatch.Service) *handlers.FleetHandler { return handlers.NewFleetHandler(svc) },
		func(svc *dispatch.Service) *handlers.AssignHandler { return handlers.NewAssignHandler(svc) },
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		func(
			base *handlers.Handlers,
			fleet *handlers.FleetHandler,
			assignH *handlers.AssignHandler,
			limit *ratelimit.Middleware,
			logger logx.Logger,
		) http.Handler {
			return router.New(router.Deps{
				Base:   base,
				Fleet:  fleet,
				Assign: assignH,
				Limit:  limit,
				Logger: logger,
			})
		},
		serverProvider,
	)
}
