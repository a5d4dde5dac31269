package app

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"time"

	"go.uber.org/dig"

	"gofo-dispatch/internal/config"
	"gofo-dispatch/internal/http/pprofserver"
	"gofo-dispatch/internal/logx"
	"gofo-dispatch/internal/persist"
	"gofo-dispatch/internal/store"
	"gofo-dispatch/internal/transport/kafka"
)

type runIn struct {
	dig.In

	Ctx       context.Context
	Cfg       *config.Config
	Logger    logx.Logger
	Server    *http.Server
	Store     *store.FleetStore
	Generator *store.Generator
	FileStore *persist.FileStore
	Saver     *persist.Saver
	Consumer  *kafka.Consumer `optional:"true"`
}

// MustRun starts the dispatch service using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		bootstrapFleet(in.Cfg, in.Store, in.Generator, in.FileStore, in.Logger)
		in.Store.OnChange(in.Saver.Enqueue)
		go in.Saver.Run(in.Ctx)

		if in.Consumer != nil {
			go func() {
				if err := in.Consumer.Run(in.Ctx); err != nil {
					in.Logger.Error("kafka consumer stopped", logx.Any("err", err))
				}
			}()
		}

		pprof := pprofserver.New(in.Cfg.PprofPort, pprofserver.Config{
			User: in.Cfg.Pprof.User,
			Pass: in.Cfg.Pprof.Pass,
		})
		go func() {
			if err := pprof.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				in.Logger.Error("pprof listen error", logx.Any("err", err))
			}
		}()

		startServer(in.Server, in.Logger)
		waitForShutdown(in.Ctx, in.Logger)
		gracefulShutdown(in.Server, in.Logger, 15*time.Second)
		closeResources(in.Server, pprof, in.Consumer, in.Logger)
		return nil
	})
}

// bootstrapFleet restores the persisted snapshot when one exists, otherwise
// seeds a fresh dataset.
func bootstrapFleet(cfg *config.Config, s *store.FleetStore, gen *store.Generator, file *persist.FileStore, logger logx.Logger) {
	snap, err := file.Load()
	if err == nil {
		s.Restore(snap)
		logger.Info("fleet state restored",
			logx.String("path", cfg.Persist.Path),
			logx.Int("drivers", len(snap.Drivers)),
			logx.Int("orders", len(snap.Orders)),
		)
		return
	}
	if !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("fleet state unreadable, seeding fresh dataset", logx.Any("err", err))
	}

	snap = gen.Populate(s, cfg.Seed.Drivers, cfg.Seed.Orders)
	logger.Info("fleet state seeded",
		logx.Int("drivers", len(snap.Drivers)),
		logx.Int("orders", len(snap.Orders)),
	)
}

func startServer(server *http.Server, logger logx.Logger) {
	go func() {
		logger.Info("dispatchd listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down dispatchd")
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Any("err", err))
	}
}

func closeResources(server *http.Server, pprof *http.Server, consumer *kafka.Consumer, logger logx.Logger) {
	if err := pprof.Close(); err != nil {
		logger.Error("pprof close error", logx.Any("err", err))
	}
	if err := server.Close(); err != nil {
		logger.Error("server close error", logx.Any("err", err))
	}
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("consumer close error", logx.Any("err", err))
		}
	}
}
