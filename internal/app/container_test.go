package app

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"gofo-dispatch/internal/config"
	"gofo-dispatch/internal/http/handlers"
	"gofo-dispatch/internal/logx"
	"gofo-dispatch/internal/persist"
	"gofo-dispatch/internal/service/dispatch"
	"gofo-dispatch/internal/store"
	testlog "gofo-dispatch/internal/testutil"
	"gofo-dispatch/internal/transport/kafka"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:      8080,
		PprofPort: 6060,
		RateLimit: config.RateLimit{Enabled: false},
		Routing: config.Routing{
			BaseURL:     "http://127.0.0.1:1",
			APIKey:      "test-key",
			Timeout:     time.Second,
			MaxAttempts: 1,
			BaseDelay:   time.Millisecond,
			MaxDelay:    time.Millisecond,
		},
		Fallback: config.DefaultFallback(),
		Seed:     config.Seed{Drivers: 2, Orders: 3},
		Persist:  config.Persist{Path: filepath.Join(t.TempDir(), "state.json"), Backups: 2},
	}
}

func setupTestContainer(t *testing.T) *dig.Container {
	t.Helper()

	c := dig.New()

	providers := []struct {
		name     string
		provider any
	}{
		{"context", func() context.Context { return context.Background() }},
		{"logger", func() logx.Logger { return testlog.New().Logger() }},
		{"config", func() *config.Config { return testConfig(t) }},
	}

	for _, p := range providers {
		err := c.Provide(p.provider)
		require.NoErrorf(t, err, "provide %s", p.name)
	}

	require.NoError(t, registerFleet(c))
	require.NoError(t, registerEngine(c))
	require.NoError(t, registerService(c))
	require.NoError(t, registerHTTP(c))

	return c
}

func verifyServer(t *testing.T, srv *http.Server) {
	t.Helper()

	require.NotNil(t, srv, "http.Server is nil")
	require.Equal(t, ":8080", srv.Addr)
	require.Greater(t, srv.ReadHeaderTimeout, time.Duration(0))
	require.Greater(t, srv.ReadTimeout, time.Duration(0))
	require.Greater(t, srv.WriteTimeout, time.Duration(0))
	require.Greater(t, srv.IdleTimeout, time.Duration(0))
}

func TestContainer_ProvidesServerAndCollaborators(t *testing.T) {
	c := setupTestContainer(t)

	err := c.Invoke(func(
		srv *http.Server,
		base *handlers.Handlers,
		fleet *handlers.FleetHandler,
		assignH *handlers.AssignHandler,
		svc *dispatch.Service,
		s *store.FleetStore,
		saver *persist.Saver,
		consumer *kafka.Consumer,
	) {
		verifyServer(t, srv)
		require.NotNil(t, base)
		require.NotNil(t, fleet)
		require.NotNil(t, assignH)
		require.NotNil(t, svc)
		require.NotNil(t, s)
		require.NotNil(t, saver)
		require.Nil(t, consumer, "consumer must be nil without brokers")
	})
	require.NoError(t, err)
}

func TestProvideAll_Success(t *testing.T) {
	t.Parallel()

	c := dig.New()

	err := provideAll(c,
		func() context.Context { return context.Background() },
		func() time.Duration { return 3 * time.Second },
	)
	require.NoError(t, err)

	err = c.Invoke(func(ctx context.Context, d time.Duration) {
		require.NotNil(t, ctx)
		require.Equal(t, 3*time.Second, d)
	})
	require.NoError(t, err)
}

func TestProvideAll_InvalidProvider(t *testing.T) {
	t.Parallel()

	c := dig.New()

	type bad struct{}
	err := provideAll(c, bad{})
	require.Error(t, err)
}

func TestContainerBuilder_MustBuild_RegistersWithoutError(t *testing.T) {
	t.Parallel()

	builder := NewContainerBuilder().
		WithLogFatalf(func(format string, args ...interface{}) {
			require.FailNowf(t, "logFatalf must not be called", format, args...)
		})

	c := builder.MustBuild(context.Background())
	require.NotNil(t, c)
}
