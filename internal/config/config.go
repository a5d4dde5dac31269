package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores dispatch service settings.
type Config struct {
	Port      int
	PprofPort int
	Pprof     Pprof
	RateLimit RateLimit
	Routing   Routing
	Fallback  Fallback
	Seed      Seed
	Persist   Persist
	Kafka     Kafka
}

// Pprof configures basic auth for non-loopback profiler access.
type Pprof struct {
	User string
	Pass string
}

// RateLimit configures the per-client HTTP rate limiter.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Routing configures the external route time provider.
type Routing struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Fallback configures the degraded-mode estimate used when the route
// provider is unavailable.
type Fallback struct {
	MinutesPerDegree float64
	BaseMinutes      int
	DefaultMinutes   int
}

// Seed configures the generated startup dataset.
type Seed struct {
	Drivers int
	Orders  int
}

// Persist configures snapshot persistence.
type Persist struct {
	Path    string
	Backups int
}

// Kafka configures the optional order intake consumer. Empty Brokers
// disables the consumer.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      DefaultPort(),
		PprofPort: DefaultPprofPort(),
		RateLimit: DefaultRateLimit(),
		Routing:   DefaultRouting(),
		Fallback:  DefaultFallback(),
		Seed:      DefaultSeed(),
		Persist:   DefaultPersist(),
		Kafka:     DefaultKafka(),
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}
	if cfg.PprofPort, err = envInt("PPROF_PORT", cfg.PprofPort); err != nil {
		return nil, err
	}
	cfg.Routing.BaseURL = envString("ORS_BASE_URL", cfg.Routing.BaseURL)
	cfg.Routing.APIKey = envString("ORS_API_KEY", cfg.Routing.APIKey)
	if cfg.Routing.Timeout, err = envDuration("ORS_TIMEOUT", cfg.Routing.Timeout); err != nil {
		return nil, err
	}
	if cfg.Seed.Drivers, err = envInt("SEED_DRIVERS", cfg.Seed.Drivers); err != nil {
		return nil, err
	}
	if cfg.Seed.Orders, err = envInt("SEED_ORDERS", cfg.Seed.Orders); err != nil {
		return nil, err
	}
	cfg.Pprof.User = envString("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envString("PPROF_PASS", cfg.Pprof.Pass)
	if cfg.RateLimit.Enabled, err = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled); err != nil {
		return nil, err
	}
	cfg.Persist.Path = envString("STATE_FILE", cfg.Persist.Path)
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	cfg.Kafka.GroupID = envString("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.Topic = envString("KAFKA_TOPIC", cfg.Kafka.Topic)

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.Persist.Path, "state-file", cfg.Persist.Path, "path to the persisted fleet snapshot")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Seed.Drivers < 0 || cfg.Seed.Orders < 0 {
		return nil, fmt.Errorf("invalid seed sizes: %d drivers, %d orders", cfg.Seed.Drivers, cfg.Seed.Orders)
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
