package config

import "time"

const (
	defaultPort      = 8080
	defaultPprofPort = 6060
)

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       50,
	Burst:      100,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultRouting = Routing{
	BaseURL:     "https://api.openrouteservice.org",
	Timeout:     5 * time.Second,
	MaxAttempts: 3,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

var defaultFallback = Fallback{
	MinutesPerDegree: 10,
	BaseMinutes:      60,
	DefaultMinutes:   60,
}

var defaultSeed = Seed{
	Drivers: 20,
	Orders:  25,
}

var defaultPersist = Persist{
	Path:    "fleet_state.json",
	Backups: 5,
}

var defaultKafka = Kafka{
	GroupID: "dispatch",
	Topic:   "orders.incoming",
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int {
	return defaultPort
}

// DefaultPprofPort returns the default pprof port.
func DefaultPprofPort() int {
	return defaultPprofPort
}

// DefaultRateLimit returns the default rate limiter settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultRouting returns the default route provider settings.
func DefaultRouting() Routing {
	return defaultRouting
}

// DefaultFallback returns the default degraded-mode estimate settings.
func DefaultFallback() Fallback {
	return defaultFallback
}

// DefaultSeed returns the default seed dataset sizes.
func DefaultSeed() Seed {
	return defaultSeed
}

// DefaultPersist returns the default persistence settings.
func DefaultPersist() Persist {
	return defaultPersist
}

// DefaultKafka returns the default order intake settings.
func DefaultKafka() Kafka {
	return defaultKafka
}
