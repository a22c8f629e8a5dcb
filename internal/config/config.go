// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Seed drives the deterministic sample data generator.
	Seed int64 `koanf:"seed"`

	// VendorCount sets the sample roster size.
	VendorCount int `koanf:"vendor_count"`

	// StartMonth is the first month of the generated span, YYYY-MM.
	StartMonth string `koanf:"start_month"`

	// MonthCount sets the number of months in the generated span.
	MonthCount int `koanf:"month_count"`

	// LeaderboardSize sets the top/bottom slice size.
	LeaderboardSize int `koanf:"leaderboard_size"`

	// MaxLeaderboardLimit caps GET /api/leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// MaxSessions bounds the number of live dataset sessions.
	MaxSessions int `koanf:"max_sessions"`

	// SnapshotCacheSize bounds the snapshot cache.
	SnapshotCacheSize int `koanf:"snapshot_cache_size"`

	// Overall-score weights; held constant so rankings are reproducible.
	WeightOnTime     float64 `koanf:"weight_on_time"`
	WeightQuality    float64 `koanf:"weight_quality"`
	WeightCompliance float64 `koanf:"weight_compliance"`
	WeightLeadTime   float64 `koanf:"weight_lead_time"`
}

// New creates a Config with service defaults.
func New() *Config {
	c := &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		Seed:                42,
		VendorCount:         15,
		StartMonth:          "2023-01",
		MonthCount:          6,
		LeaderboardSize:     5,
		MaxLeaderboardLimit: 100,
		MaxSessions:         16,
		SnapshotCacheSize:   64,
		WeightOnTime:        0.30,
		WeightQuality:       0.30,
		WeightCompliance:    0.20,
		WeightLeadTime:      0.20,
	}
	return c
}
