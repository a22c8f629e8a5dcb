package config

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// startMonthLayout parses the StartMonth config value.
const startMonthLayout = "2006-01"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if VENDORBOARD_CONFIG is set
//  3. env (prefix VENDORBOARD_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("VENDORBOARD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: VENDORBOARD_ADDR, VENDORBOARD_SEED, ...
	// Map env keys like VENDORBOARD_MONTH_COUNT -> month_count (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("VENDORBOARD_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "vendorboard_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if _, err := time.Parse(startMonthLayout, cfg.StartMonth); err != nil {
		return nil, errors.New("start_month must be YYYY-MM")
	}
	if cfg.VendorCount < 1 || cfg.MonthCount < 1 {
		return nil, errors.New("vendor_count and month_count must be positive")
	}
	return &cfg, nil
}

// StartMonthTime returns the parsed StartMonth. Load validates the format,
// so errors here only occur on a hand-built Config.
func (c *Config) StartMonthTime() (time.Time, error) {
	t, err := time.Parse(startMonthLayout, c.StartMonth)
	if err != nil {
		return time.Time{}, ErrInvalidConfig
	}
	return t, nil
}
