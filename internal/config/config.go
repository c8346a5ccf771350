package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration, read from the environment.
type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Port          int

	// Engine tunables.
	OverstockMultiplier int
	ExpiryWindowDays    int
	DefaultReorderLevel int
	SweepInterval       time.Duration
	LedgerTimeout       time.Duration
}

// Load reads configuration from the environment. DATABASE_URL is the only
// required variable; everything else has a development default.
func Load() (*Config, error) {
	cfg := &Config{
		RedisAddr:           "localhost:6379",
		RedisDB:             0,
		Port:                8080,
		OverstockMultiplier: 10,
		ExpiryWindowDays:    14,
		DefaultReorderLevel: 5,
		SweepInterval:       15 * time.Minute,
		LedgerTimeout:       5 * time.Second,
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			cfg.RedisDB = db
		}
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	if s := os.Getenv("OVERSTOCK_MULTIPLIER"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			cfg.OverstockMultiplier = v
		}
	}
	if s := os.Getenv("EXPIRY_WINDOW_DAYS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			cfg.ExpiryWindowDays = v
		}
	}
	if s := os.Getenv("DEFAULT_REORDER_LEVEL"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			cfg.DefaultReorderLevel = v
		}
	}
	if s := os.Getenv("SWEEP_INTERVAL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			cfg.SweepInterval = d
		}
	}
	if s := os.Getenv("LEDGER_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			cfg.LedgerTimeout = d
		}
	}

	return cfg, nil
}
