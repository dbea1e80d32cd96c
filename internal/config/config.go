// Package config loads process configuration from the environment. The
// resulting struct is passed explicitly into constructors; nothing in
// this codebase reads configuration through globals.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the server and admin CLI need at startup.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string

	// DBPath is the path to the SQLite database file.
	DBPath string

	// JWTSecret is the shared HS256 signing secret, used symmetrically
	// for signing and verification. Required.
	JWTSecret string

	// AccessTokenTTL and RefreshTokenTTL bound token lifetimes.
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// DefaultContributionPct is the percentage assigned to new members
	// when the admin CLI does not specify one.
	DefaultContributionPct int
}

// FromEnv builds a Config from environment variables, applying defaults
// for everything except JWT_SECRET.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:                   getEnv("ADDR", ":8080"),
		DBPath:                 getEnv("DB_PATH", "./data/cash.db"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		AccessTokenTTL:         time.Hour,
		RefreshTokenTTL:        7 * 24 * time.Hour,
		DefaultContributionPct: 75,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	if v := os.Getenv("DEFAULT_CONTRIBUTION_PCT"); v != "" {
		pct, err := strconv.Atoi(v)
		if err != nil || pct < 0 || pct > 100 {
			return nil, fmt.Errorf("DEFAULT_CONTRIBUTION_PCT must be an integer between 0 and 100, got %q", v)
		}
		cfg.DefaultContributionPct = pct
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
