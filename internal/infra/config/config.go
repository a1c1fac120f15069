package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	HTTPAddr         string
	DatabaseURL      string
	DBMaxOpenConns   int
	DBMaxIdleConns   int
	EphemerisBaseURL string
	EphemerisTimeout time.Duration
	CacheMaxEntries  int
	CacheTTLToday    time.Duration // positions for the current UTC day
	CacheTTLFar      time.Duration // positions for past/future days
	CronSpecSweep    string        // expired cache entry sweep
	CronSpecPrewarm  string        // daily position prewarm for saved profiles
	LogLevel         string
	Environment      string
}

// Load reads configuration from environment variables and a .env file (if
// present). godotenv.Load will not override variables already set in the
// environment.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.EphemerisBaseURL = os.Getenv("EPHEMERIS_BASE_URL")
	if cfg.EphemerisBaseURL == "" {
		return nil, fmt.Errorf("EPHEMERIS_BASE_URL is not set")
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	var err error
	cfg.EphemerisTimeout, err = durationEnv("EPHEMERIS_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTLToday, err = durationEnv("CACHE_TTL_TODAY", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTLFar, err = durationEnv("CACHE_TTL_FAR", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg.CacheMaxEntries, err = intEnv("CACHE_MAX_ENTRIES", 10000)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxOpenConns, err = intEnv("DB_MAX_OPEN_CONNS", 25)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxIdleConns, err = intEnv("DB_MAX_IDLE_CONNS", 25)
	if err != nil {
		return nil, err
	}

	cfg.CronSpecSweep = os.Getenv("CRON_SPEC_CACHE_SWEEP")
	if cfg.CronSpecSweep == "" {
		cfg.CronSpecSweep = "*/5 * * * *" // Default: every 5 minutes
	}
	cfg.CronSpecPrewarm = os.Getenv("CRON_SPEC_PREWARM")
	if cfg.CronSpecPrewarm == "" {
		cfg.CronSpecPrewarm = "0 4 * * *" // Default: 04:00 daily
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	return cfg, nil
}

func intEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}
