package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setBaseEnv pins the required variables and blanks the optional ones so
// ambient environment cannot leak into assertions.
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/astronova?sslmode=disable")
	t.Setenv("EPHEMERIS_BASE_URL", "http://ephemeris.internal")
	for _, name := range []string{
		"HTTP_ADDR", "EPHEMERIS_TIMEOUT", "CACHE_MAX_ENTRIES",
		"CACHE_TTL_TODAY", "CACHE_TTL_FAR", "DB_MAX_OPEN_CONNS",
		"DB_MAX_IDLE_CONNS", "CRON_SPEC_CACHE_SWEEP", "CRON_SPEC_PREWARM",
		"LOG_LEVEL", "ENVIRONMENT",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.EphemerisTimeout)
	assert.Equal(t, 10000, cfg.CacheMaxEntries)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTLToday)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTLFar)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 25, cfg.DBMaxIdleConns)
	assert.Equal(t, "*/5 * * * *", cfg.CronSpecSweep)
	assert.Equal(t, "0 4 * * *", cfg.CronSpecPrewarm)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadRequiresCoreURLs(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")

	setBaseEnv(t)
	t.Setenv("EPHEMERIS_BASE_URL", "")
	_, err = Load()
	assert.ErrorContains(t, err, "EPHEMERIS_BASE_URL")
}

func TestLoadReadsOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("EPHEMERIS_TIMEOUT", "3s")
	t.Setenv("CACHE_MAX_ENTRIES", "500")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("DB_MAX_IDLE_CONNS", "10")
	t.Setenv("ENVIRONMENT", "Production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 3*time.Second, cfg.EphemerisTimeout)
	assert.Equal(t, 500, cfg.CacheMaxEntries)
	assert.Equal(t, 50, cfg.DBMaxOpenConns)
	assert.Equal(t, 10, cfg.DBMaxIdleConns)
	assert.Equal(t, "production", cfg.Environment, "environment is lowercased")
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric pool size", "DB_MAX_OPEN_CONNS", "ten"},
		{"zero pool size", "DB_MAX_IDLE_CONNS", "0"},
		{"negative cache bound", "CACHE_MAX_ENTRIES", "-1"},
		{"unparseable duration", "EPHEMERIS_TIMEOUT", "soon"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.ErrorContains(t, err, tc.key)
		})
	}
}
