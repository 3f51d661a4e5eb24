package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1_000_000, cfg.Catalog.ItemCount)
	assert.Equal(t, 1000, cfg.Catalog.SearchMaxResults)
	assert.Equal(t, 100, cfg.Catalog.MaxLimit)
	assert.Equal(t, 0, cfg.Catalog.SearchCacheMax)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
catalog:
  item_count: 5000
  search_cache_max: 64
cors:
  allowed_origins: ["http://localhost:3000"]
`), 0o600))

	t.Setenv("ITEM_COUNT", "2500")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2500, cfg.Catalog.ItemCount)
	assert.Equal(t, 64, cfg.Catalog.SearchCacheMax)
	assert.Equal(t, 1000, cfg.Catalog.SearchMaxResults, "unset yaml keys keep defaults")
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Run("parses every supported key", func(t *testing.T) {
		cfg := Default()
		err := cfg.ApplyEnvOverrides(envMap(map[string]string{
			"PORT":                 "8181",
			"LOG_LEVEL":            "debug",
			"SEARCH_MAX_RESULTS":   "50",
			"RATE_LIMIT_RPS":       "2.5",
			"RATE_LIMIT_BURST":     "5",
			"CORS_ALLOWED_ORIGINS": "http://a.test, http://b.test,,",
			"METRICS_ENABLED":      "false",
			"METRICS_TOKEN":        "tok",
		}))
		require.NoError(t, err)

		assert.Equal(t, "8181", cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 50, cfg.Catalog.SearchMaxResults)
		assert.Equal(t, 2.5, cfg.RateLimit.RPS)
		assert.Equal(t, 5, cfg.RateLimit.Burst)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
		assert.False(t, cfg.Metrics.Enabled)
		assert.Equal(t, "tok", cfg.Metrics.Token)
	})

	t.Run("blank values are ignored", func(t *testing.T) {
		cfg := Default()
		require.NoError(t, cfg.ApplyEnvOverrides(envMap(map[string]string{"PORT": "  "})))
		assert.Equal(t, "8080", cfg.Port)
	})

	t.Run("bad numbers are rejected", func(t *testing.T) {
		cfg := Default()
		err := cfg.ApplyEnvOverrides(envMap(map[string]string{"ITEM_COUNT": "lots"}))
		require.ErrorContains(t, err, "ITEM_COUNT")
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero items", func(c *Config) { c.Catalog.ItemCount = 0 }, "item_count"},
		{"zero search cap", func(c *Config) { c.Catalog.SearchMaxResults = 0 }, "search_max_results"},
		{"negative cache cap", func(c *Config) { c.Catalog.SearchCacheMax = -1 }, "search_cache_max"},
		{"default above max", func(c *Config) { c.Catalog.DefaultLimit = 500 }, "default_limit"},
		{"negative rps", func(c *Config) { c.RateLimit.RPS = -1 }, "rate_limit.rps"},
		{"no port", func(c *Config) { c.Port = "" }, "port"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}
}
