// Package config loads the catalog service configuration from an optional
// YAML file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const EnvConfigPath = "CATALOG_CONFIG"

type Config struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	Catalog   Catalog   `yaml:"catalog"`
	CORS      CORS      `yaml:"cors"`
	RateLimit RateLimit `yaml:"rate_limit"`
	Metrics   Metrics   `yaml:"metrics"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Catalog struct {
	ItemCount        int `yaml:"item_count"`
	SearchMaxResults int `yaml:"search_max_results"`
	// SearchCacheMax bounds the number of memoized terms; 0 means unbounded.
	SearchCacheMax int `yaml:"search_cache_max"`
	DefaultLimit   int `yaml:"default_limit"`
	MaxLimit       int `yaml:"max_limit"`
	// SearchRespectsOrder lists search matches in custom order instead of
	// ascending id order.
	SearchRespectsOrder bool `yaml:"search_respects_order"`
}

type CORS struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxAgeSeconds  int      `yaml:"max_age_seconds"`
}

type RateLimit struct {
	// RPS of 0 disables rate limiting.
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}

func Default() Config {
	return Config{
		Port:     "8080",
		LogLevel: "info",
		Catalog: Catalog{
			ItemCount:        1_000_000,
			SearchMaxResults: 1000,
			DefaultLimit:     20,
			MaxLimit:         100,
		},
		CORS: CORS{
			Enabled:       true,
			MaxAgeSeconds: 600,
		},
		RateLimit: RateLimit{
			RPS:   50,
			Burst: 100,
		},
		Metrics: Metrics{
			Enabled: true,
		},
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load starts from Default, overlays the YAML file at path (if path is not
// empty), then the environment, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnvOverrides(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) ApplyEnvOverrides(lookup func(string) (string, bool)) error {
	get := func(k string) (string, bool) {
		v, ok := lookup(k)
		if !ok {
			return "", false
		}
		v = strings.TrimSpace(v)
		return v, v != ""
	}

	if v, ok := get("PORT"); ok {
		c.Port = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"ITEM_COUNT", &c.Catalog.ItemCount},
		{"SEARCH_MAX_RESULTS", &c.Catalog.SearchMaxResults},
		{"SEARCH_CACHE_MAX", &c.Catalog.SearchCacheMax},
		{"RATE_LIMIT_BURST", &c.RateLimit.Burst},
	}
	for _, e := range ints {
		v, ok := get(e.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("env %s: %w", e.key, err)
		}
		*e.dst = n
	}

	if v, ok := get("RATE_LIMIT_RPS"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("env RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimit.RPS = f
	}
	if v, ok := get("CORS_ALLOWED_ORIGINS"); ok {
		c.CORS.AllowedOrigins = splitList(v)
	}
	if v, ok := get("METRICS_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("env METRICS_ENABLED: %w", err)
		}
		c.Metrics.Enabled = b
	}
	if v, ok := get("SEARCH_RESPECTS_ORDER"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("env SEARCH_RESPECTS_ORDER: %w", err)
		}
		c.Catalog.SearchRespectsOrder = b
	}
	if v, ok := get("METRICS_TOKEN"); ok {
		c.Metrics.Token = v
	}
	if v, ok := get("SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("env SHUTDOWN_TIMEOUT: %w", err)
		}
		c.ShutdownTimeout = d
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.Catalog.ItemCount < 1 {
		errs = append(errs, fmt.Errorf("catalog.item_count must be positive, got %d", c.Catalog.ItemCount))
	}
	if c.Catalog.ItemCount > 1<<31-1 {
		errs = append(errs, fmt.Errorf("catalog.item_count too large: %d", c.Catalog.ItemCount))
	}
	if c.Catalog.SearchMaxResults < 1 {
		errs = append(errs, fmt.Errorf("catalog.search_max_results must be positive, got %d", c.Catalog.SearchMaxResults))
	}
	if c.Catalog.SearchCacheMax < 0 {
		errs = append(errs, fmt.Errorf("catalog.search_cache_max must not be negative, got %d", c.Catalog.SearchCacheMax))
	}
	if c.Catalog.MaxLimit < 1 {
		errs = append(errs, fmt.Errorf("catalog.max_limit must be positive, got %d", c.Catalog.MaxLimit))
	}
	if c.Catalog.DefaultLimit < 1 || c.Catalog.DefaultLimit > c.Catalog.MaxLimit {
		errs = append(errs, fmt.Errorf("catalog.default_limit must be in [1,%d], got %d", c.Catalog.MaxLimit, c.Catalog.DefaultLimit))
	}
	if c.RateLimit.RPS < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.rps must not be negative, got %v", c.RateLimit.RPS))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
