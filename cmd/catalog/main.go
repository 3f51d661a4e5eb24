package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"VirtualCatalog/internal/catalog"
	"VirtualCatalog/internal/config"
	"VirtualCatalog/pkg/kit"
)

func main() {
	service := "catalog"

	cfg, err := config.Load(os.Getenv(config.EnvConfigPath))
	if err != nil {
		boot := kit.NewLogger(service, "info")
		boot.Fatal("load config failed", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := catalog.NewService(catalog.Options{
		ItemCount:           cfg.Catalog.ItemCount,
		SearchMaxResults:    cfg.Catalog.SearchMaxResults,
		SearchCacheMax:      cfg.Catalog.SearchCacheMax,
		MaxLimit:            cfg.Catalog.MaxLimit,
		SearchRespectsOrder: cfg.Catalog.SearchRespectsOrder,
		Log:                 log,
		Metrics:             catalog.NewMetrics(reg),
	})

	s := &catalog.Server{
		Catalog:      svc,
		Log:          log,
		DefaultLimit: cfg.Catalog.DefaultLimit,
	}

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
		CORSEnabled:    cfg.CORS.Enabled,
		CORS: kit.CORSOptions{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			MaxAgeSeconds:  cfg.CORS.MaxAgeSeconds,
		},
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	})

	log.Info("catalog ready",
		zap.Int("items", svc.ItemCount()),
		zap.Int("search_max_results", cfg.Catalog.SearchMaxResults),
		zap.Int("search_cache_max", cfg.Catalog.SearchCacheMax),
	)

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log, kit.ServerOptions{
		ShutdownTimeout: cfg.ShutdownTimeout,
	}); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
