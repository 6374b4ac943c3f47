package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"Warehouse/internal/catalog"
	"Warehouse/internal/config"
	"Warehouse/internal/events"
	"Warehouse/internal/warehouse"
	"Warehouse/pkg/kit"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := kit.NewLogger(cfg.App.Name, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("warehouse stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := warehouse.NewService(warehouse.WithLogger(log.Named("warehouse")))

	publisher, err := newPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("close event publisher", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	catalog.RegisterCollectors(reg, cfg.App.Name, svc)

	if cfg.Metrics.Enabled && cfg.Metrics.Token == "" {
		log.Warn("metrics enabled without a token, /metrics will answer 403")
	}

	var limiter *kit.IPRateLimiter
	if cfg.Server.RateLimit.Enabled {
		limiter = kit.NewIPRateLimiter(cfg.Server.RateLimit.Rate, cfg.Server.RateLimit.Burst)
	}

	s := &catalog.Server{
		Catalog: svc,
		Events:  publisher,
		Log:     log,
	}
	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        cfg.App.Name,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
		CORS: kit.CORSOptions{
			AllowOrigins: cfg.CORS.AllowOrigins,
			AllowMethods: cfg.CORS.AllowMethods,
			AllowHeaders: cfg.CORS.AllowHeaders,
		},
		WriteLimiter: limiter,
	})

	return kit.RunHTTPServer(ctx, ":"+cfg.Server.Port, h, log, kit.ServerTimeouts{
		ReadHeader: cfg.Server.ReadHeaderTimeout,
		Shutdown:   cfg.Server.ShutdownTimeout,
	})
}

func newPublisher(cfg *config.Config, log *zap.Logger) (events.Publisher, error) {
	if !cfg.Events.Enabled {
		return events.NopPublisher{}, nil
	}

	p, err := events.NewNATSPublisher(events.NATSConfig{
		URL:           cfg.Events.NATSURL,
		SubjectPrefix: cfg.Events.SubjectPrefix,
		Name:          cfg.App.Name,
		Log:           log.Named("events"),
	})
	if err != nil {
		return nil, err
	}
	log.Info("publishing catalog events", zap.String("nats_url", cfg.Events.NATSURL))
	return p, nil
}
