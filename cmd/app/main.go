package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/CityProduction_Go/internal/bootstrap"
	"github.com/osse101/CityProduction_Go/internal/city"
	"github.com/osse101/CityProduction_Go/internal/config"
	"github.com/osse101/CityProduction_Go/internal/server"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 15 * time.Second
)

// @title City Production API
// @version 1.0
// @description Accumulates per-city production contributions into whole-unit totals per resource type.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Load reads .env, so it runs before validation
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Invalid environment", "error", err)
		os.Exit(1)
	}

	_, logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	for _, w := range warnings {
		slog.Warn("Environment warning", "warning", w)
	}

	err = run(cfg)
	if logFile != nil {
		_ = logFile.Sync()
	}
	if err != nil {
		slog.Error("Service exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	registry, err := bootstrap.LoadRules(cfg)
	if err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	persistence, err := bootstrap.InitializePersistence(startCtx, cfg)
	cancel()
	if err != nil {
		return err
	}

	cityService := city.NewService(registry, persistence.Reports, city.Config{
		StrictParity:   cfg.StrictParity,
		Workers:        cfg.RecomputeWorkers,
		CacheSize:      cfg.ReportCacheSize,
		CacheTTL:       cfg.ReportCacheTTL,
		PersistTimeout: cfg.PersistTimeout,
	})

	srv := server.NewServer(server.Options{
		Port:            cfg.Port,
		APIKey:          cfg.APIKey,
		TrustedProxies:  cfg.TrustedProxies,
		MaxRequestBytes: cfg.MaxRequestBytes,
		DBPool:          persistence.HealthPool(),
		Rules:           registry,
		Service:         cityService,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal")
	case err := <-serveErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:      srv,
		CityService: cityService,
		DBPool:      persistence.HealthPool(),
		Store:       persistence.Closer(),
	})
	return nil
}
