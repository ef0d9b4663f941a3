package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ThojoUno/az-alert-analysis/internal/config"
	"github.com/ThojoUno/az-alert-analysis/internal/engine"
	"github.com/ThojoUno/az-alert-analysis/internal/metrics"
	"github.com/ThojoUno/az-alert-analysis/internal/models"
	"github.com/ThojoUno/az-alert-analysis/internal/repo"
	"github.com/ThojoUno/az-alert-analysis/internal/services"
	"github.com/ThojoUno/az-alert-analysis/internal/utils"
)

func main() {
	var configPath string
	var inputRoot string
	var rollupOnly bool
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&inputRoot, "root", "", "Directory containing subscription_* exports (overrides config)")
	flag.BoolVar(&rollupOnly, "rollup-only", false, "Rebuild the tenant document from existing analysis files without re-analyzing")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("path", configPath), slog.Any("error", err))
		os.Exit(1)
	}
	if inputRoot != "" {
		cfg.Input.Root = inputRoot
	}

	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)
	logger.Info("starting alert analysis",
		slog.String("root", cfg.Input.Root),
		slog.Int("days_back", cfg.Input.DaysBack))

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Error("failed to register metrics", slog.Any("error", err))
		os.Exit(1)
	}

	store := repo.NewSubscriptionStore(cfg.Input.Root, logger)
	analyzer := engine.NewAnalyzer(logger, engine.Options{
		StormWindow:               cfg.Analysis.StormWindow,
		StormThreshold:            cfg.Analysis.StormThreshold,
		CorrelationThreshold:      cfg.Analysis.CorrelationThreshold,
		TuningRatio:               cfg.Analysis.TuningRatio,
		TuningMinAlerts:           cfg.Analysis.TuningMinAlerts,
		TopResources:              cfg.Analysis.TopResources,
		TopAlertsPerSeverity:      cfg.Analysis.TopAlertsPerSeverity,
		IncludeHistoryTimeBuckets: cfg.Analysis.IncludeHistoryInTimeBuckets,
	})
	service := services.NewAnalysisService(logger, store, analyzer, services.Options{
		AnalysisFile: cfg.Output.AnalysisFile,
		TenantFile:   cfg.Output.TenantFile,
		DaysBack:     cfg.Input.DaysBack,
		MaxWorkers:   cfg.Run.MaxWorkers,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var tenant *models.TenantDocument
	if rollupOnly {
		tenant, err = service.Rollup()
	} else {
		tenant, err = service.Run(ctx)
	}
	if err != nil {
		logger.Error("batch failed", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.Metrics.PushURL != "" {
		if err := metrics.Push(cfg.Metrics.PushURL, cfg.Metrics.Job, prometheus.DefaultGatherer); err != nil {
			logger.Warn("metrics push failed", slog.String("url", cfg.Metrics.PushURL), slog.Any("error", err))
		}
	}

	logger.Info("alert analysis finished", slog.String("run_id", tenant.RunID))
}
