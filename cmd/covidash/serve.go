package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spektr-org/covidash/api"
	"github.com/spektr-org/covidash/api/handlers"
	"github.com/spektr-org/covidash/cache"
	"github.com/spektr-org/covidash/config"
	"github.com/spektr-org/covidash/dataset"
	"github.com/spektr-org/covidash/engine"
	"github.com/spektr-org/covidash/observability"
)

//nolint:gochecknoglobals // Cobra commands are typically global
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API",
	Long: `Loads the dataset once, then serves the dashboard API, the chart image
endpoints and Prometheus metrics until interrupted.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ds, err := loadDataset(cfg)
	if err != nil {
		return err
	}
	observability.RecordDatasetCounts(ds.Counts())
	warnOnBoundsMismatch(cfg, ds)

	observability.StartMetricsServer(cfg.MetricsAddr, logger.WithField("service", "metrics"))

	var provider cache.Provider = cache.NoopProvider{}
	if cfg.Cache.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisProvider, err := cache.DialRedis(ctx, cfg.Cache.URL, cfg.Cache.Prefix)
		cancel()
		if err != nil {
			return err
		}
		logger.WithField("ttl", cfg.Cache.TTL).Info("Chart cache enabled")
		provider = redisProvider
	}
	defer func() {
		if err := provider.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close chart cache")
		}
	}()

	settings, err := api.NewSettings(&cfg.Dashboard, &cfg.Cache)
	if err != nil {
		return err
	}

	svc := api.NewService(&cfg.API, handlers.NewServer(ds, settings, provider, logger), logger)
	if err := svc.Start(context.Background()); err != nil {
		return err
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down")

	if err := svc.Stop(); err != nil {
		logger.WithError(err).Error("Failed to stop API service")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return observability.StopMetricsServer(ctx)
}

// warnOnBoundsMismatch flags data outside the configured dashboard range;
// such rows can only appear in the all-states chart.
func warnOnBoundsMismatch(cfg *config.Config, ds *dataset.Dataset) {
	span, ok := ds.Bounds()
	if !ok {
		logger.Warn("Daily table is empty")
		return
	}
	bounds, err := cfg.Dashboard.Bounds()
	if err != nil {
		return
	}
	if span.Min.Before(bounds.Min) || span.Max.After(bounds.Max) {
		logger.WithFields(logrus.Fields{
			"data_min":   span.Min.Format(engine.DateLayout),
			"data_max":   span.Max.Format(engine.DateLayout),
			"config_min": cfg.Dashboard.MinDate,
			"config_max": cfg.Dashboard.MaxDate,
		}).Warn("Dataset spans dates outside the dashboard range")
	}
}
