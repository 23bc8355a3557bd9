package engine

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Execute()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Bounds           DateBounds
	ForecastBoundary time.Time
	Log              logrus.FieldLogger
}

// WithBounds sets the dataset's known date range used by range validation.
func WithBounds(bounds DateBounds) Option {
	return func(c *config) {
		c.Bounds = bounds
	}
}

// WithForecastBoundary sets where the comparison chart's marker is drawn.
// The boundary differs between dataset snapshots.
func WithForecastBoundary(boundary time.Time) Option {
	return func(c *config) {
		c.ForecastBoundary = boundary
	}
}

// WithLogger routes engine debug logging to log.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) {
		if log != nil {
			c.Log = log
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Bounds:           DefaultBounds(),
		ForecastBoundary: DefaultForecastBoundary(),
		Log:              discardLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
