// Package config loads the covidash YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/covidash/dataset"
	"github.com/spektr-org/covidash/engine"
)

var (
	// ErrDataDirRequired is returned when data.dir is empty
	ErrDataDirRequired = errors.New("data directory is required")
	// ErrAPIAddrRequired is returned when the API is enabled without an address
	ErrAPIAddrRequired = errors.New("API address is required when API is enabled")
	// ErrCacheURLRequired is returned when the cache is enabled without a Redis URL
	ErrCacheURLRequired = errors.New("redis URL is required when cache is enabled")
	// ErrInvalidDashboardBounds is returned when minDate is not before maxDate
	ErrInvalidDashboardBounds = errors.New("dashboard minDate must fall before maxDate")
	// ErrInvalidPreviewRows is returned when previewRows is negative
	ErrInvalidPreviewRows = errors.New("previewRows must not be negative")
)

// Config represents the complete covidash configuration
type Config struct {
	// Core settings
	Logging         string        `yaml:"logging" default:"info"`
	MetricsAddr     string        `yaml:"metricsAddr" default:":9090"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" default:"10s"`

	Data      DataConfig      `yaml:"data"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	API       APIConfig       `yaml:"api"`
	Cache     CacheConfig     `yaml:"cache"`
}

// DataConfig locates the four input tables
type DataConfig struct {
	Dir        string `yaml:"dir" default:"."`
	Daily      string `yaml:"daily" default:"final_covid_data.csv"`
	Train      string `yaml:"train" default:"train_df.csv"`
	Test       string `yaml:"test" default:"test_df.csv"`
	Comparison string `yaml:"comparison" default:"full_final_comp.csv"`
}

// DashboardConfig holds the date bounds and selection defaults
type DashboardConfig struct {
	MinDate              string   `yaml:"minDate" default:"2020-03-02"`
	MaxDate              string   `yaml:"maxDate" default:"2021-11-10"`
	ForecastBoundary     string   `yaml:"forecastBoundary" default:"2021-11-05"`
	ComparisonSubregions []string `yaml:"comparisonSubregions" default:"[\"TX\"]"`
	PreviewRows          int      `yaml:"previewRows" default:"6"`
}

// APIConfig represents the HTTP API configuration
type APIConfig struct {
	Enabled     bool     `yaml:"enabled" default:"true"`
	Addr        string   `yaml:"addr" default:":8080"`
	CORSOrigins []string `yaml:"corsOrigins" default:"[\"*\"]"`
}

// CacheConfig represents the rendered chart cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" default:"false"`
	URL     string        `yaml:"url" default:"redis://localhost:6379/0"`
	Prefix  string        `yaml:"prefix" default:"covidash"`
	TTL     time.Duration `yaml:"ttl" default:"1h"`
}

// Default returns a Config with every default applied.
func Default() (*Config, error) {
	config := &Config{}
	if err := defaults.Set(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Load reads file over the defaults. A missing file yields the defaults.
func Load(file string) (*Config, error) {
	config, err := Default()
	if err != nil {
		return nil, err
	}

	if file == "" {
		return config, nil
	}

	yamlFile, err := os.ReadFile(file) //nolint:gosec // User-provided config file path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Logging); err != nil {
		return err
	}
	if c.Data.Dir == "" {
		return ErrDataDirRequired
	}
	if err := c.Dashboard.Validate(); err != nil {
		return err
	}
	if err := c.API.Validate(); err != nil {
		return err
	}
	return c.Cache.Validate()
}

// Validate validates the dashboard configuration
func (c *DashboardConfig) Validate() error {
	bounds, err := c.Bounds()
	if err != nil {
		return err
	}
	if !bounds.Min.Before(bounds.Max) {
		return ErrInvalidDashboardBounds
	}
	if _, err := c.Boundary(); err != nil {
		return err
	}
	if c.PreviewRows < 0 {
		return ErrInvalidPreviewRows
	}
	return nil
}

// Bounds parses minDate and maxDate.
func (c *DashboardConfig) Bounds() (engine.DateBounds, error) {
	lo, err := engine.ParseDate(c.MinDate)
	if err != nil {
		return engine.DateBounds{}, fmt.Errorf("invalid minDate: %w", err)
	}
	hi, err := engine.ParseDate(c.MaxDate)
	if err != nil {
		return engine.DateBounds{}, fmt.Errorf("invalid maxDate: %w", err)
	}
	return engine.DateBounds{Min: lo, Max: hi}, nil
}

// Boundary parses forecastBoundary. An empty value disables the marker.
func (c *DashboardConfig) Boundary() (time.Time, error) {
	if c.ForecastBoundary == "" {
		return time.Time{}, nil
	}
	d, err := engine.ParseDate(c.ForecastBoundary)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid forecastBoundary: %w", err)
	}
	return d, nil
}

// EngineOptions converts the dashboard settings into engine options.
// Call only after Validate.
func (c *DashboardConfig) EngineOptions() []engine.Option {
	bounds, _ := c.Bounds()
	boundary, _ := c.Boundary()
	return []engine.Option{
		engine.WithBounds(bounds),
		engine.WithForecastBoundary(boundary),
	}
}

// Validate validates the API configuration
func (c *APIConfig) Validate() error {
	if c.Enabled && c.Addr == "" {
		return ErrAPIAddrRequired
	}
	return nil
}

// Validate validates the cache configuration
func (c *CacheConfig) Validate() error {
	if c.Enabled && c.URL == "" {
		return ErrCacheURLRequired
	}
	return nil
}

// FS opens the data directory.
func (c *DataConfig) FS() fs.FS {
	return os.DirFS(filepath.Clean(c.Dir))
}

// Files returns the configured table names.
func (c *DataConfig) Files() dataset.Files {
	return dataset.Files{
		Daily:      c.Daily,
		Train:      c.Train,
		Test:       c.Test,
		Comparison: c.Comparison,
	}
}
