package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spektr-org/covidash/config"
	"github.com/spektr-org/covidash/dataset"
)

//nolint:gochecknoglobals // Global vars needed for cobra CLI
var (
	cfgFile string
	logger  *logrus.Logger
)

// rootCmd represents the base command
//
//nolint:gochecknoglobals // Cobra commands are typically global
var rootCmd = &cobra.Command{
	Use:   "covidash",
	Short: "COVID-19 dashboard - Explore state-level case data and model forecasts",
	Long: `covidash serves and queries a state-level COVID-19 dataset: case
histories, policy and mobility indicators, and a comparison of forecasting
models. Run "covidash serve" for the HTTP API, or query the data directly.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level, overrides the config file (debug, info, warn, error)")

	logger = logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "./config.yaml"
	}
}

// loadConfig reads the config file, applies --log-level and configures the
// shared logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.Logging)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	logger.WithField("file", cfgFile).Debug("Configuration loaded")

	return cfg, nil
}

func loadDataset(cfg *config.Config) (*dataset.Dataset, error) {
	ds, err := dataset.Load(cfg.Data.FS(), cfg.Data.Files(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset from %s: %w", cfg.Data.Dir, err)
	}
	return ds, nil
}
