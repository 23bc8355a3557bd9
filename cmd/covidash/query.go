package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/covidash/engine"
)

//nolint:gochecknoglobals // Cobra flags are typically global
var (
	queryFilters filterFlags
	queryFormat  string
	queryOut     string
)

//nolint:gochecknoglobals // Cobra commands are typically global
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run one dashboard query and print the result",
	Long: `Runs the same query as the dashboard for the given selection and prints
the table, charts and model comparison.`,
	Example: `  covidash query --subregions CA,TX --start 2020-03-01 --end 2020-06-01 --format csv
  covidash query --all-states --format text
  covidash query --comparison TX --models prediction,forecast --format pretty --out result.json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryFilters.register(queryCmd)
	queryCmd.Flags().StringVar(&queryFormat, "format", "json", "output format: json, pretty, csv, text")
	queryCmd.Flags().StringVar(&queryOut, "out", "", "write output to file instead of stdout")
}

func runQuery(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	if err := checkOutputFormat(queryFormat); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ds, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	criteria, err := queryFilters.criteria(cmd, &cfg.Dashboard, ds.Models())
	if err != nil {
		return err
	}

	opts := append(cfg.Dashboard.EngineOptions(), engine.WithLogger(logger))
	result, err := engine.Execute(criteria, ds, opts...)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	return withOutput(cmd.OutOrStdout(), queryOut, func(w io.Writer) error {
		return writeResult(w, result, queryFormat)
	})
}

// withOutput runs write against path, or against stdout when path is empty.
// The file is only created once write has succeeded.
func withOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	logger.WithField("file", path).Info("Output written")
	return nil
}
