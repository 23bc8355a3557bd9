package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spektr-org/covidash/engine"
	"github.com/spektr-org/covidash/render"
)

//nolint:gochecknoglobals // Cobra flags are typically global
var (
	renderFilters filterFlags
	renderKind    string
	renderFormat  string
	renderWidth   int
	renderHeight  int
	renderOut     string
)

//nolint:gochecknoglobals // Cobra commands are typically global
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Draw one dashboard chart as PNG or SVG",
	Example: `  covidash render --kind new_confirmed --subregions CA,NY --out new_cases.png
  covidash render --kind model_comparison --comparison TX --format svg --out models.svg`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderFilters.register(renderCmd)
	renderCmd.Flags().StringVar(&renderKind, "kind", string(engine.ChartNewConfirmed),
		"chart: all_states_new_cases, cumulative_confirmed, new_confirmed, model_comparison")
	renderCmd.Flags().StringVar(&renderFormat, "format", "png", "image format: png, svg")
	renderCmd.Flags().IntVar(&renderWidth, "width", render.DefaultWidth, "image width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", render.DefaultHeight, "image height in pixels")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "output file (required)")
	_ = renderCmd.MarkFlagRequired("out")
}

func runRender(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	kind, err := engine.ParseChartKind(renderKind)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(renderFormat)
	if err != nil {
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

	criteria, err := renderFilters.criteria(cmd, &cfg.Dashboard, ds.Models())
	if err != nil {
		return err
	}

	opts := append(cfg.Dashboard.EngineOptions(), engine.WithLogger(logger))
	spec, err := engine.Chart(kind, criteria, ds, opts...)
	if err != nil {
		return err
	}

	return withOutput(cmd.OutOrStdout(), renderOut, func(w io.Writer) error {
		if err := render.Render(w, spec, format, render.Options{Width: renderWidth, Height: renderHeight}); err != nil {
			return fmt.Errorf("failed to render %s: %w", kind, err)
		}
		return nil
	})
}
