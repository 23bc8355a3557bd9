package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spektr-org/covidash/config"
	"github.com/spektr-org/covidash/engine"
)

// filterFlags are the dashboard selections shared by query and render.
type filterFlags struct {
	start      string
	end        string
	allStates  bool
	subregions []string
	comparison []string
	models     []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.start, "start", "", "start date YYYY-MM-DD, exclusive (default dashboard minDate)")
	flags.StringVar(&f.end, "end", "", "end date YYYY-MM-DD, exclusive (default dashboard maxDate)")
	flags.BoolVar(&f.allStates, "all-states", false, "plot every state over the full history")
	flags.StringSliceVar(&f.subregions, "subregions", nil, "state codes to select, e.g. CA,TX")
	flags.StringSliceVar(&f.comparison, "comparison", nil, "states of the model comparison (default dashboard comparisonSubregions)")
	flags.StringSliceVar(&f.models, "models", nil, "models to compare (default every model)")
}

// criteria builds FilterCriteria. Unset comparison and models flags fall
// back to the configured states and to allModels; set-but-empty means none.
func (f *filterFlags) criteria(cmd *cobra.Command, dash *config.DashboardConfig, allModels []string) (engine.FilterCriteria, error) {
	bounds, err := dash.Bounds()
	if err != nil {
		return engine.FilterCriteria{}, err
	}

	criteria := engine.FilterCriteria{
		Start:                bounds.Min,
		End:                  bounds.Max,
		Mode:                 engine.SubregionsSelected,
		Subregions:           f.subregions,
		ComparisonSubregions: f.comparison,
		Models:               f.models,
	}
	if f.allStates {
		criteria.Mode = engine.SubregionsAll
	}

	if f.start != "" {
		if criteria.Start, err = engine.ParseDate(f.start); err != nil {
			return engine.FilterCriteria{}, fmt.Errorf("invalid --start: %w", err)
		}
	}
	if f.end != "" {
		if criteria.End, err = engine.ParseDate(f.end); err != nil {
			return engine.FilterCriteria{}, fmt.Errorf("invalid --end: %w", err)
		}
	}

	if !cmd.Flags().Changed("comparison") {
		criteria.ComparisonSubregions = append([]string(nil), dash.ComparisonSubregions...)
	}
	if !cmd.Flags().Changed("models") {
		criteria.Models = allModels
	}

	return engine.NormalizeCriteria(criteria), nil
}
