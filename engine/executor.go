package engine

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ============================================================================
// EXECUTOR — One user interaction in, render-ready output out
// ============================================================================
// Entry point: Execute(criteria, source, opts...)
//
// Pipeline:
//   1. Normalize criteria (trim, dedupe, upper-case codes)
//   2. Classify the date range (never fatal)
//   3. Filter daily records by subregion mode
//   4. Build the table (selected mode only) and the case charts
//   5. Narrow the comparison table by subregion, build the model chart
//   6. Return Result
//
// Nothing here mutates the source; each call is independent.
// ============================================================================

// Source is the read-only dataset the engine queries.
type Source interface {
	Daily() RecordView
	Comparison() RecordView
}

// Execute runs one interaction's criteria against src.
//
// An invalid date range is reported in Result.Validation, and the charts are
// still built best-effort so the caller decides what to show.
func Execute(criteria FilterCriteria, src Source, opts ...Option) (*Result, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	cfg := applyOptions(opts)
	criteria = NormalizeCriteria(criteria)

	daily := src.Daily()
	check := ValidateRange(criteria.Start, criteria.End, cfg.Bounds)

	log := cfg.Log.WithFields(logrus.Fields{
		"mode":         criteria.Mode,
		"range_status": check.Status,
	})

	result := &Result{
		Success:    true,
		Criteria:   criteria,
		Validation: check,
		Charts:     []ChartSpec{},
	}

	filtered := FilterBySubregion(daily, criteria)
	log.WithFields(logrus.Fields{
		"records":  daily.Len(),
		"filtered": filtered.Len(),
	}).Debug("Filtered daily records")

	switch criteria.Mode {
	case SubregionsAll:
		result.Charts = append(result.Charts, *BuildSeriesChart(filtered, AllStatesNewCasesOptions()))
	default:
		result.Table = BuildRecordTable(filtered, "Selected states")
		result.Charts = append(result.Charts,
			*BuildSeriesChart(filtered, CumulativeConfirmedOptions()),
			*BuildSeriesChart(filtered, NewConfirmedOptions()),
		)
		if filtered.Len() == 0 {
			result.Errors = append(result.Errors, "No records match the selected states and date range.")
		}
	}

	result.Comparison = buildComparison(src.Comparison(), criteria, cfg)
	log.WithField("series", len(result.Comparison.Series)).Debug("Built model comparison")

	return result, nil
}

// Chart builds a single dashboard chart for criteria, as Execute would.
func Chart(kind ChartKind, criteria FilterCriteria, src Source, opts ...Option) (*ChartSpec, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	cfg := applyOptions(opts)
	criteria = NormalizeCriteria(criteria)

	switch kind {
	case ChartAllStatesNewCases:
		return BuildSeriesChart(src.Daily(), AllStatesNewCasesOptions()), nil
	case ChartCumulativeConfirmed:
		criteria.Mode = SubregionsSelected
		return BuildSeriesChart(FilterBySubregion(src.Daily(), criteria), CumulativeConfirmedOptions()), nil
	case ChartNewConfirmed:
		criteria.Mode = SubregionsSelected
		return BuildSeriesChart(FilterBySubregion(src.Daily(), criteria), NewConfirmedOptions()), nil
	case ChartModelComparison:
		return buildComparison(src.Comparison(), criteria, cfg), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownChartKind, kind)
}

// ParseChartKind validates a chart kind string.
func ParseChartKind(s string) (ChartKind, error) {
	switch k := ChartKind(strings.TrimSpace(s)); k {
	case ChartAllStatesNewCases, ChartCumulativeConfirmed, ChartNewConfirmed, ChartModelComparison:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChartKind, s)
}

func buildComparison(view RecordView, criteria FilterCriteria, cfg *config) *ChartSpec {
	narrowed := FilterByDimension(view, FieldSubregion, criteria.ComparisonSubregions)
	return BuildModelComparisonChart(narrowed, criteria.Models, cfg.ForecastBoundary)
}

// ============================================================================
// CRITERIA NORMALIZATION
// ============================================================================

// NormalizeCriteria trims and de-duplicates selections, upper-cases
// subregion codes and defaults an unset mode to SubregionsSelected.
// Order of first appearance is kept.
func NormalizeCriteria(c FilterCriteria) FilterCriteria {
	if c.Mode != SubregionsAll {
		c.Mode = SubregionsSelected
	}
	c.Subregions = normalizeList(c.Subregions, strings.ToUpper)
	c.ComparisonSubregions = normalizeList(c.ComparisonSubregions, strings.ToUpper)
	c.Models = normalizeList(c.Models, nil)
	return c
}

func normalizeList(items []string, transform func(string) string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if transform != nil {
			item = transform(item)
		}
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
