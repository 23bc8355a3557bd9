package engine

import (
	"time"
)

// ============================================================================
// CHART BUILDER — Produces ChartSpec from a filtered view
// ============================================================================
// Builders never render. Every field the renderer needs (titles, grouping,
// legend, marker) is decided here.
// ============================================================================

// Default color palette for chart series.
//
//nolint:gochecknoglobals // read-only palette
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// ComparisonNote explains the forecast boundary marker.
const ComparisonNote = "Left side of the dash line shows prediction values, right side shows forecast."

// SeriesOptions describes a grouped line chart over a RecordView.
type SeriesOptions struct {
	Kind        ChartKind
	XField      string
	YField      string
	GroupField  string
	Title       string
	XAxis       string
	YAxis       string
	LegendTitle string
}

// AllStatesNewCasesOptions plots new cases for every subregion.
func AllStatesNewCasesOptions() SeriesOptions {
	return SeriesOptions{
		Kind:        ChartAllStatesNewCases,
		XField:      FieldDate,
		YField:      FieldNewConfirmed,
		GroupField:  FieldSubregion,
		Title:       "Number of new cases of all states",
		XAxis:       "date",
		YAxis:       "New cases",
		LegendTitle: "State Name",
	}
}

// CumulativeConfirmedOptions plots cumulative cases for the selected subset.
func CumulativeConfirmedOptions() SeriesOptions {
	return SeriesOptions{
		Kind:        ChartCumulativeConfirmed,
		XField:      FieldDate,
		YField:      FieldCumulativeConfirmed,
		GroupField:  FieldSubregion,
		Title:       "Number of cumulative confirmed cases in state level(s)",
		XAxis:       "date",
		YAxis:       "cumulative confirmed cases",
		LegendTitle: "State Name",
	}
}

// NewConfirmedOptions plots new cases for the selected subset.
func NewConfirmedOptions() SeriesOptions {
	return SeriesOptions{
		Kind:       ChartNewConfirmed,
		XField:     FieldDate,
		YField:     FieldNewConfirmed,
		GroupField: FieldSubregion,
		Title:      "Number of new confirmed cases in state level(s)",
		XAxis:      "date",
		YAxis:      "New cases",
	}
}

// BuildSeriesChart groups view by opts.GroupField and emits one series per
// group. An empty view yields a valid spec with no series.
func BuildSeriesChart(view RecordView, opts SeriesOptions) *ChartSpec {
	spec := newLineChart(opts)

	for i, g := range GroupByDimension(view, opts.GroupField) {
		spec.Series = append(spec.Series, ChartSeries{
			Name:  g.Key,
			Data:  buildPoints(g.View, opts.XField, opts.YField),
			Color: defaultColors[i%len(defaultColors)],
		})
	}

	spec.Colors = assignColors(len(spec.Series))
	return spec
}

// BuildModelComparisonChart plots the selected models' values, one series per
// model, with a dashed vertical marker at boundary. Models are matched
// case-insensitively; an empty selection yields zero series, not an error.
// A zero boundary omits the marker.
//
// When view spans more than one subregion the series are split per
// subregion too, so lines from different states never join.
func BuildModelComparisonChart(view RecordView, selectedModels []string, boundary time.Time) *ChartSpec {
	spec := newLineChart(SeriesOptions{
		Kind:        ChartModelComparison,
		XField:      FieldDate,
		YField:      FieldValue,
		GroupField:  FieldModel,
		Title:       "Comparison of Models",
		XAxis:       "date",
		YAxis:       "New cases",
		LegendTitle: "Model",
	})

	if !boundary.IsZero() {
		spec.Marker = &Marker{
			Label: boundary.Format(DateLayout),
			Color: "darkred",
			Dash:  "dash",
		}
		spec.Note = ComparisonNote
	}

	selected := FilterByDimension(view, FieldModel, selectedModels)
	splitBySubregion := len(UniqueValues(selected, FieldSubregion)) > 1

	for i, g := range GroupByDimension(selected, FieldModel) {
		if !splitBySubregion {
			spec.Series = append(spec.Series, ChartSeries{
				Name:  g.Key,
				Data:  buildPoints(g.View, FieldDate, FieldValue),
				Color: defaultColors[i%len(defaultColors)],
			})
			continue
		}
		for _, sg := range GroupByDimension(g.View, FieldSubregion) {
			spec.Series = append(spec.Series, ChartSeries{
				Name:  g.Key + " (" + sg.Key + ")",
				Data:  buildPoints(sg.View, FieldDate, FieldValue),
				Color: defaultColors[len(spec.Series)%len(defaultColors)],
			})
		}
	}

	spec.Colors = assignColors(len(spec.Series))
	return spec
}

// ============================================================================
// HELPERS
// ============================================================================

func newLineChart(opts SeriesOptions) *ChartSpec {
	return &ChartSpec{
		Kind:        opts.Kind,
		ChartType:   "line",
		Title:       opts.Title,
		TitleAlign:  "center",
		XField:      opts.XField,
		YField:      opts.YField,
		GroupField:  opts.GroupField,
		XAxis:       opts.XAxis,
		YAxis:       opts.YAxis,
		LegendTitle: opts.LegendTitle,
		ShowLegend:  true,
		Series:      []ChartSeries{},
	}
}

func buildPoints(view RecordView, xField, yField string) []ChartPoint {
	points := make([]ChartPoint, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		label := view.Dimension(i, xField)
		if xField == FieldDate {
			label = view.Date(i).Format(DateLayout)
		}
		points = append(points, ChartPoint{
			Label: label,
			Value: view.Measure(i, yField),
		})
	}
	return points
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
