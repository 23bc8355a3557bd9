package engine

import "time"

// ============================================================================
// COVIDASH ENGINE TYPES — Daily records, criteria, chart and table output
// ============================================================================
// Everything in this package is a pure function over read-only views.
// Inputs are loaded once by the dataset package; the engine only derives.
// ============================================================================

// Field keys shared by the loader, the views and the chart builders.
// They match the column names produced by the upstream data pipeline.
const (
	FieldSubregion           = "subregion1_code"
	FieldDate                = "date"
	FieldModel               = "model"
	FieldValue               = "value"
	FieldNewConfirmed        = "new_confirmed"
	FieldCumulativeConfirmed = "cumulative_confirmed"
	FieldCumulativeTested    = "cumulative_tested"
	FieldCumulativeRecovered = "cumulative_recovered"
)

// DateLayout is the calendar date format used for input, labels and markers.
const DateLayout = "2006-01-02"

// ============================================================================
// RECORDS
// ============================================================================

// DailyRecord is one row per (subregion, date) of the full history table.
//
// The four COVID counts are named fields; every other numeric column
// (geographic, policy, search trend, mobility) lives in Indicators keyed by
// its column name.
type DailyRecord struct {
	SubregionCode       string             `json:"subregion1_code"`
	Date                time.Time          `json:"date"`
	NewConfirmed        float64            `json:"new_confirmed"`
	CumulativeConfirmed float64            `json:"cumulative_confirmed"`
	CumulativeTested    float64            `json:"cumulative_tested"`
	CumulativeRecovered float64            `json:"cumulative_recovered"`
	Indicators          map[string]float64 `json:"indicators,omitempty"`
}

// Value returns the numeric field stored under key, or 0 when absent.
func (r DailyRecord) Value(key string) float64 {
	switch key {
	case FieldNewConfirmed:
		return r.NewConfirmed
	case FieldCumulativeConfirmed:
		return r.CumulativeConfirmed
	case FieldCumulativeTested:
		return r.CumulativeTested
	case FieldCumulativeRecovered:
		return r.CumulativeRecovered
	}
	return r.Indicators[key]
}

// ModelSeriesRecord is one row per (subregion, date, model) of the
// model-comparison table. Model is e.g. "prediction", "forecast" or a named variant.
type ModelSeriesRecord struct {
	SubregionCode string    `json:"subregion1_code"`
	Date          time.Time `json:"date"`
	Model         string    `json:"model"`
	Value         float64   `json:"value"`
}

// ============================================================================
// FILTER CRITERIA — One user interaction
// ============================================================================

// SubregionMode selects between the full history and an explicit subset.
type SubregionMode string

const (
	// SubregionsAll plots every subregion over the complete history.
	SubregionsAll SubregionMode = "all"
	// SubregionsSelected narrows to the listed subregions and the date range.
	SubregionsSelected SubregionMode = "selected"
)

// FilterCriteria is built fresh for every interaction and passed explicitly
// into Execute. It is never stored.
type FilterCriteria struct {
	Start      time.Time     `json:"start"`
	End        time.Time     `json:"end"`
	Mode       SubregionMode `json:"mode"`
	Subregions []string      `json:"subregions"`

	// Comparison narrows the model-comparison table by subregion before
	// the model selection applies.
	ComparisonSubregions []string `json:"comparisonSubregions"`
	Models               []string `json:"models"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartKind identifies one of the dashboard's fixed charts.
type ChartKind string

const (
	ChartAllStatesNewCases   ChartKind = "all_states_new_cases"
	ChartCumulativeConfirmed ChartKind = "cumulative_confirmed"
	ChartNewConfirmed        ChartKind = "new_confirmed"
	ChartModelComparison     ChartKind = "model_comparison"
)

// ChartSpec fully determines how a chart is drawn. The renderer adds no
// business logic of its own.
type ChartSpec struct {
	Kind        ChartKind     `json:"kind"`
	ChartType   string        `json:"chartType"`
	Title       string        `json:"title"`
	TitleAlign  string        `json:"titleAlign"`
	XField      string        `json:"xField"`
	YField      string        `json:"yField"`
	GroupField  string        `json:"groupField"`
	XAxis       string        `json:"xAxis"`
	YAxis       string        `json:"yAxis"`
	LegendTitle string        `json:"legendTitle,omitempty"`
	ShowLegend  bool          `json:"showLegend"`
	Series      []ChartSeries `json:"series"`
	Colors      []string      `json:"colors,omitempty"`
	Marker      *Marker       `json:"marker,omitempty"`
	Note        string        `json:"note,omitempty"`
}

// ChartSeries is one line of a chart: all points sharing a group value.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint is a single point. Label holds the x value (a date for every
// dashboard chart, formatted with DateLayout).
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Marker is a vertical line drawn at a fixed x position.
type Marker struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Dash  string `json:"dash"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "date", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// RESULT — Everything one interaction renders
// ============================================================================

// Result is the engine's render-ready output for one FilterCriteria.
type Result struct {
	Success    bool           `json:"success"`
	Criteria   FilterCriteria `json:"criteria"`
	Validation RangeCheck     `json:"validation"`

	// Table is the filtered row subset; nil in SubregionsAll mode.
	Table      *TableData  `json:"table,omitempty"`
	Charts     []ChartSpec `json:"charts"`
	Comparison *ChartSpec  `json:"comparison,omitempty"`

	Errors []string `json:"errors,omitempty"`
}
