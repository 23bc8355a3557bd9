package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSeriesChart_GroupsInFirstAppearanceOrder(t *testing.T) {
	view := NewDailyView(dailyFixture(t), nil)

	spec := BuildSeriesChart(view, AllStatesNewCasesOptions())

	require.Len(t, spec.Series, 3)
	assert.Equal(t, "CA", spec.Series[0].Name)
	assert.Equal(t, "TX", spec.Series[1].Name)
	assert.Equal(t, "NY", spec.Series[2].Name)

	// Points keep input order; dates are not re-sorted.
	assert.Equal(t, []ChartPoint{
		{Label: "2020-03-05", Value: 10},
		{Label: "2020-03-10", Value: 15},
		{Label: "2020-03-03", Value: 2},
	}, spec.Series[0].Data)

	assert.Len(t, spec.Colors, 3)
	assert.Equal(t, spec.Colors[1], spec.Series[1].Color)
}

func TestBuildSeriesChart_Presets(t *testing.T) {
	view := NewDailyView(dailyFixture(t), nil)

	tests := []struct {
		name   string
		opts   SeriesOptions
		kind   ChartKind
		yField string
		title  string
		yAxis  string
	}{
		{
			name:   "all states",
			opts:   AllStatesNewCasesOptions(),
			kind:   ChartAllStatesNewCases,
			yField: FieldNewConfirmed,
			title:  "Number of new cases of all states",
			yAxis:  "New cases",
		},
		{
			name:   "cumulative",
			opts:   CumulativeConfirmedOptions(),
			kind:   ChartCumulativeConfirmed,
			yField: FieldCumulativeConfirmed,
			title:  "Number of cumulative confirmed cases in state level(s)",
			yAxis:  "cumulative confirmed cases",
		},
		{
			name:   "new confirmed",
			opts:   NewConfirmedOptions(),
			kind:   ChartNewConfirmed,
			yField: FieldNewConfirmed,
			title:  "Number of new confirmed cases in state level(s)",
			yAxis:  "New cases",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := BuildSeriesChart(view, tt.opts)

			assert.Equal(t, tt.kind, spec.Kind)
			assert.Equal(t, "line", spec.ChartType)
			assert.Equal(t, tt.title, spec.Title)
			assert.Equal(t, "center", spec.TitleAlign)
			assert.Equal(t, FieldDate, spec.XField)
			assert.Equal(t, tt.yField, spec.YField)
			assert.Equal(t, FieldSubregion, spec.GroupField)
			assert.Equal(t, "date", spec.XAxis)
			assert.Equal(t, tt.yAxis, spec.YAxis)
			assert.True(t, spec.ShowLegend)
			assert.Nil(t, spec.Marker)
		})
	}
}

func TestBuildSeriesChart_CumulativeValues(t *testing.T) {
	view := NewDailyView(dailyFixture(t), nil)

	spec := BuildSeriesChart(view, CumulativeConfirmedOptions())

	require.NotEmpty(t, spec.Series)
	assert.Equal(t, 25.0, spec.Series[0].Data[1].Value)
}

func TestBuildSeriesChart_EmptyView(t *testing.T) {
	spec := BuildSeriesChart(NewDailyView(nil, nil), NewConfirmedOptions())

	assert.NotNil(t, spec.Series)
	assert.Empty(t, spec.Series)
	assert.True(t, spec.ShowLegend)
}

func TestBuildModelComparisonChart(t *testing.T) {
	view := FilterByDimension(NewModelSeriesView(modelFixture(t)), FieldSubregion, []string{"TX"})
	boundary := DefaultForecastBoundary()

	spec := BuildModelComparisonChart(view, []string{"prediction", "forecast", "arima"}, boundary)

	assert.Equal(t, ChartModelComparison, spec.Kind)
	assert.Equal(t, "Comparison of Models", spec.Title)
	assert.Equal(t, FieldModel, spec.GroupField)
	assert.Equal(t, FieldValue, spec.YField)
	assert.True(t, spec.ShowLegend)

	require.NotNil(t, spec.Marker)
	assert.Equal(t, "2021-11-05", spec.Marker.Label)
	assert.Equal(t, "darkred", spec.Marker.Color)
	assert.Equal(t, "dash", spec.Marker.Dash)
	assert.Equal(t, ComparisonNote, spec.Note)

	require.Len(t, spec.Series, 3)
	assert.Equal(t, "prediction", spec.Series[0].Name)
	assert.Equal(t, []ChartPoint{
		{Label: "2021-11-01", Value: 100},
		{Label: "2021-11-02", Value: 110},
	}, spec.Series[0].Data)
	assert.Equal(t, "arima", spec.Series[1].Name)
	assert.Equal(t, "forecast", spec.Series[2].Name)
}

func TestBuildModelComparisonChart_SubsetOfModels(t *testing.T) {
	view := FilterByDimension(NewModelSeriesView(modelFixture(t)), FieldSubregion, []string{"TX"})

	spec := BuildModelComparisonChart(view, []string{"FORECAST"}, DefaultForecastBoundary())

	require.Len(t, spec.Series, 1)
	assert.Equal(t, "forecast", spec.Series[0].Name)
}

func TestBuildModelComparisonChart_EmptySelection(t *testing.T) {
	view := NewModelSeriesView(modelFixture(t))

	spec := BuildModelComparisonChart(view, nil, DefaultForecastBoundary())

	require.NotNil(t, spec)
	assert.Empty(t, spec.Series)
	assert.NotNil(t, spec.Marker, "marker is drawn even without series")
}

func TestBuildModelComparisonChart_ZeroBoundaryOmitsMarker(t *testing.T) {
	spec := BuildModelComparisonChart(NewModelSeriesView(modelFixture(t)), []string{"prediction"}, time.Time{})

	assert.Nil(t, spec.Marker)
	assert.Empty(t, spec.Note)
	assert.NotEmpty(t, spec.Series)
}

func TestBuildModelComparisonChart_SplitsSeriesPerSubregion(t *testing.T) {
	view := NewModelSeriesView(modelFixture(t))

	spec := BuildModelComparisonChart(view, []string{"prediction"}, DefaultForecastBoundary())

	require.Len(t, spec.Series, 2)
	assert.Equal(t, "prediction (TX)", spec.Series[0].Name)
	assert.Equal(t, "prediction (CA)", spec.Series[1].Name)
	assert.Len(t, spec.Series[0].Data, 2)
	assert.Len(t, spec.Series[1].Data, 1)
}
