package engine

import (
	"testing"
	"time"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", s, err)
	}
	return d
}

func dailyFixture(t *testing.T) []DailyRecord {
	t.Helper()
	return []DailyRecord{
		{SubregionCode: "CA", Date: day(t, "2020-03-05"), NewConfirmed: 10, CumulativeConfirmed: 10, Indicators: map[string]float64{"stringency_index": 40}},
		{SubregionCode: "TX", Date: day(t, "2020-03-05"), NewConfirmed: 20, CumulativeConfirmed: 20, Indicators: map[string]float64{"stringency_index": 30}},
		{SubregionCode: "CA", Date: day(t, "2020-03-10"), NewConfirmed: 15, CumulativeConfirmed: 25, Indicators: map[string]float64{"stringency_index": 55.5}},
		{SubregionCode: "NY", Date: day(t, "2020-03-04"), NewConfirmed: 7, CumulativeConfirmed: 7},
		{SubregionCode: "CA", Date: day(t, "2020-03-03"), NewConfirmed: 2, CumulativeConfirmed: 2},
	}
}

func modelFixture(t *testing.T) []ModelSeriesRecord {
	t.Helper()
	return []ModelSeriesRecord{
		{SubregionCode: "TX", Date: day(t, "2021-11-01"), Model: "prediction", Value: 100},
		{SubregionCode: "TX", Date: day(t, "2021-11-01"), Model: "arima", Value: 90},
		{SubregionCode: "TX", Date: day(t, "2021-11-06"), Model: "forecast", Value: 120},
		{SubregionCode: "CA", Date: day(t, "2021-11-01"), Model: "prediction", Value: 300},
		{SubregionCode: "TX", Date: day(t, "2021-11-02"), Model: "prediction", Value: 110},
	}
}

type fixtureSource struct {
	daily      RecordView
	comparison RecordView
}

func (s fixtureSource) Daily() RecordView      { return s.daily }
func (s fixtureSource) Comparison() RecordView { return s.comparison }

func newFixtureSource(t *testing.T) fixtureSource {
	t.Helper()
	return fixtureSource{
		daily:      NewDailyView(dailyFixture(t), []string{"stringency_index"}),
		comparison: NewModelSeriesView(modelFixture(t)),
	}
}

type row struct {
	subregion string
	date      string
	newCases  float64
}

func collectRows(view RecordView) []row {
	rows := make([]row, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		rows = append(rows, row{
			subregion: view.Dimension(i, FieldSubregion),
			date:      view.Date(i).Format(DateLayout),
			newCases:  view.Measure(i, FieldNewConfirmed),
		})
	}
	return rows
}
