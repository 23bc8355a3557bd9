package dataset

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/sirupsen/logrus"

	"github.com/spektr-org/covidash/engine"
	"github.com/spektr-org/covidash/schema"
)

// ErrFileRequired is returned when the daily or comparison file name is empty.
var ErrFileRequired = errors.New("file name is required")

// Files names the four input tables inside the data directory. Train and
// Test are optional; an empty name skips the file.
type Files struct {
	Daily      string
	Train      string
	Test       string
	Comparison string
}

// Dataset holds the loaded tables. It is read-only after Load and safe for
// concurrent readers.
type Dataset struct {
	daily      engine.RecordView
	train      engine.RecordView
	test       engine.RecordView
	comparison engine.RecordView
	schema     *schema.Config

	subregions           []string
	comparisonSubregions []string
	models               []string
}

// Load reads and parses every configured file from fsys.
func Load(fsys fs.FS, files Files, log logrus.FieldLogger) (*Dataset, error) {
	if files.Daily == "" || files.Comparison == "" {
		return nil, ErrFileRequired
	}
	log = log.WithField("component", "dataset")

	daily, err := loadDaily(fsys, files.Daily)
	if err != nil {
		return nil, err
	}
	train, err := loadOptionalDaily(fsys, files.Train)
	if err != nil {
		return nil, err
	}
	test, err := loadOptionalDaily(fsys, files.Test)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(fsys, files.Comparison)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", files.Comparison, err)
	}
	comparison, err := ParseComparisonCSV(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", files.Comparison, err)
	}

	ds := &Dataset{
		daily:      engine.NewDailyView(daily.Records, daily.IndicatorKeys),
		train:      train,
		test:       test,
		comparison: engine.NewModelSeriesView(comparison),
		schema:     daily.Schema,
	}
	ds.subregions = engine.UniqueValues(ds.daily, engine.FieldSubregion)
	ds.comparisonSubregions = engine.UniqueValues(ds.comparison, engine.FieldSubregion)
	ds.models = engine.UniqueValues(ds.comparison, engine.FieldModel)

	log.WithFields(logrus.Fields{
		"daily":      ds.daily.Len(),
		"train":      ds.train.Len(),
		"test":       ds.test.Len(),
		"comparison": ds.comparison.Len(),
		"indicators": len(daily.IndicatorKeys),
	}).Info("Loaded dataset")

	return ds, nil
}

func loadDaily(fsys fs.FS, name string) (*DailyTable, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	table, err := ParseDailyCSV(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return table, nil
}

func loadOptionalDaily(fsys fs.FS, name string) (engine.RecordView, error) {
	if name == "" {
		return engine.NewDailyView(nil, nil), nil
	}
	table, err := loadDaily(fsys, name)
	if err != nil {
		return nil, err
	}
	return engine.NewDailyView(table.Records, table.IndicatorKeys), nil
}

// Daily returns the full daily history.
func (d *Dataset) Daily() engine.RecordView { return d.daily }

// Comparison returns the model comparison table.
func (d *Dataset) Comparison() engine.RecordView { return d.comparison }

// Train returns the training split (empty when not loaded).
func (d *Dataset) Train() engine.RecordView { return d.train }

// Test returns the test split (empty when not loaded).
func (d *Dataset) Test() engine.RecordView { return d.test }

// Schema returns the discovered columns of the daily table.
func (d *Dataset) Schema() *schema.Config { return d.schema }

// Subregions lists daily-table subregion codes in first-appearance order.
func (d *Dataset) Subregions() []string { return append([]string(nil), d.subregions...) }

// ComparisonSubregions lists comparison-table subregion codes in first-appearance order.
func (d *Dataset) ComparisonSubregions() []string {
	return append([]string(nil), d.comparisonSubregions...)
}

// Models lists comparison model names in first-appearance order.
func (d *Dataset) Models() []string { return append([]string(nil), d.models...) }

// Bounds returns the daily table's date span, or ok=false when it is empty.
func (d *Dataset) Bounds() (engine.DateBounds, bool) {
	lo, hi, ok := engine.DateSpan(d.daily)
	return engine.DateBounds{Min: lo, Max: hi}, ok
}

// Counts reports row counts per table.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		"daily":      d.daily.Len(),
		"train":      d.train.Len(),
		"test":       d.test.Len(),
		"comparison": d.comparison.Len(),
	}
}

// Overview describes the daily table and summarizes each loaded split.
func (d *Dataset) Overview(previewRows int) *engine.Overview {
	columns := 0
	if d.schema != nil {
		columns = d.schema.ColumnCount()
	}
	overview := engine.BuildOverview(d.daily, previewRows, columns)
	overview.Splits = []engine.SplitSummary{engine.SummarizeSplit("full", d.daily)}
	if d.train.Len() > 0 {
		overview.Splits = append(overview.Splits, engine.SummarizeSplit("train", d.train))
	}
	if d.test.Len() > 0 {
		overview.Splits = append(overview.Splits, engine.SummarizeSplit("test", d.test))
	}
	return overview
}
