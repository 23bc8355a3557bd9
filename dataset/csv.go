package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spektr-org/covidash/engine"
	"github.com/spektr-org/covidash/schema"
)

// ============================================================================
// CSV PARSING — Pipeline exports into typed records
// ============================================================================
// The four COVID counts are read whenever their header is present. Every
// other column's role comes from schema discovery over the whole file.
// Rows the csv reader rejects are skipped. A row with an unparseable date
// is a load failure: the tables are expected to be clean exports.
// ============================================================================

var (
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")
	// ErrBadDate is returned when a date cell is not YYYY-MM-DD.
	ErrBadDate = errors.New("invalid date")
)

// DailyTable is a parsed daily history file.
type DailyTable struct {
	Records []engine.DailyRecord
	// IndicatorKeys lists the numeric columns beyond the four counts, in header order.
	IndicatorKeys []string
	Schema        *schema.Config
}

// ParseDailyCSV parses a daily history export (full, train or test split).
func ParseDailyCSV(data []byte) (*DailyTable, error) {
	sch, err := schema.DiscoverFromCSV(data, schema.DefaultDiscoverOptions())
	if err != nil && !errors.Is(err, schema.ErrNoRows) {
		return nil, fmt.Errorf("failed to discover columns: %w", err)
	}

	reader := newReader(data)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	index := headerIndex(headers)

	subCol, err := requireColumn(index, engine.FieldSubregion)
	if err != nil {
		return nil, err
	}
	dateCol, err := requireColumn(index, engine.FieldDate)
	if err != nil {
		return nil, err
	}

	table := &DailyTable{
		Records:       []engine.DailyRecord{},
		IndicatorKeys: []string{},
		Schema:        sch,
	}

	type measureColumn struct {
		key string
		col int
	}
	var measures []measureColumn
	for _, key := range countFields {
		if col, ok := index[key]; ok {
			measures = append(measures, measureColumn{key: key, col: col})
		}
	}
	if sch != nil {
		for _, m := range sch.Measures {
			col, ok := index[m.Key]
			if !ok || isCountField(m.Key) {
				continue
			}
			measures = append(measures, measureColumn{key: m.Key, col: col})
			table.IndicatorKeys = append(table.IndicatorKeys, m.Key)
		}
	}

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			continue // skip malformed rows
		}

		date, err := parseDateCell(row, dateCol, line)
		if err != nil {
			return nil, err
		}
		rec := engine.DailyRecord{
			SubregionCode: cell(row, subCol),
			Date:          date,
			Indicators:    make(map[string]float64),
		}

		for _, m := range measures {
			v, ok := parseNumber(cell(row, m.col))
			if !ok {
				continue
			}
			switch m.key {
			case engine.FieldNewConfirmed:
				rec.NewConfirmed = v
			case engine.FieldCumulativeConfirmed:
				rec.CumulativeConfirmed = v
			case engine.FieldCumulativeTested:
				rec.CumulativeTested = v
			case engine.FieldCumulativeRecovered:
				rec.CumulativeRecovered = v
			default:
				rec.Indicators[m.key] = v
			}
		}

		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// ParseComparisonCSV parses the model comparison export. Rows without a
// numeric value are skipped.
func ParseComparisonCSV(data []byte) ([]engine.ModelSeriesRecord, error) {
	reader := newReader(data)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	index := headerIndex(headers)

	cols := make(map[string]int, 4)
	for _, key := range []string{engine.FieldSubregion, engine.FieldDate, engine.FieldModel, engine.FieldValue} {
		col, err := requireColumn(index, key)
		if err != nil {
			return nil, err
		}
		cols[key] = col
	}

	records := []engine.ModelSeriesRecord{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			continue
		}

		value, ok := parseNumber(cell(row, cols[engine.FieldValue]))
		if !ok {
			continue
		}
		date, err := parseDateCell(row, cols[engine.FieldDate], line)
		if err != nil {
			return nil, err
		}
		records = append(records, engine.ModelSeriesRecord{
			SubregionCode: cell(row, cols[engine.FieldSubregion]),
			Date:          date,
			Model:         cell(row, cols[engine.FieldModel]),
			Value:         value,
		})
	}

	return records, nil
}

// ============================================================================
// HELPERS
// ============================================================================

func newReader(data []byte) *csv.Reader {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1
	return reader
}

// headerIndex maps column keys to positions. Unnamed columns are ignored;
// the first occurrence of a duplicate key wins.
func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := schema.ColumnKey(h)
		if key == "" || strings.HasPrefix(key, "unnamed") {
			continue
		}
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}
	return index
}

func requireColumn(index map[string]int, key string) (int, error) {
	col, ok := index[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingColumn, key)
	}
	return col, nil
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func parseDateCell(row []string, col, line int) (time.Time, error) {
	raw := cell(row, col)
	d, err := engine.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q on line %d", ErrBadDate, raw, line)
	}
	return d, nil
}

func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

//nolint:gochecknoglobals // read-only column list
var countFields = []string{
	engine.FieldNewConfirmed,
	engine.FieldCumulativeConfirmed,
	engine.FieldCumulativeTested,
	engine.FieldCumulativeRecovered,
}

func isCountField(key string) bool {
	switch key {
	case engine.FieldNewConfirmed, engine.FieldCumulativeConfirmed,
		engine.FieldCumulativeTested, engine.FieldCumulativeRecovered:
		return true
	}
	return false
}
