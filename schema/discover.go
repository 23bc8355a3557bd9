package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/spektr-org/covidash/engine"
)

// ============================================================================
// AUTO-DISCOVERY — Heuristic column classification
// ============================================================================
// Inspects a CSV header plus a row sample and builds a Config.
//
// Classification pipeline per column:
//   1. Unnamed header (pandas index export) → skip
//   2. Index column (subregion1_code, date) → index dimension
//   3. Sample values → detect type (numeric, bool, date, string)
//   4. Numeric/bool → measure, with a glossary category guess
//   5. String → display dimension, or skipped when unique per row
// ============================================================================

var (
	ErrNoColumns = errors.New("csv has no columns")
	ErrNoRows    = errors.New("csv has no data rows")
)

// DiscoverOptions controls discovery behavior.
type DiscoverOptions struct {
	SampleSize   int      // Max rows to inspect (0 = all). Default: all
	Name         string   // Dataset name
	IndexColumns []string // Keys treated as record identifiers
}

// DefaultDiscoverOptions returns sensible defaults.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		SampleSize:   0,
		Name:         "covid dataset",
		IndexColumns: []string{engine.FieldSubregion, engine.FieldDate},
	}
}

// DiscoverFromCSV generates a Config by inspecting CSV data.
func DiscoverFromCSV(data []byte, opts ...DiscoverOptions) (*Config, error) {
	opt := DefaultDiscoverOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	if len(headers) == 0 {
		return nil, ErrNoColumns
	}

	var rows [][]string
	for opt.SampleSize <= 0 || len(rows) < opt.SampleSize {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	indexSet := make(map[string]bool, len(opt.IndexColumns))
	for _, key := range opt.IndexColumns {
		indexSet[key] = true
	}

	config := &Config{
		Name:           opt.Name,
		Dimensions:     []DimensionMeta{},
		Measures:       []MeasureMeta{},
		DiscoveredFrom: "CSV",
		DiscoveredAt:   time.Now().Format(time.RFC3339),
	}

	for i, header := range headers {
		col := analyzeColumn(header, i, rows, indexSet)
		switch col.role {
		case roleDimension:
			config.Dimensions = append(config.Dimensions, col.toDimension())
		case roleMeasure:
			config.Measures = append(config.Measures, col.toMeasure())
		case roleSkipped:
			config.SkippedColumns = append(config.SkippedColumns, SkippedColumn{
				Column: header,
				Reason: col.skipReason,
			})
		}
	}

	return config, nil
}

// ============================================================================
// COLUMN ANALYSIS
// ============================================================================

type columnRole int

const (
	roleDimension columnRole = iota
	roleMeasure
	roleSkipped
)

type columnType int

const (
	typeString columnType = iota
	typeNumeric
	typeDate
	typeBool
)

type columnAnalysis struct {
	header     string
	key        string
	colType    columnType
	role       columnRole
	skipReason string
	isIndex    bool

	uniqueCount int
	sampleVals  []string

	cardinalityHint string
}

// analyzeColumn inspects all sampled values in a column and classifies it.
func analyzeColumn(header string, index int, rows [][]string, indexSet map[string]bool) columnAnalysis {
	col := columnAnalysis{
		header: header,
		key:    ColumnKey(header),
	}

	if col.key == "" || strings.HasPrefix(col.key, "unnamed") {
		col.role = roleSkipped
		col.skipReason = "Unnamed column: row index from the export"
		return col
	}

	values := make([]string, 0, len(rows))
	uniqueSet := make(map[string]bool)
	for _, row := range rows {
		if index >= len(row) {
			continue
		}
		val := strings.TrimSpace(row[index])
		if val == "" || strings.EqualFold(val, "null") || strings.EqualFold(val, "nan") || strings.EqualFold(val, "n/a") {
			continue
		}
		values = append(values, val)
		uniqueSet[val] = true
	}
	col.uniqueCount = len(uniqueSet)
	col.sampleVals = collectSamples(uniqueSet, 10)

	switch {
	case col.uniqueCount <= 10:
		col.cardinalityHint = "low"
	case col.uniqueCount <= 100:
		col.cardinalityHint = "medium"
	default:
		col.cardinalityHint = "high"
	}

	if indexSet[col.key] {
		col.isIndex = true
		col.colType = detectType(values)
		col.role = roleDimension
		return col
	}

	if len(values) == 0 {
		col.role = roleSkipped
		col.skipReason = "All values are empty/null"
		return col
	}

	col.colType = detectType(values)
	col.classifyRole(len(rows))
	return col
}

// classifyRole determines measure vs dimension vs skip for non-index columns.
func (col *columnAnalysis) classifyRole(totalRows int) {
	switch col.colType {
	case typeNumeric, typeBool:
		// 0/1 policy flags are levels, not booleans
		col.role = roleMeasure
	case typeDate:
		col.role = roleDimension
	case typeString:
		if col.uniqueCount == totalRows && totalRows > 10 {
			col.role = roleSkipped
			col.skipReason = "Unique per row, likely an identifier"
			return
		}
		col.role = roleDimension
	}
}

// ============================================================================
// TYPE DETECTION
// ============================================================================

// detectType inspects values to determine column type.
// Requires 80%+ of non-null values to match for numeric/date/bool.
func detectType(values []string) columnType {
	if len(values) == 0 {
		return typeString
	}

	numCount, dateCount, boolCount := 0, 0, 0
	for _, v := range values {
		if isNumeric(v) {
			numCount++
		}
		if isDate(v) {
			dateCount++
		}
		if isBool(v) {
			boolCount++
		}
	}

	threshold := int(float64(len(values)) * 0.8)
	switch {
	case boolCount >= threshold:
		return typeBool
	case dateCount >= threshold:
		return typeDate
	case numCount >= threshold:
		return typeNumeric
	}
	return typeString
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

//nolint:gochecknoglobals // read-only format list
var dateFormats = []string{
	engine.DateLayout,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

func isDate(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "false" || s == "1" || s == "0"
}

// ============================================================================
// CATEGORY GUESS
// ============================================================================

//nolint:gochecknoglobals // read-only lookup tables
var (
	covidCountKeys = map[string]bool{
		engine.FieldNewConfirmed:        true,
		engine.FieldCumulativeConfirmed: true,
		engine.FieldCumulativeTested:    true,
		engine.FieldCumulativeRecovered: true,
	}
	geographicPrefixes = []string{"mobility_", "population", "elder", "area_", "latitude", "longitude"}
)

// GuessCategory maps a column key to the glossary category it most likely
// belongs to. ok is false when no rule matches.
func GuessCategory(key string) (engine.Category, bool) {
	switch {
	case covidCountKeys[key], strings.HasPrefix(key, "new_"), strings.HasPrefix(key, "cumulative_"):
		return engine.CategoryCovidData, true
	case strings.HasPrefix(key, "search_trend_"):
		return engine.CategorySearchTrend, true
	case strings.HasSuffix(key, "_closing"):
		return engine.CategoryPolicy, true
	}
	for _, prefix := range geographicPrefixes {
		if strings.HasPrefix(key, prefix) {
			return engine.CategoryGeographic, true
		}
	}
	for _, e := range engine.DescribeCategory(engine.CategoryPolicy) {
		if e.Variable == key {
			return engine.CategoryPolicy, true
		}
	}
	return "", false
}

// describe returns the glossary description for key, matching templated
// variables such as "search_trend_${...}" by prefix.
func describe(key string, entries []engine.GlossaryEntry) string {
	for _, e := range entries {
		if e.Variable == key {
			return e.Description
		}
	}
	for _, e := range entries {
		if i := strings.Index(e.Variable, "${"); i > 0 && strings.HasPrefix(key, e.Variable[:i]) {
			return e.Description
		}
	}
	return ""
}

func unitFor(key string, category engine.Category) string {
	switch category {
	case engine.CategoryCovidData:
		return "count"
	case engine.CategoryPolicy:
		if strings.HasSuffix(key, "_index") {
			return "index"
		}
		return "level"
	case engine.CategorySearchTrend:
		return "index"
	case engine.CategoryGeographic:
		if strings.HasPrefix(key, "mobility_") || strings.HasSuffix(key, "_perc") {
			return "percent"
		}
	}
	return ""
}

// ============================================================================
// CONVERSION HELPERS
// ============================================================================

func (col *columnAnalysis) toDimension() DimensionMeta {
	d := DimensionMeta{
		Key:             col.key,
		DisplayName:     toDisplayName(col.header),
		SampleValues:    col.sampleVals,
		IsIndex:         col.isIndex,
		CardinalityHint: col.cardinalityHint,
	}
	if col.isIndex {
		d.Description = describe(col.key, engine.IndexVariables())
	}
	if col.colType == typeDate {
		d.IsTemporal = true
		d.TemporalFormat = "yyyy-MM-dd"
	}
	return d
}

func (col *columnAnalysis) toMeasure() MeasureMeta {
	m := MeasureMeta{
		Key:         col.key,
		Header:      col.header,
		DisplayName: toDisplayName(col.header),
	}
	if category, ok := GuessCategory(col.key); ok {
		m.Category = category
		m.Description = describe(col.key, engine.DescribeCategory(category))
		m.Unit = unitFor(col.key, category)
	}
	return m
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// toSnakeCase converts "Column Name" or "columnName" → "column_name".
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			prev := rune(s[i-1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}

	s = result.String()
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "__", "_")
	s = strings.Trim(s, "_")
	return s
}

// toDisplayName cleans a header for human display.
// "cumulative_confirmed" → "Cumulative Confirmed"
func toDisplayName(s string) string {
	if strings.Contains(s, " ") {
		return strings.TrimSpace(s)
	}

	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// collectSamples picks up to maxSamples values in sorted order.
func collectSamples(uniqueSet map[string]bool, maxSamples int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}
	sort.Strings(samples)

	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}
