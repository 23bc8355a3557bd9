package schema

import (
	"strings"

	"github.com/spektr-org/covidash/engine"
)

// ============================================================================
// SCHEMA — Describes the columns of one dashboard input file
// ============================================================================
// Auto-discovered from the CSV header and a row sample. The dataset loader
// uses it to pick indicator columns; the API and CLI expose it next to the
// glossary so every measure carries its category and description.
// ============================================================================

// Config describes the complete shape of a dataset file.
type Config struct {
	Name string `json:"name"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`

	// Auto-discovery metadata
	DiscoveredFrom string `json:"discoveredFrom,omitempty"`
	DiscoveredAt   string `json:"discoveredAt,omitempty"`

	// Columns skipped during auto-discovery
	SkippedColumns []SkippedColumn `json:"skippedColumns,omitempty"`
}

// DimensionMeta describes a string column. Index columns (subregion, date)
// identify a record; other dimensions are carried for display only.
type DimensionMeta struct {
	Key             string   `json:"key"`
	DisplayName     string   `json:"displayName"`
	Description     string   `json:"description,omitempty"`
	SampleValues    []string `json:"sampleValues"`
	IsIndex         bool     `json:"isIndex,omitempty"`
	IsTemporal      bool     `json:"isTemporal,omitempty"`
	TemporalFormat  string   `json:"temporalFormat,omitempty"`
	CardinalityHint string   `json:"cardinalityHint,omitempty"` // "low", "medium", "high"
}

// MeasureMeta describes a numeric column.
type MeasureMeta struct {
	Key         string          `json:"key"`
	Header      string          `json:"header"`
	DisplayName string          `json:"displayName"`
	Description string          `json:"description,omitempty"`
	Category    engine.Category `json:"category,omitempty"`
	Unit        string          `json:"unit,omitempty"` // "count", "level", "percent", "index"
}

// SkippedColumn records why a column was excluded during auto-discovery.
type SkippedColumn struct {
	Column string `json:"column"`
	Reason string `json:"reason"`
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// Measure looks up a measure by key.
func (c Config) Measure(key string) (MeasureMeta, bool) {
	for _, m := range c.Measures {
		if m.Key == key {
			return m, true
		}
	}
	return MeasureMeta{}, false
}

// MeasuresIn returns the measures guessed to belong to category, in column order.
func (c Config) MeasuresIn(category engine.Category) []MeasureMeta {
	out := make([]MeasureMeta, 0)
	for _, m := range c.Measures {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out
}

// ColumnCount is the number of columns in the discovered file, skipped
// columns included.
func (c Config) ColumnCount() int {
	return len(c.Dimensions) + len(c.Measures) + len(c.SkippedColumns)
}

// ColumnKey normalizes a CSV header into the key used by the engine.
func ColumnKey(header string) string {
	return toSnakeCase(strings.TrimSpace(header))
}
