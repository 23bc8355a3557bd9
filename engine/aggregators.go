package engine

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ============================================================================
// GROUPING — Ordered grouping and view summaries
// ============================================================================
// Groups keep first-appearance order; rows inside a group keep view order.
// ============================================================================

// Group is a set of rows sharing one dimension value.
type Group struct {
	Key  string
	View RecordView
}

// GroupByDimension splits view into groups by dimension, in first-appearance order.
func GroupByDimension(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:  key,
			View: newSubView(view, grouped[key]),
		})
	}
	return groups
}

// UniqueValues returns distinct non-empty values for a dimension in
// first-appearance order.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

// DateSpan returns the earliest and latest dates in view. ok is false for an
// empty view.
func DateSpan(view RecordView) (minDate, maxDate time.Time, ok bool) {
	for i := 0; i < view.Len(); i++ {
		d := view.Date(i)
		if !ok || d.Before(minDate) {
			minDate = d
		}
		if !ok || d.After(maxDate) {
			maxDate = d
		}
		ok = true
	}
	return minDate, maxDate, ok
}

// ============================================================================
// FORMATTING
// ============================================================================

// FormatInt formats an integer with thousands separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// FormatNumber prints whole numbers without decimals, fractions with two.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// LabelForField returns a human-readable label for a column key:
// "cumulative_confirmed" → "Cumulative confirmed".
func LabelForField(field string) string {
	if field == "" {
		return ""
	}
	s := strings.ReplaceAll(field, "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}
