package engine

import (
	"strings"
	"time"
)

// ============================================================================
// FILTERS — Subregion, date and dimension filtering via RecordView
// ============================================================================
// Single-pass filters returning a SubView (index list into parent). Input
// order is preserved and nothing is sorted.
// ============================================================================

// FilterBySubregion narrows view according to the criteria's subregion mode.
//
// SubregionsAll returns view itself: the full history with no date narrowing.
// Any other mode, unset included, keeps records whose subregion is selected
// and whose date lies strictly between Start and End. Unknown codes simply
// match nothing.
func FilterBySubregion(view RecordView, criteria FilterCriteria) RecordView {
	if criteria.Mode == SubregionsAll {
		return view
	}

	set := toLowerSet(criteria.Subregions)
	start, end := truncateDay(criteria.Start), truncateDay(criteria.End)

	n := view.Len()
	indices := make([]int, 0)
	if len(set) == 0 {
		return newSubView(view, indices)
	}
	for i := 0; i < n; i++ {
		if !set[strings.ToLower(view.Dimension(i, FieldSubregion))] {
			continue
		}
		if inOpenRange(truncateDay(view.Date(i)), start, end) {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

// FilterByDimension keeps records whose dimension value is one of allowed.
// Unlike an unset filter, an empty allowed list matches nothing.
func FilterByDimension(view RecordView, dimension string, allowed []string) RecordView {
	set := toLowerSet(allowed)
	indices := make([]int, 0)
	if len(set) == 0 {
		return newSubView(view, indices)
	}

	n := view.Len()
	for i := 0; i < n; i++ {
		if set[strings.ToLower(view.Dimension(i, dimension))] {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}

// Head returns a view of the first n records (all when n exceeds Len).
func Head(view RecordView, n int) RecordView {
	if n < 0 {
		n = 0
	}
	if n > view.Len() {
		n = view.Len()
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return newSubView(view, indices)
}

func inOpenRange(t, start, end time.Time) bool {
	return t.After(start) && t.Before(end)
}

// toLowerSet converts a string slice to a lowercase lookup set.
func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		set[strings.ToLower(item)] = true
	}
	return set
}
