package engine

import (
	"fmt"
	"time"
)

// ============================================================================
// DATE RANGE VALIDATION
// ============================================================================
// Classifies a user-supplied range. Never fails: the caller decides whether
// to warn, refuse, or render a best-effort (possibly empty) chart.
// ============================================================================

// RangeStatus is the outcome of ValidateRange.
type RangeStatus string

const (
	RangeValid       RangeStatus = "valid"
	RangeInverted    RangeStatus = "inverted_range"
	RangeOutOfBounds RangeStatus = "out_of_bounds"
)

// DateBounds is the dataset's known [Min, Max] date range.
type DateBounds struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}

// DefaultBounds is the range covered by the published dataset snapshot.
func DefaultBounds() DateBounds {
	return DateBounds{
		Min: time.Date(2020, time.March, 2, 0, 0, 0, 0, time.UTC),
		Max: time.Date(2021, time.November, 10, 0, 0, 0, 0, time.UTC),
	}
}

// DefaultForecastBoundary separates retrospective predictions from true
// forecasts in the published comparison table.
func DefaultForecastBoundary() time.Time {
	return time.Date(2021, time.November, 5, 0, 0, 0, 0, time.UTC)
}

// RangeCheck is a classified range plus the message to surface for it.
type RangeCheck struct {
	Status  RangeStatus `json:"status"`
	Message string      `json:"message,omitempty"`
}

// Valid reports whether the range passed every check.
func (c RangeCheck) Valid() bool { return c.Status == RangeValid }

// ValidateRange classifies start/end against bounds.
// An inverted range (end on or before start) wins over out-of-bounds.
func ValidateRange(start, end time.Time, bounds DateBounds) RangeCheck {
	start, end = truncateDay(start), truncateDay(end)

	if !start.Before(end) {
		return RangeCheck{
			Status:  RangeInverted,
			Message: "Error: End date must fall after start date.",
		}
	}

	if start.Before(truncateDay(bounds.Min)) || end.After(truncateDay(bounds.Max)) {
		return RangeCheck{
			Status: RangeOutOfBounds,
			Message: fmt.Sprintf("The starting date in the data set was %s, the ending date in the data set was %s. "+
				"Please make sure your time input is within this range.",
				bounds.Min.Format(DateLayout), bounds.Max.Format(DateLayout)),
		}
	}

	return RangeCheck{Status: RangeValid}
}

// ParseDate parses a calendar date in DateLayout as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// truncateDay drops the clock part so only calendar dates are compared.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
