package engine

import "errors"

var (
	// ErrUnknownCategory is returned by ParseCategory for unrecognised input.
	ErrUnknownCategory = errors.New("unknown glossary category")
	// ErrNoSource is returned by Execute when no dataset is supplied.
	ErrNoSource = errors.New("no dataset source")
	// ErrUnknownChartKind is returned when a chart kind is not one of the dashboard charts.
	ErrUnknownChartKind = errors.New("unknown chart kind")
)
