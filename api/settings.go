package api

import (
	"github.com/spektr-org/covidash/api/handlers"
	"github.com/spektr-org/covidash/config"
)

// NewSettings converts the dashboard and cache configuration into handler
// settings.
func NewSettings(dash *config.DashboardConfig, cacheCfg *config.CacheConfig) (handlers.Settings, error) {
	bounds, err := dash.Bounds()
	if err != nil {
		return handlers.Settings{}, err
	}
	boundary, err := dash.Boundary()
	if err != nil {
		return handlers.Settings{}, err
	}
	return handlers.Settings{
		Bounds:               bounds,
		ForecastBoundary:     boundary,
		ComparisonSubregions: append([]string(nil), dash.ComparisonSubregions...),
		PreviewRows:          dash.PreviewRows,
		CacheTTL:             cacheCfg.TTL,
	}, nil
}
