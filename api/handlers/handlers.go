// Package handlers implements the dashboard HTTP endpoints.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/spektr-org/covidash/cache"
	"github.com/spektr-org/covidash/engine"
	"github.com/spektr-org/covidash/schema"
)

// Dataset is the read-only data the handlers serve.
type Dataset interface {
	engine.Source
	Subregions() []string
	ComparisonSubregions() []string
	Models() []string
	Overview(previewRows int) *engine.Overview
	Schema() *schema.Config
}

// Settings holds the dashboard defaults applied to every request.
type Settings struct {
	Bounds               engine.DateBounds
	ForecastBoundary     time.Time
	ComparisonSubregions []string
	PreviewRows          int
	CacheTTL             time.Duration
}

// Server serves the dashboard API
type Server struct {
	data     Dataset
	settings Settings
	cache    cache.Provider
	log      logrus.FieldLogger
}

// NewServer creates a new API server instance. A nil provider disables caching.
func NewServer(data Dataset, settings Settings, provider cache.Provider, log logrus.FieldLogger) *Server {
	if provider == nil {
		provider = cache.NoopProvider{}
	}
	return &Server{
		data:     data,
		settings: settings,
		cache:    provider,
		log:      log.WithField("component", "api.handlers"),
	}
}

// Register mounts every endpoint on router.
func (s *Server) Register(router fiber.Router) {
	router.Get("/overview", s.GetOverview)
	router.Get("/glossary", s.ListGlossary)
	router.Get("/glossary/:category", s.GetGlossaryCategory)
	router.Get("/subregions", s.ListSubregions)
	router.Get("/models", s.ListModels)
	router.Get("/schema", s.GetSchema)
	router.Get("/validate", s.ValidateRange)
	router.Get("/dashboard", s.GetDashboard)
	router.Get("/charts/:kind", s.GetChartImage)
}

func (s *Server) engineOptions() []engine.Option {
	return []engine.Option{
		engine.WithBounds(s.settings.Bounds),
		engine.WithForecastBoundary(s.settings.ForecastBoundary),
		engine.WithLogger(s.log),
	}
}
