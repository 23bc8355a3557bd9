package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/spektr-org/covidash/engine"
	"github.com/spektr-org/covidash/observability"
)

// GetOverview handles GET /overview
func (s *Server) GetOverview(c fiber.Ctx) error {
	return c.JSON(s.data.Overview(s.settings.PreviewRows))
}

// ListSubregions handles GET /subregions
func (s *Server) ListSubregions(c fiber.Ctx) error {
	return c.JSON(SubregionsResponse{
		Subregions:                  s.data.Subregions(),
		ComparisonSubregions:        s.data.ComparisonSubregions(),
		DefaultComparisonSubregions: s.settings.ComparisonSubregions,
	})
}

// ListModels handles GET /models
func (s *Server) ListModels(c fiber.Ctx) error {
	return c.JSON(ModelsResponse{Models: s.data.Models()})
}

// GetSchema handles GET /schema
func (s *Server) GetSchema(c fiber.Ctx) error {
	return c.JSON(s.data.Schema())
}

// ValidateRange handles GET /validate?start=&end=
func (s *Server) ValidateRange(c fiber.Ctx) error {
	start, end, err := s.parseRange(c)
	if err != nil {
		return err
	}
	return c.JSON(engine.ValidateRange(start, end, s.settings.Bounds))
}

// GetDashboard handles GET /dashboard and returns everything one
// interaction renders.
func (s *Server) GetDashboard(c fiber.Ctx) error {
	criteria, err := s.parseCriteria(c)
	if err != nil {
		return err
	}

	started := time.Now()
	result, err := engine.Execute(criteria, s.data, s.engineOptions()...)
	if err != nil {
		observability.RecordError("api", "execute")
		s.log.WithError(err).Error("Failed to execute dashboard query")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to execute query")
	}
	observability.RecordQuery(string(result.Criteria.Mode), string(result.Validation.Status),
		time.Since(started).Seconds())

	return c.JSON(result)
}

// parseCriteria builds FilterCriteria from the query string:
//
//	start, end      YYYY-MM-DD; default to the dataset bounds
//	all_states      yes|no; default no
//	subregions      comma list
//	comparison      comma list; absent means the configured default
//	models          comma list; absent means every model
func (s *Server) parseCriteria(c fiber.Ctx) (engine.FilterCriteria, error) {
	start, end, err := s.parseRange(c)
	if err != nil {
		return engine.FilterCriteria{}, err
	}

	criteria := engine.FilterCriteria{
		Start:      start,
		End:        end,
		Mode:       engine.SubregionsSelected,
		Subregions: splitList(c.Query("subregions")),
	}

	switch strings.ToLower(strings.TrimSpace(c.Query("all_states", "no"))) {
	case "yes", "true":
		criteria.Mode = engine.SubregionsAll
	case "no", "false", "":
	default:
		return engine.FilterCriteria{}, ErrInvalidAllStates
	}

	queries := c.Queries()
	if v, ok := queries["comparison"]; ok {
		criteria.ComparisonSubregions = splitList(v)
	} else {
		criteria.ComparisonSubregions = append([]string(nil), s.settings.ComparisonSubregions...)
	}
	if v, ok := queries["models"]; ok {
		criteria.Models = splitList(v)
	} else {
		criteria.Models = s.data.Models()
	}

	return criteria, nil
}

func (s *Server) parseRange(c fiber.Ctx) (start, end time.Time, err error) {
	start, end = s.settings.Bounds.Min, s.settings.Bounds.Max
	if v := c.Query("start"); v != "" {
		if start, err = engine.ParseDate(v); err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDate
		}
	}
	if v := c.Query("end"); v != "" {
		if end, err = engine.ParseDate(v); err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDate
		}
	}
	return start, end, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// ============================================================================
// GLOSSARY
// ============================================================================

// ListGlossary handles GET /glossary
func (s *Server) ListGlossary(c fiber.Ctx) error {
	categories := engine.Categories()
	resp := GlossaryResponse{
		Index:      engine.IndexVariables(),
		Categories: make([]CategoryGlossary, 0, len(categories)),
	}
	for _, cat := range categories {
		resp.Categories = append(resp.Categories, newCategoryGlossary(cat))
	}
	return c.JSON(resp)
}

// GetGlossaryCategory handles GET /glossary/:category. The category may be
// its key or its display label.
func (s *Server) GetGlossaryCategory(c fiber.Ctx) error {
	cat, err := engine.ParseCategory(c.Params("category"))
	if err != nil {
		if errors.Is(err, engine.ErrUnknownCategory) {
			return ErrUnknownCategory
		}
		return err
	}
	return c.JSON(newCategoryGlossary(cat))
}

func newCategoryGlossary(cat engine.Category) CategoryGlossary {
	return CategoryGlossary{
		Key:     string(cat),
		Label:   cat.Label(),
		Entries: engine.DescribeCategory(cat),
	}
}
