package handlers

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/spektr-org/covidash/cache"
	"github.com/spektr-org/covidash/engine"
	"github.com/spektr-org/covidash/observability"
	"github.com/spektr-org/covidash/render"
)

// HeaderCache reports whether a chart image came from the cache.
const HeaderCache = "X-Cache"

// GetChartImage handles GET /charts/:kind?format=png|svg&width=&height=
// plus the /dashboard filter parameters.
func (s *Server) GetChartImage(c fiber.Ctx) error {
	kind, err := engine.ParseChartKind(c.Params("kind"))
	if err != nil {
		return ErrUnknownChartKind
	}
	format, err := render.ParseFormat(c.Query("format"))
	if err != nil {
		return ErrUnknownFormat
	}
	criteria, err := s.parseCriteria(c)
	if err != nil {
		return err
	}
	opts := render.Options{
		Width:  fiber.Query[int](c, "width", render.DefaultWidth),
		Height: fiber.Query[int](c, "height", render.DefaultHeight),
	}
	if err := opts.Validate(); err != nil {
		return ErrImageTooLarge
	}

	criteria = engine.NormalizeCriteria(criteria)
	key := chartCacheKey(kind, format, opts, criteria)
	log := s.log.WithFields(logrus.Fields{"kind": kind, "format": format})

	ctx := c.Context()
	if img, err := s.cache.Get(ctx, key); err == nil {
		observability.RecordChartServed(string(kind), string(format), "hit")
		return sendImage(c, format, img, "hit")
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		observability.RecordError("cache", "get")
		log.WithError(err).Warn("Chart cache lookup failed")
	}

	img, err := s.renderChart(kind, format, opts, criteria)
	if err != nil {
		return err
	}

	cacheResult := "miss"
	if _, ok := s.cache.(cache.NoopProvider); ok {
		cacheResult = "disabled"
	} else {
		s.storeChart(ctx, key, img, log)
	}
	observability.RecordChartServed(string(kind), string(format), cacheResult)

	return sendImage(c, format, img, cacheResult)
}

func (s *Server) renderChart(kind engine.ChartKind, format render.Format, opts render.Options, criteria engine.FilterCriteria) ([]byte, error) {
	spec, err := engine.Chart(kind, criteria, s.data, s.engineOptions()...)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	var buf bytes.Buffer
	if err := render.Render(&buf, spec, format, opts); err != nil {
		if errors.Is(err, render.ErrEmptyChart) {
			return nil, ErrEmptyChart
		}
		observability.RecordError("api", "render")
		s.log.WithError(err).WithField("kind", kind).Error("Failed to render chart")
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
	}
	observability.RecordRender(string(kind), string(format), time.Since(started).Seconds())

	return buf.Bytes(), nil
}

func (s *Server) storeChart(ctx context.Context, key string, img []byte, log logrus.FieldLogger) {
	if err := s.cache.Set(ctx, key, img, s.settings.CacheTTL); err != nil {
		observability.RecordError("cache", "set")
		log.WithError(err).Warn("Failed to cache chart")
	}
}

func sendImage(c fiber.Ctx, format render.Format, img []byte, cacheResult string) error {
	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(HeaderCache, cacheResult)
	return c.Send(img)
}

// chartCacheKey identifies a rendered image by every input that shapes it.
// Criteria must already be normalized.
func chartCacheKey(kind engine.ChartKind, format render.Format, opts render.Options, criteria engine.FilterCriteria) string {
	parts := []string{
		"chart",
		string(kind),
		string(format),
		strconv.Itoa(opts.Width) + "x" + strconv.Itoa(opts.Height),
		string(criteria.Mode),
		criteria.Start.Format(engine.DateLayout),
		criteria.End.Format(engine.DateLayout),
		strings.Join(criteria.Subregions, ","),
		strings.Join(criteria.ComparisonSubregions, ","),
		strings.Join(criteria.Models, ","),
	}
	return cache.Key(parts...)
}
