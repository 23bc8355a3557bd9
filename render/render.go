// Package render draws engine chart specs as PNG or SVG images with go-chart.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/covidash/engine"
)

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 512

	// MaxWidth and MaxHeight bound the raster go-chart allocates.
	MaxWidth  = 4096
	MaxHeight = 4096
)

var (
	// ErrEmptyChart is returned when a spec has no plottable points.
	ErrEmptyChart = errors.New("chart has no data points")
	// ErrUnknownFormat is returned for formats other than png and svg.
	ErrUnknownFormat = errors.New("unknown image format")
	// ErrImageTooLarge is returned when a dimension exceeds MaxWidth or MaxHeight.
	ErrImageTooLarge = errors.New("image dimensions too large")
)

// Options sizes the rendered image. Zero values fall back to the defaults.
type Options struct {
	Width  int
	Height int
}

// Validate rejects dimensions above MaxWidth or MaxHeight.
func (o Options) Validate() error {
	if o.Width > MaxWidth || o.Height > MaxHeight {
		return fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrImageTooLarge, o.Width, o.Height, MaxWidth, MaxHeight)
	}
	return nil
}

// ParseFormat validates an image format string. Empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Render writes spec to w as an image. Every field of the spec is honored;
// the renderer adds nothing of its own beyond padding degenerate ranges.
func Render(w io.Writer, spec *engine.ChartSpec, format Format, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	provider, err := rendererFor(format)
	if err != nil {
		return err
	}

	series, span, err := buildSeries(spec)
	if err != nil {
		return err
	}

	ch := chart.Chart{
		Title:  spec.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:           spec.XAxis,
			ValueFormatter: chart.TimeValueFormatterWithFormat(engine.DateLayout),
			Range:          &chart.ContinuousRange{Min: span.xMin, Max: span.xMax},
		},
		YAxis: chart.YAxis{
			Name:  spec.YAxis,
			Range: &chart.ContinuousRange{Min: span.yMin, Max: span.yMax},
		},
		Series: series,
	}
	if spec.ShowLegend {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", spec.Kind, err)
	}
	return nil
}

func rendererFor(format Format) (chart.RendererProvider, error) {
	switch format {
	case PNG, "":
		return chart.PNG, nil
	case SVG:
		return chart.SVG, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

type extent struct {
	xMin, xMax float64
	yMin, yMax float64
	seen       bool
}

func (e *extent) add(x, y float64) {
	if !e.seen {
		e.xMin, e.xMax, e.yMin, e.yMax = x, x, y, y
		e.seen = true
		return
	}
	e.xMin = min(e.xMin, x)
	e.xMax = max(e.xMax, x)
	e.yMin = min(e.yMin, y)
	e.yMax = max(e.yMax, y)
}

// pad widens zero-width ranges; go-chart rejects them.
func (e *extent) pad() {
	if e.xMax <= e.xMin {
		day := float64(24 * time.Hour)
		e.xMin -= day
		e.xMax += day
	}
	if e.yMax <= e.yMin {
		e.yMin--
		e.yMax++
	}
}

func buildSeries(spec *engine.ChartSpec) ([]chart.Series, extent, error) {
	var span extent
	series := make([]chart.Series, 0, len(spec.Series)+1)

	for i, s := range spec.Series {
		xs := make([]time.Time, 0, len(s.Data))
		ys := make([]float64, 0, len(s.Data))
		for _, p := range s.Data {
			d, err := engine.ParseDate(p.Label)
			if err != nil {
				continue
			}
			xs = append(xs, d)
			ys = append(ys, p.Value)
			span.add(chart.TimeToFloat64(d), p.Value)
		}
		if len(xs) == 0 {
			continue
		}
		// go-chart needs two points to draw a line
		if len(xs) == 1 {
			xs = append(xs, xs[0].Add(time.Hour))
			ys = append(ys, ys[0])
		}
		series = append(series, chart.TimeSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: seriesColor(spec, s, i),
				StrokeWidth: 2,
			},
		})
	}

	if !span.seen {
		return nil, span, ErrEmptyChart
	}

	if spec.Marker != nil {
		if boundary, err := engine.ParseDate(spec.Marker.Label); err == nil {
			x := chart.TimeToFloat64(boundary)
			span.xMin = min(span.xMin, x)
			span.xMax = max(span.xMax, x)
			span.pad()
			series = append(series, markerSeries(spec.Marker, boundary, span))
			return series, span, nil
		}
	}

	span.pad()
	return series, span, nil
}

// markerSeries draws the marker as a two-point vertical line spanning the y range.
func markerSeries(m *engine.Marker, at time.Time, span extent) chart.Series {
	style := chart.Style{
		StrokeColor: parseColor(m.Color),
		StrokeWidth: 2,
	}
	if m.Dash == "dash" {
		style.StrokeDashArray = []float64{6, 4}
	}
	return chart.TimeSeries{
		Name:    m.Label,
		XValues: []time.Time{at, at},
		YValues: []float64{span.yMin, span.yMax},
		Style:   style,
	}
}

func seriesColor(spec *engine.ChartSpec, s engine.ChartSeries, i int) drawing.Color {
	switch {
	case s.Color != "":
		return parseColor(s.Color)
	case len(spec.Colors) > 0:
		return parseColor(spec.Colors[i%len(spec.Colors)])
	}
	return chart.GetDefaultColor(i)
}

//nolint:gochecknoglobals // read-only lookup table
var namedColors = map[string]string{
	"darkred": "8b0000",
	"red":     "ff0000",
	"black":   "000000",
	"gray":    "808080",
}

// parseColor accepts "#rrggbb", "rrggbb" or a few CSS color names.
func parseColor(s string) drawing.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return chart.ColorBlack
	}
	return drawing.ColorFromHex(s)
}
