// Package chart renders aggregated series into fixed-size PNG rasters with
// a uniform degrade contract: every call returns an image. An empty series
// yields a "no data" placeholder (a success), and any backend failure or
// panic yields an "error" placeholder flagged as degraded — never a raised
// error, because downstream layout must always receive an image for every
// requested chart slot.
package chart

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"

	"github.com/couchcryptid/storm-report-service/internal/observability"
	"github.com/couchcryptid/storm-report-service/internal/style"
)

// Chart kinds, used in metrics labels and image block sources.
const (
	KindTimeSeries   = "time_series"
	KindDistribution = "distribution"
	KindMonthlyStack = "monthly_stack"
	KindCalendarHeat = "calendar_heat"
)

// Result is the outcome of a chart render. PNG is always a valid image of
// the kind's fixed dimensions. Degraded marks error placeholders so callers
// can log and count them; a "no data" placeholder is not degraded.
type Result struct {
	PNG      []byte
	Width    int
	Height   int
	Degraded bool
	Reason   string
}

// Renderer draws charts. It holds only immutable style state, so concurrent
// calls for one document need no synchronization.
type Renderer struct {
	style   style.Config
	font    *truetype.Font
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a chart renderer using the plotting backend's embedded font.
func New(cfg style.Config, logger *slog.Logger, metrics *observability.Metrics) (*Renderer, error) {
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load chart font: %w", err)
	}
	return &Renderer{style: cfg, font: f, logger: logger, metrics: metrics}, nil
}

// render runs one chart draw inside the degrade boundary. fn must produce a
// PNG of exactly the given size; any error or panic becomes an error
// placeholder of the same size.
func (r *Renderer) render(kind, title string, size style.Size, fn func() ([]byte, error)) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("chart rendering panicked", "kind", kind, "title", title, "panic", p)
			r.metrics.ChartsRendered.WithLabelValues(kind, "degraded").Inc()
			res = r.errorPlaceholder(size, fmt.Sprintf("panic: %v", p))
		}
	}()

	png, err := fn()
	if err != nil {
		r.logger.Error("chart rendering failed", "kind", kind, "title", title, "error", err)
		r.metrics.ChartsRendered.WithLabelValues(kind, "degraded").Inc()
		return r.errorPlaceholder(size, err.Error())
	}

	r.metrics.ChartsRendered.WithLabelValues(kind, "ok").Inc()
	return Result{PNG: png, Width: size.Width, Height: size.Height}
}

// empty returns the fixed-size "no data" placeholder for a kind.
func (r *Renderer) empty(kind string, size style.Size) Result {
	r.metrics.ChartsRendered.WithLabelValues(kind, "empty").Inc()
	return Result{
		PNG:    r.placeholderPNG(size, "No events to display"),
		Width:  size.Width,
		Height: size.Height,
	}
}

func (r *Renderer) errorPlaceholder(size style.Size, reason string) Result {
	return Result{
		PNG:      r.placeholderPNG(size, "Error generating chart"),
		Width:    size.Width,
		Height:   size.Height,
		Degraded: true,
		Reason:   reason,
	}
}

// face builds a font face at the given point size for canvas drawing.
func (r *Renderer) face(points float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{Size: points, DPI: 72})
}

func (r *Renderer) hex(s string) color.RGBA {
	return style.ParseHex(s)
}
