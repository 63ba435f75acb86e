package geo

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/storm-report-service/internal/domain"
	"github.com/couchcryptid/storm-report-service/internal/observability"
	"github.com/couchcryptid/storm-report-service/internal/style"
)

// Backend rasterizes a map description at a target pixel size. A backend
// must honor context cancellation: a render exceeding the renderer's bound
// is a timeout error, never an indefinite block.
type Backend interface {
	Name() string
	Render(ctx context.Context, desc Description, size style.Size) ([]byte, error)
}

// Renderer builds map descriptions from event data and delegates to the
// backend. Unlike the chart renderer it does not synthesize placeholders:
// backend failure is plausibly an environment problem, surfaced to the
// composer as a *domain.RendererError so it can be reported distinctly
// from a data problem.
type Renderer struct {
	backend Backend
	timeout time.Duration
	style   style.Config
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewRenderer creates a geo renderer with a per-call render timeout.
func NewRenderer(backend Backend, timeout time.Duration, cfg style.Config, logger *slog.Logger, metrics *observability.Metrics) *Renderer {
	return &Renderer{
		backend: backend,
		timeout: timeout,
		style:   cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// MapSize reports the configured map raster size.
func (r *Renderer) MapSize() style.Size { return r.style.Map.Size }

// RenderHeatMap renders a geographic heat map of event concentrations. Heat
// intensity is the event's numeric severity, defaulting to 1.0 when the
// severity is missing or not numeric. With no usable points, the map shows
// a single default marker at the center instead of a heat layer.
func (r *Renderer) RenderHeatMap(ctx context.Context, events []domain.EventRecord, center domain.Geo, title string) ([]byte, error) {
	points, skipped := r.heatPoints(events)
	if skipped > 0 {
		r.logger.Warn("heat map records skipped", "skipped", skipped, "total", len(events))
		r.metrics.RecordsSkipped.WithLabelValues("heat_map").Add(float64(skipped))
	}

	desc := Description{
		Center: center,
		Zoom:   r.style.Map.DefaultZoom,
		Title:  title,
	}
	if len(points) == 0 {
		desc.Markers = []Marker{{Pos: center, Class: ClassDefault, Label: "No events in this area"}}
	} else {
		desc.Heat = points
		desc.Legend = &Legend{
			Title:    "Event Intensity",
			Gradient: r.style.Map.HeatGradient,
			MinLabel: "Low",
			MaxLabel: "High",
		}
	}

	return r.render(ctx, desc)
}

// RenderBoundaryMap renders the analysis boundary polygon with event
// markers colored by severity class. Markers are capped at the configured
// maximum, first-N by input order, to bound render cost and clutter.
func (r *Renderer) RenderBoundaryMap(ctx context.Context, boundary []domain.Geo, events []domain.EventRecord, center domain.Geo, title string) ([]byte, error) {
	markers, skipped := r.markers(events, r.style.Map.MarkerCap)
	if skipped > 0 {
		r.logger.Warn("boundary map records skipped", "skipped", skipped, "total", len(events))
		r.metrics.RecordsSkipped.WithLabelValues("markers").Add(float64(skipped))
	}

	desc := Description{
		Center:   center,
		Zoom:     r.style.Map.DefaultZoom,
		Boundary: boundary,
		Markers:  markers,
		Title:    title,
	}
	return r.render(ctx, desc)
}

// RenderLocationMap renders a single labeled point with a ring marking the
// analysis radius around it.
func (r *Renderer) RenderLocationMap(ctx context.Context, point domain.Geo, label, title string) ([]byte, error) {
	desc := Description{
		Center:  point,
		Zoom:    r.style.Map.DefaultZoom,
		Markers: []Marker{{Pos: point, Class: ClassHigh, Label: label}},
		Circle:  &Circle{Center: point, Meters: r.style.Map.CircleMeters},
		Title:   title,
	}
	return r.render(ctx, desc)
}

// render delegates to the backend under the render timeout. Every exit path
// releases the bound through the deferred cancel; backends must tie any
// subprocess or connection lifetime to the context.
func (r *Renderer) render(ctx context.Context, desc Description) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	png, err := r.backend.Render(ctx, desc, r.style.Map.Size)
	if err != nil {
		r.metrics.MapRenders.WithLabelValues(r.backend.Name(), "error").Inc()
		r.logger.Error("map rendering failed", "backend", r.backend.Name(), "title", desc.Title, "error", err)
		return nil, &domain.RendererError{Backend: r.backend.Name(), Err: err}
	}

	r.metrics.MapRenders.WithLabelValues(r.backend.Name(), "ok").Inc()
	r.metrics.MapRenderDuration.WithLabelValues(r.backend.Name()).Observe(time.Since(start).Seconds())
	return png, nil
}

// heatPoints extracts weighted coordinates from events. Records without
// usable coordinates are skipped; severity weights default to 1.0.
func (r *Renderer) heatPoints(events []domain.EventRecord) ([]HeatPoint, int) {
	points := make([]HeatPoint, 0, len(events))
	var skipped int
	for _, rec := range events {
		pos, ok := rec.Coordinates()
		if !ok {
			skipped++
			continue
		}
		points = append(points, HeatPoint{Pos: pos, Weight: severityWeight(rec)})
	}
	return points, skipped
}

// markers extracts classified markers from the first limit usable events.
func (r *Renderer) markers(events []domain.EventRecord, limit int) ([]Marker, int) {
	if len(events) > limit {
		events = events[:limit]
	}
	markers := make([]Marker, 0, len(events))
	var skipped int
	for _, rec := range events {
		pos, ok := rec.Coordinates()
		if !ok {
			skipped++
			continue
		}
		markers = append(markers, Marker{
			Pos:   pos,
			Class: classifySeverity(rec),
			Label: rec.Category(),
		})
	}
	return markers, skipped
}

// severityWeight casts an event's severity to a numeric heat intensity,
// defaulting to 1.0 when absent or non-numeric.
func severityWeight(rec domain.EventRecord) float64 {
	v, ok := rec.Severity()
	if !ok {
		return 1.0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return 1.0
}

// classifySeverity maps an event's severity label to a marker class:
// high/severe → high visibility, medium → mid, anything else (including
// missing or numeric severities) → default.
func classifySeverity(rec domain.EventRecord) MarkerClass {
	v, ok := rec.Severity()
	if !ok {
		return ClassDefault
	}
	s, ok := v.(string)
	if !ok {
		return ClassDefault
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "severe":
		return ClassHigh
	case "medium":
		return ClassMedium
	default:
		return ClassDefault
	}
}
