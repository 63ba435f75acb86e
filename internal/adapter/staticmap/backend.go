// Package staticmap renders map descriptions natively with the
// go-staticmaps tile engine: no headless browser required. It is the
// default backend; the mapbox adapter covers deployments that prefer a
// hosted renderer.
package staticmap

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	sm "github.com/flopp/go-staticmaps"
	"github.com/golang/geo/s2"

	"github.com/couchcryptid/storm-report-service/internal/geo"
	"github.com/couchcryptid/storm-report-service/internal/style"
)

// Backend renders geo.Descriptions via go-staticmaps.
type Backend struct {
	style    style.Config
	provider *sm.TileProvider
	logger   *slog.Logger
}

// New creates the native map backend. tileProvider selects one of the
// go-staticmaps named providers; empty or unknown names fall back to
// OpenStreetMap.
func New(cfg style.Config, tileProvider string, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	provider := sm.NewTileProviderOpenStreetMaps()
	if p, ok := sm.GetTileProviders("")[tileProvider]; ok {
		provider = p
	} else if tileProvider != "" {
		logger.Warn("unknown tile provider, using openstreetmap", "provider", tileProvider)
	}
	return &Backend{style: cfg, provider: provider, logger: logger}
}

// Name identifies the backend in errors and metrics.
func (b *Backend) Name() string { return "staticmap" }

// Render rasterizes the description. Tile fetching happens inside the
// library without context support, so the render runs in its own goroutine
// and the call returns a timeout error as soon as the context expires; the
// goroutine's result is discarded on the way out.
func (b *Backend) Render(ctx context.Context, desc geo.Description, size style.Size) ([]byte, error) {
	mc := sm.NewContext()
	mc.SetSize(size.Width, size.Height)
	mc.SetCenter(s2.LatLngFromDegrees(desc.Center.Lat, desc.Center.Lon))
	mc.SetZoom(desc.Zoom)
	mc.SetTileProvider(b.provider)

	b.addObjects(mc, desc)

	img, err := b.renderWithContext(ctx, mc)
	if err != nil {
		b.logger.Error("static map render failed", "error", err)
		return nil, err
	}
	return geo.Decorate(img, desc, b.style.Palette)
}

// addObjects translates description layers into map objects in the fixed
// z-order: boundary, circle, markers, heat.
func (b *Backend) addObjects(mc *sm.Context, desc geo.Description) {
	primary := style.ParseHex(b.style.Palette.Primary)

	if len(desc.Boundary) >= 3 {
		positions := make([]s2.LatLng, 0, len(desc.Boundary))
		for _, p := range desc.Boundary {
			positions = append(positions, s2.LatLngFromDegrees(p.Lat, p.Lon))
		}
		mc.AddObject(sm.NewArea(positions, primary, style.WithAlpha(primary, 51), 3))
	}

	if desc.Circle != nil {
		center := s2.LatLngFromDegrees(desc.Circle.Center.Lat, desc.Circle.Center.Lon)
		mc.AddObject(sm.NewCircle(center, primary, style.WithAlpha(primary, 51), desc.Circle.Meters, 2))
	}

	for _, m := range desc.Markers {
		pos := s2.LatLngFromDegrees(m.Pos.Lat, m.Pos.Lon)
		mc.AddObject(sm.NewMarker(pos, b.markerColor(m.Class), 20))
	}

	if len(desc.Heat) > 0 {
		mc.AddObject(newHeatLayer(desc.Heat, b.style.Map.HeatGradient))
	}
}

func (b *Backend) markerColor(class geo.MarkerClass) color.RGBA {
	switch class {
	case geo.ClassHigh:
		return style.ParseHex(b.style.Palette.Secondary)
	case geo.ClassMedium:
		return style.ParseHex(b.style.Palette.Warning)
	default:
		return style.ParseHex(b.style.Palette.Primary)
	}
}

func (b *Backend) renderWithContext(ctx context.Context, mc *sm.Context) (image.Image, error) {
	type result struct {
		img image.Image
		err error
	}
	ch := make(chan result, 1)
	go func() {
		img, err := mc.Render()
		ch <- result{img: img, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("static map render: %w", ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("static map render: %w", res.err)
		}
		return res.img, nil
	}
}
