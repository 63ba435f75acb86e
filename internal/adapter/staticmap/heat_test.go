package staticmap

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-report-service/internal/domain"
	"github.com/couchcryptid/storm-report-service/internal/geo"
	"github.com/couchcryptid/storm-report-service/internal/style"
)

func TestHeatLayer(t *testing.T) {
	gradient := style.Default().Map.HeatGradient

	t.Run("normalizes against the max weight", func(t *testing.T) {
		layer := newHeatLayer([]geo.HeatPoint{
			{Pos: domain.Geo{Lat: 30, Lon: -97}, Weight: 2},
			{Pos: domain.Geo{Lat: 31, Lon: -97}, Weight: 8},
		}, gradient)
		assert.Equal(t, 8.0, layer.maxWeight)
	})

	t.Run("zero weights fall back to one", func(t *testing.T) {
		layer := newHeatLayer([]geo.HeatPoint{
			{Pos: domain.Geo{Lat: 30, Lon: -97}},
		}, gradient)
		assert.Equal(t, 1.0, layer.maxWeight)
	})

	t.Run("bounds cover all points", func(t *testing.T) {
		layer := newHeatLayer([]geo.HeatPoint{
			{Pos: domain.Geo{Lat: 30, Lon: -97}, Weight: 1},
			{Pos: domain.Geo{Lat: 32, Lon: -95}, Weight: 1},
		}, gradient)

		bounds := layer.Bounds()
		require.False(t, bounds.IsEmpty())
		assert.True(t, bounds.ContainsLatLng(s2.LatLngFromDegrees(31, -96)))
	})

	t.Run("margins match the falloff radius", func(t *testing.T) {
		layer := newHeatLayer(nil, gradient)
		top, right, bottom, left := layer.ExtraMarginPixels()
		assert.Equal(t, heatRadiusPx, top)
		assert.Equal(t, heatRadiusPx, right)
		assert.Equal(t, heatRadiusPx, bottom)
		assert.Equal(t, heatRadiusPx, left)
	})
}

func TestMarkerColor(t *testing.T) {
	b := New(style.Default(), "", nil)
	assert.Equal(t, style.ParseHex("#e74c3c"), b.markerColor(geo.ClassHigh))
	assert.Equal(t, style.ParseHex("#f39c12"), b.markerColor(geo.ClassMedium))
	assert.Equal(t, style.ParseHex("#3498db"), b.markerColor(geo.ClassDefault))
}

func TestRender_CancelledContext(t *testing.T) {
	var logs bytes.Buffer
	b := New(style.Default(), "", slog.New(slog.NewTextHandler(&logs, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Render(ctx, geo.Description{
		Center: domain.Geo{Lat: 30.2672, Lon: -97.7431},
		Zoom:   10,
	}, style.Size{Width: 200, Height: 150})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, logs.String(), "static map render failed")
}
