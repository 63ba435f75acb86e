package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-report-service/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 30*time.Second, cfg.RenderTimeout)
	assert.Equal(t, "auto", cfg.MapBackend)
	assert.False(t, cfg.MapboxEnabled)
	assert.False(t, cfg.UseMapbox())
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("RENDER_TIMEOUT", "1m")
	t.Setenv("MAPBOX_TOKEN", "pk.test")
	t.Setenv("MAPBOX_TIMEOUT", "3s")
	t.Setenv("TILE_PROVIDER", "carto-light")
	t.Setenv("STYLE_FILE", "/etc/report-style.yaml")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LoggerLevel())
	assert.Equal(t, "text", cfg.LoggerFormat())
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Minute, cfg.RenderTimeout)
	assert.Equal(t, 3*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, "carto-light", cfg.TileProvider)
	assert.Equal(t, "/etc/report-style.yaml", cfg.StyleFile)
	assert.True(t, cfg.MapboxEnabled, "token alone enables mapbox")
	assert.True(t, cfg.UseMapbox())
}

func TestLoad_BackendSelection(t *testing.T) {
	t.Run("native forces the tile renderer despite a token", func(t *testing.T) {
		t.Setenv("MAP_BACKEND", "native")
		t.Setenv("MAPBOX_TOKEN", "pk.test")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.False(t, cfg.UseMapbox())
	})

	t.Run("mapbox requires a token", func(t *testing.T) {
		t.Setenv("MAP_BACKEND", "mapbox")

		_, err := config.Load()
		require.Error(t, err)
	})

	t.Run("explicit disable beats the token", func(t *testing.T) {
		t.Setenv("MAPBOX_TOKEN", "pk.test")
		t.Setenv("MAPBOX_ENABLED", "false")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.False(t, cfg.UseMapbox())
	})

	t.Run("unknown backend rejected", func(t *testing.T) {
		t.Setenv("MAP_BACKEND", "folium")

		_, err := config.Load()
		require.Error(t, err)
	})
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("RENDER_TIMEOUT", "soon")
		_, err := config.Load()
		require.Error(t, err)
	})

	t.Run("negative duration", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
		_, err := config.Load()
		require.Error(t, err)
	})

	t.Run("enabled without token", func(t *testing.T) {
		t.Setenv("MAPBOX_ENABLED", "true")
		_, err := config.Load()
		require.Error(t, err)
	})
}
