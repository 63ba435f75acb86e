// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"os"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// RenderTimeout bounds a single map render, covering tile fetches or
	// the remote API call.
	RenderTimeout time.Duration

	// MapBackend selects the map renderer: "auto" picks mapbox when a
	// token is configured, otherwise the native tile renderer.
	MapBackend string

	// Mapbox static image configuration.
	MapboxToken   string
	MapboxEnabled bool
	MapboxTimeout time.Duration

	// TileProvider names a go-staticmaps tile source for the native
	// backend; empty selects OpenStreetMap.
	TileProvider string

	// StyleFile optionally overrides the built-in report styling.
	StyleFile string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	renderTimeout, err := parseDuration("RENDER_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	mapboxTimeout, err := parseDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		RenderTimeout:   renderTimeout,
		MapBackend:      envOrDefault("MAP_BACKEND", "auto"),
		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		TileProvider:    os.Getenv("TILE_PROVIDER"),
		StyleFile:       os.Getenv("STYLE_FILE"),
	}

	switch cfg.MapBackend {
	case "auto", "native", "mapbox":
	default:
		return nil, errors.New("MAP_BACKEND must be auto, native, or mapbox")
	}
	if cfg.MapBackend == "mapbox" && cfg.MapboxToken == "" {
		return nil, errors.New("MAP_BACKEND is mapbox but MAPBOX_TOKEN is not set")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

// UseMapbox resolves the backend selection against the configured token.
func (c *Config) UseMapbox() bool {
	switch c.MapBackend {
	case "mapbox":
		return true
	case "native":
		return false
	default:
		return c.MapboxEnabled && c.MapboxToken != ""
	}
}

// LoggerLevel implements observability.LoggerConfig.
func (c *Config) LoggerLevel() string { return c.LogLevel }

// LoggerFormat implements observability.LoggerConfig.
func (c *Config) LoggerFormat() string { return c.LogFormat }

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}
