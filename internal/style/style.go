// Package style holds the process-wide visual configuration shared by the
// chart and map renderers: brand palette, fixed raster sizes per chart
// kind, and map styling. The configuration is loaded once at startup,
// optionally overridden from a YAML file, and treated as immutable
// afterwards — renderers receive it by value and hold no request-scoped
// mutable style state.
package style

import (
	"fmt"
	"image/color"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Size is a raster dimension in pixels.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Palette is the brand color set, as #rrggbb hex strings.
type Palette struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Success   string `yaml:"success"`
	Warning   string `yaml:"warning"`
	Dark      string `yaml:"dark"`
}

// ChartSizes fixes the pixel dimensions of each chart kind. Downstream
// layout reserves space per kind, so these stay constant regardless of data
// volume.
type ChartSizes struct {
	TimeSeries   Size `yaml:"time_series"`
	Distribution Size `yaml:"distribution"`
	MonthlyStack Size `yaml:"monthly_stack"`
	CalendarHeat Size `yaml:"calendar_heat"`
}

// GradientStop is one color stop of the heat-layer gradient.
type GradientStop struct {
	At    float64 `yaml:"at"`
	Color string  `yaml:"color"`
}

// MapStyle configures geographic rendering.
type MapStyle struct {
	Size         Size           `yaml:"size"`
	DefaultZoom  int            `yaml:"default_zoom"`
	MarkerCap    int            `yaml:"marker_cap"`
	CircleMeters float64        `yaml:"circle_meters"`
	HeatGradient []GradientStop `yaml:"heat_gradient"`
}

// Config is the complete style configuration.
type Config struct {
	Palette Palette    `yaml:"palette"`
	Chart   ChartSizes `yaml:"chart"`
	Map     MapStyle   `yaml:"map"`
}

// Default returns the built-in configuration: the brand palette and the
// contract raster sizes.
func Default() Config {
	return Config{
		Palette: Palette{
			Primary:   "#3498db",
			Secondary: "#e74c3c",
			Success:   "#2ecc71",
			Warning:   "#f39c12",
			Dark:      "#2c3e50",
		},
		Chart: ChartSizes{
			TimeSeries:   Size{Width: 1500, Height: 900},
			Distribution: Size{Width: 1500, Height: 900},
			MonthlyStack: Size{Width: 1800, Height: 900},
			CalendarHeat: Size{Width: 2100, Height: 600},
		},
		Map: MapStyle{
			Size:         Size{Width: 1200, Height: 800},
			DefaultZoom:  10,
			MarkerCap:    50,
			CircleMeters: 5000,
			HeatGradient: []GradientStop{
				{At: 0.0, Color: "#0000ff"},
				{At: 0.4, Color: "#00ffff"},
				{At: 0.6, Color: "#00ff00"},
				{At: 0.8, Color: "#ffff00"},
				{At: 1.0, Color: "#ff0000"},
			},
		},
	}
}

// Load returns the default configuration with overrides applied from the
// YAML file at path. An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read style file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse style file: %w", err)
	}
	return cfg, nil
}

// ParseHex converts a #rrggbb string to an opaque color. Invalid input
// yields opaque black rather than an error; palette values are validated by
// their defaults and any override file author sees the result immediately.
func ParseHex(s string) color.RGBA {
	if len(s) == 7 && s[0] == '#' {
		r, errR := strconv.ParseUint(s[1:3], 16, 8)
		g, errG := strconv.ParseUint(s[3:5], 16, 8)
		b, errB := strconv.ParseUint(s[5:7], 16, 8)
		if errR == nil && errG == nil && errB == nil {
			return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
		}
	}
	return color.RGBA{A: 0xff}
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

// Lerp interpolates between two colors at t in [0, 1].
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}

// GradientAt evaluates a multi-stop gradient at t in [0, 1].
func GradientAt(stops []GradientStop, t float64) color.RGBA {
	if len(stops) == 0 {
		return color.RGBA{A: 0xff}
	}
	if t <= stops[0].At {
		return ParseHex(stops[0].Color)
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].At {
			span := stops[i].At - stops[i-1].At
			local := 0.0
			if span > 0 {
				local = (t - stops[i-1].At) / span
			}
			return Lerp(ParseHex(stops[i-1].Color), ParseHex(stops[i].Color), local)
		}
	}
	return ParseHex(stops[len(stops)-1].Color)
}
