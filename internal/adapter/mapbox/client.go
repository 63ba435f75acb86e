// Package mapbox implements the map-rendering backend on the Mapbox Static
// Images API. It trades the native tile renderer for Mapbox's hosted
// styles; selection between the two happens at startup via configuration.
package mapbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/storm-report-service/internal/domain"
	"github.com/couchcryptid/storm-report-service/internal/geo"
	"github.com/couchcryptid/storm-report-service/internal/style"
)

// heatOverlayCap bounds the number of heat points encoded into the request
// URL; the Static Images API rejects URLs past ~8 KB.
const heatOverlayCap = 100

// Client renders map descriptions through the Mapbox Static Images API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	styleID    string
	style      style.Config
	logger     *slog.Logger
}

// NewClient creates a Mapbox static-image client.
func NewClient(token string, timeout time.Duration, cfg style.Config, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.mapbox.com/styles/v1",
		styleID: "mapbox/streets-v12",
		style:   cfg,
		logger:  logger,
	}
}

// Name identifies the backend in errors and metrics.
func (c *Client) Name() string { return "mapbox" }

// Render fetches a static map raster for the description and applies the
// shared title/legend decoration. The heat layer has no API equivalent and
// degrades to translucent circle features.
func (c *Client) Render(ctx context.Context, desc geo.Description, size style.Size) ([]byte, error) {
	position := fmt.Sprintf("%.6f,%.6f,%d", desc.Center.Lon, desc.Center.Lat, desc.Zoom)
	path := position
	if overlay := c.buildOverlays(desc); overlay != "" {
		path = overlay + "/" + position
	}

	params := url.Values{
		"access_token": {c.token},
	}
	fullURL := fmt.Sprintf("%s/%s/static/%s/%dx%d?%s",
		c.baseURL, c.styleID, path, size.Width, size.Height, params.Encode())

	body, err := c.doRequest(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("decode mapbox image: %w", err)
	}
	return geo.Decorate(img, desc, c.style.Palette)
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("static image request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("mapbox static image request rejected", "status", resp.StatusCode)
		return nil, fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	return io.ReadAll(resp.Body)
}

// buildOverlays encodes the description's layers as Static Images API
// overlays, preserving the boundary → circle → markers → heat z-order
// (overlays render in list order).
func (c *Client) buildOverlays(desc geo.Description) string {
	var overlays []string

	if len(desc.Boundary) >= 3 {
		overlays = append(overlays, c.polygonOverlay(desc.Boundary))
	}
	if desc.Circle != nil {
		// The API has no circle primitive; a large pin marks the point
		// and the ring is dropped.
		overlays = append(overlays, fmt.Sprintf("pin-l+%s(%.6f,%.6f)",
			hexBody(c.style.Palette.Primary), desc.Circle.Center.Lon, desc.Circle.Center.Lat))
	}
	for _, m := range desc.Markers {
		overlays = append(overlays, fmt.Sprintf("pin-s+%s(%.6f,%.6f)",
			hexBody(c.markerHex(m.Class)), m.Pos.Lon, m.Pos.Lat))
	}
	if len(desc.Heat) > 0 {
		overlays = append(overlays, c.heatOverlay(desc.Heat))
	}

	return strings.Join(overlays, ",")
}

// polygonOverlay encodes the boundary as a filled GeoJSON polygon overlay.
func (c *Client) polygonOverlay(boundary []domain.Geo) string {
	ring := make([][2]float64, 0, len(boundary)+1)
	for _, p := range boundary {
		ring = append(ring, [2]float64{p.Lon, p.Lat})
	}
	// GeoJSON rings close explicitly.
	ring = append(ring, ring[0])

	feature := map[string]any{
		"type": "Feature",
		"properties": map[string]any{
			"stroke":         c.style.Palette.Primary,
			"stroke-width":   3,
			"fill":           c.style.Palette.Primary,
			"fill-opacity":   0.2,
			"stroke-opacity": 1,
		},
		"geometry": map[string]any{
			"type":        "Polygon",
			"coordinates": [][][2]float64{ring},
		},
	}
	return geoJSONOverlay(feature)
}

// heatOverlay approximates the heat layer with a GeoJSON feature collection
// of translucent points colored by relative intensity on the configured
// gradient. Points beyond heatOverlayCap are dropped to keep the URL within
// API limits.
func (c *Client) heatOverlay(points []geo.HeatPoint) string {
	if len(points) > heatOverlayCap {
		points = points[:heatOverlayCap]
	}
	maxWeight := 0.0
	for _, p := range points {
		if p.Weight > maxWeight {
			maxWeight = p.Weight
		}
	}
	if maxWeight <= 0 {
		maxWeight = 1
	}

	features := make([]map[string]any, 0, len(points))
	for _, p := range points {
		col := style.GradientAt(c.style.Map.HeatGradient, p.Weight/maxWeight)
		features = append(features, map[string]any{
			"type": "Feature",
			"properties": map[string]any{
				"marker-color": fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B),
				"marker-size":  "small",
			},
			"geometry": map[string]any{
				"type":        "Point",
				"coordinates": [2]float64{p.Pos.Lon, p.Pos.Lat},
			},
		})
	}
	return geoJSONOverlay(map[string]any{
		"type":     "FeatureCollection",
		"features": features,
	})
}

func (c *Client) markerHex(class geo.MarkerClass) string {
	switch class {
	case geo.ClassHigh:
		return c.style.Palette.Secondary
	case geo.ClassMedium:
		return c.style.Palette.Warning
	default:
		return c.style.Palette.Primary
	}
}

// geoJSONOverlay wraps a GeoJSON value as an overlay segment.
func geoJSONOverlay(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return "geojson(" + url.PathEscape(string(raw)) + ")"
}

// hexBody strips the leading # from a palette color for overlay syntax.
func hexBody(s string) string {
	return strings.TrimPrefix(s, "#")
}
