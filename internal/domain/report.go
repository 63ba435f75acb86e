package domain

import "strconv"

// ReportMeta is the caller-supplied description of a requested report.
// ReportID, Title, Location and the date range are required; missing any of
// them fails the whole compose call (see Validate). Dates are display-only
// strings, not used to filter event data.
type ReportMeta struct {
	ReportID  string       `json:"report_id"`
	Title     string       `json:"title"`
	Location  string       `json:"location"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	CenterLat *float64     `json:"center_lat,omitempty"`
	CenterLon *float64     `json:"center_lon,omitempty"`
	Spatial   *SpatialData `json:"spatial_data,omitempty"`
}

// Validate checks the required top-level fields. It returns a
// *ValidationError naming every missing field, or nil.
func (m ReportMeta) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"report_id", m.ReportID},
		{"title", m.Title},
		{"location", m.Location},
		{"start_date", m.StartDate},
		{"end_date", m.EndDate},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Center returns the explicit report center if both coordinates are present.
func (m ReportMeta) Center() (Geo, bool) {
	if m.CenterLat == nil || m.CenterLon == nil {
		return Geo{}, false
	}
	return Geo{Lat: *m.CenterLat, Lon: *m.CenterLon}, true
}

// SpatialData carries the event and boundary payload for spatial reports.
type SpatialData struct {
	Boundary    *Boundary     `json:"boundary,omitempty"`
	Events      []EventRecord `json:"events,omitempty"`
	HeatMapData []EventRecord `json:"heat_map_data,omitempty"`
	CenterLat   *float64      `json:"center_lat,omitempty"`
	CenterLon   *float64      `json:"center_lon,omitempty"`
}

// Center returns the spatial center, falling back to the first heat-map
// point's coordinates when no explicit center was supplied.
func (s *SpatialData) Center() (Geo, bool) {
	if s == nil {
		return Geo{}, false
	}
	if s.CenterLat != nil && s.CenterLon != nil {
		return Geo{Lat: *s.CenterLat, Lon: *s.CenterLon}, true
	}
	for _, rec := range s.HeatMapData {
		if g, ok := rec.Coordinates(); ok {
			return g, true
		}
	}
	return Geo{}, false
}

// Boundary describes the analysis area of a spatial report. Coordinates are
// (lat, lon) vertex pairs; the boundary map section is skipped when absent.
type Boundary struct {
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates,omitempty"`
}

// Polygon returns the boundary vertices as Geo points.
func (b *Boundary) Polygon() []Geo {
	if b == nil {
		return nil
	}
	pts := make([]Geo, 0, len(b.Coordinates))
	for _, c := range b.Coordinates {
		pts = append(pts, Geo{Lat: c[0], Lon: c[1]})
	}
	return pts
}

// WeatherStats holds the pre-computed scalar metrics rendered into the
// address report's statistics table. All fields are optional: missing
// measurements render as "N/A", missing event counts as "0".
type WeatherStats struct {
	MaxTemp       *float64 `json:"max_temp,omitempty"`
	MinTemp       *float64 `json:"min_temp,omitempty"`
	TotalPrecip   *float64 `json:"total_precip,omitempty"`
	MaxWind       *float64 `json:"max_wind,omitempty"`
	WeatherEvents *int     `json:"weather_events,omitempty"`
	HailEvents    *int     `json:"hail_events,omitempty"`
	MaxHailSize   *float64 `json:"max_hail_size,omitempty"`
}

// FormatMeasure renders an optional measurement with its unit suffix,
// substituting "N/A" when the value is absent.
func FormatMeasure(v *float64, unit string) string {
	if v == nil {
		return "N/A" + unit
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + unit
}

// FormatCount renders an optional event count, substituting "0" when absent.
func FormatCount(v *int) string {
	if v == nil {
		return "0"
	}
	return strconv.Itoa(*v)
}
