package domain

import (
	"strconv"
	"strings"
	"time"
)

// Alias key priority orders for event record fields. The primary name is
// checked first, the fallback second; a field counts as missing only when
// neither key is present.
var (
	dateKeys     = []string{"date", "begin_date"}
	categoryKeys = []string{"type", "event_type"}
	latKeys      = []string{"latitude", "begin_lat"}
	lonKeys      = []string{"longitude", "begin_lon"}
)

// UnknownCategory is the category assigned to records that carry neither a
// "type" nor an "event_type" key.
const UnknownCategory = "Unknown"

// EventRecord is a single weather event as received from upstream: a
// JSON-shaped map whose field names vary by source. Accessors resolve the
// alias keys and coerce values; a record that fails resolution for a given
// field is excluded from whatever chart needs that field, never fatal.
type EventRecord map[string]any

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Date returns the record's event date. Only an exact YYYY-MM-DD prefix of
// the date field is accepted; anything else reports ok=false.
func (r EventRecord) Date() (time.Time, bool) {
	v, ok := lookup(r, dateKeys)
	if !ok {
		return time.Time{}, false
	}
	if t, isTime := v.(time.Time); isTime {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	s, ok := stringValue(v)
	if !ok || len(s) < 10 {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Category returns the record's event type, falling back to UnknownCategory
// when neither alias key is present or the value is not a string.
func (r EventRecord) Category() string {
	v, ok := lookup(r, categoryKeys)
	if !ok {
		return UnknownCategory
	}
	if s, isString := stringValue(v); isString {
		return s
	}
	return UnknownCategory
}

// Coordinates returns the record's position. Records with a missing or
// non-numeric latitude or longitude report ok=false.
func (r EventRecord) Coordinates() (Geo, bool) {
	latRaw, ok := lookup(r, latKeys)
	if !ok {
		return Geo{}, false
	}
	lonRaw, ok := lookup(r, lonKeys)
	if !ok {
		return Geo{}, false
	}
	lat, okLat := floatValue(latRaw)
	lon, okLon := floatValue(lonRaw)
	if !okLat || !okLon {
		return Geo{}, false
	}
	return Geo{Lat: lat, Lon: lon}, true
}

// Severity returns the raw severity value, which may be numeric or an
// ordinal string such as "high".
func (r EventRecord) Severity() (any, bool) {
	v, ok := r["severity"]
	return v, ok && v != nil
}

// lookup returns the first value found under the given keys in priority order.
func lookup(r EventRecord, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// floatValue coerces a record value to a float64. JSON decoding produces
// float64 for all numbers, but upstream sources also ship coordinates and
// severities as strings.
func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
