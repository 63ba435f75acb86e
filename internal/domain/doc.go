// Package domain models weather-event report data: the JSON-shaped event
// records consumed by the aggregation layer, the series types it produces,
// report request metadata, and the content blocks handed to the layout
// engine.
//
// # Event Record Conventions
//
// Event records arrive as loose JSON maps whose field names differ by
// upstream source. Each logical field resolves through a fixed alias
// priority order:
//
//	date:      "date", then "begin_date"
//	category:  "type", then "event_type"
//	latitude:  "latitude", then "begin_lat"
//	longitude: "longitude", then "begin_lon"
//	severity:  "severity"
//
// Date values are accepted only when the field begins with an exact
// YYYY-MM-DD prefix; longer timestamps ("2024-04-26T15:10:00Z") are
// truncated to the date, anything else is unparsable. Coordinates may be
// numbers or numeric strings. Severity may be a numeric weight or an
// ordinal label ("high", "severe", "medium"); classification of labels
// belongs to the geo renderer.
//
// A record failing resolution for one field is excluded from charts that
// need that field and nothing else: a record without coordinates still
// counts in the time series, and a record without a date still appears in
// the category distribution (as "Unknown" if it has no type either).
// Malformed records are never fatal to report generation.
//
// # Error Taxonomy
//
// Two typed errors divide the fatal cases: [ValidationError] for malformed
// requests and [RendererError] for rendering-environment failures. Anything
// derivable from user-supplied event data degrades instead of failing —
// bad input must never break report delivery.
package domain
