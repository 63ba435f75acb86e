// Package geo builds declarative map descriptions from event and boundary
// data and delegates rasterization to a pluggable headless backend. The
// package itself performs no drawing of map geometry; it decides what
// appears on the map, the backend decides how pixels get made.
package geo

import (
	"github.com/couchcryptid/storm-report-service/internal/domain"
	"github.com/couchcryptid/storm-report-service/internal/style"
)

// MarkerClass selects a marker's visual style from the event severity.
type MarkerClass string

const (
	ClassDefault MarkerClass = "default"
	ClassMedium  MarkerClass = "medium"
	ClassHigh    MarkerClass = "high"
)

// Marker is one event pin on the map.
type Marker struct {
	Pos   domain.Geo
	Class MarkerClass
	Label string
}

// HeatPoint is one weighted point of the heat layer.
type HeatPoint struct {
	Pos    domain.Geo
	Weight float64
}

// Circle is a radius-of-interest ring, used on location maps.
type Circle struct {
	Center domain.Geo
	Meters float64
}

// Legend describes the gradient legend overlay drawn on heat maps.
type Legend struct {
	Title    string
	Gradient []style.GradientStop
	MinLabel string
	MaxLabel string
}

// Description is the declarative input to a map backend. Overlay z-order is
// fixed and deterministic: boundary polygon first, then circle, then
// markers, then the heat layer, with title and legend decorations drawn
// last on top of the finished raster.
type Description struct {
	Center   domain.Geo
	Zoom     int
	Boundary []domain.Geo
	Circle   *Circle
	Markers  []Marker
	Heat     []HeatPoint
	Title    string
	Legend   *Legend
}
