package staticmap

import (
	"image/color"

	sm "github.com/flopp/go-staticmaps"
	"github.com/fogleman/gg"
	"github.com/golang/geo/s2"

	"github.com/couchcryptid/storm-report-service/internal/geo"
	"github.com/couchcryptid/storm-report-service/internal/style"
)

// heatRadiusPx is the on-screen radius of one heat point's radial falloff.
const heatRadiusPx = 28.0

// heatLayer draws weighted points as overlapping radial gradients, colored
// by relative intensity on the configured gradient. It implements
// sm.MapObject so the tile engine projects coordinates for us.
type heatLayer struct {
	points    []geo.HeatPoint
	gradient  []style.GradientStop
	maxWeight float64
}

func newHeatLayer(points []geo.HeatPoint, gradient []style.GradientStop) *heatLayer {
	maxWeight := 0.0
	for _, p := range points {
		if p.Weight > maxWeight {
			maxWeight = p.Weight
		}
	}
	if maxWeight <= 0 {
		maxWeight = 1
	}
	return &heatLayer{points: points, gradient: gradient, maxWeight: maxWeight}
}

func (h *heatLayer) Bounds() s2.Rect {
	r := s2.EmptyRect()
	for _, p := range h.points {
		r = r.AddPoint(s2.LatLngFromDegrees(p.Pos.Lat, p.Pos.Lon))
	}
	return r
}

func (h *heatLayer) ExtraMarginPixels() (float64, float64, float64, float64) {
	return heatRadiusPx, heatRadiusPx, heatRadiusPx, heatRadiusPx
}

func (h *heatLayer) Draw(gc *gg.Context, trans *sm.Transformer) {
	for _, p := range h.points {
		x, y := trans.LatLngToXY(s2.LatLngFromDegrees(p.Pos.Lat, p.Pos.Lon))
		c := style.GradientAt(h.gradient, p.Weight/h.maxWeight)

		grad := gg.NewRadialGradient(x, y, 0, x, y, heatRadiusPx)
		grad.AddColorStop(0, style.WithAlpha(c, 0xcc))
		grad.AddColorStop(1, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0})
		gc.SetFillStyle(grad)
		gc.DrawCircle(x, y, heatRadiusPx)
		gc.Fill()
	}
}
