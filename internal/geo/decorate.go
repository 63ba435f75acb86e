package geo

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"

	"github.com/couchcryptid/storm-report-service/internal/style"
)

var loadFont = sync.OnceValues(func() (*truetype.Font, error) {
	return chart.GetDefaultFont()
})

// Decorate draws the title box and optional gradient legend over a rendered
// base map and encodes the result as PNG. Both backends share it so the
// overlays look identical regardless of how the base raster was produced.
func Decorate(base image.Image, desc Description, pal style.Palette) ([]byte, error) {
	f, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("load overlay font: %w", err)
	}
	face := func(points float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{Size: points, DPI: 72})
	}

	bounds := base.Bounds()
	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	dc.DrawImage(base, 0, 0)
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	if desc.Title != "" {
		boxW, boxH := 400.0, 50.0
		x := (w - boxW) / 2
		dc.SetRGBA(1, 1, 1, 0.95)
		dc.DrawRoundedRectangle(x, 10, boxW, boxH, 5)
		dc.Fill()
		dc.SetColor(style.ParseHex(pal.Primary))
		dc.SetLineWidth(2)
		dc.DrawRoundedRectangle(x, 10, boxW, boxH, 5)
		dc.Stroke()
		dc.SetColor(style.ParseHex(pal.Dark))
		dc.SetFontFace(face(18))
		dc.DrawStringAnchored(desc.Title, w/2, 10+boxH/2, 0.5, 0.35)
	}

	if desc.Legend != nil {
		legW, legH := 200.0, 80.0
		x := w - legW - 50
		y := h - legH - 50
		dc.SetRGBA(1, 1, 1, 0.95)
		dc.DrawRoundedRectangle(x, y, legW, legH, 5)
		dc.Fill()
		dc.SetColor(style.ParseHex(pal.Dark))
		dc.SetFontFace(face(14))
		dc.DrawStringAnchored(desc.Legend.Title, x+10, y+16, 0, 0.35)

		// Gradient bar.
		barX, barY := x+10, y+30
		barW, barH := legW-20, 18.0
		steps := 60
		for s := 0; s < steps; s++ {
			t := float64(s) / float64(steps-1)
			dc.SetColor(style.GradientAt(desc.Legend.Gradient, t))
			dc.DrawRectangle(barX+float64(s)*barW/float64(steps), barY, barW/float64(steps)+1, barH)
			dc.Fill()
		}

		dc.SetColor(style.ParseHex(pal.Dark))
		dc.SetFontFace(face(11))
		dc.DrawStringAnchored(desc.Legend.MinLabel, barX, barY+barH+12, 0, 0.35)
		dc.DrawStringAnchored(desc.Legend.MaxLabel, barX+barW, barY+barH+12, 1, 0.35)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode map image: %w", err)
	}
	return buf.Bytes(), nil
}
