package chart

import (
	"bytes"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/couchcryptid/storm-report-service/internal/style"
)

// newCanvas prepares a white canvas with the chart title centered at the top.
func (r *Renderer) newCanvas(size style.Size, title string) *gg.Context {
	dc := gg.NewContext(size.Width, size.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetFontFace(r.face(30))
	dc.SetColor(r.hex(r.style.Palette.Dark))
	dc.DrawStringAnchored(title, float64(size.Width)/2, 40, 0.5, 0.5)
	return dc
}

// encode finishes a canvas into PNG bytes.
func encode(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	return style.Lerp(a, b, t)
}

func ramp(stops []style.GradientStop, t float64) color.RGBA {
	return style.GradientAt(stops, t)
}
