package chart

import (
	"fmt"
	"image/color"

	"github.com/couchcryptid/storm-report-service/internal/domain"
)

// Shades bounding the blue gradient applied across distribution bars, top
// rank lightest to bottom rank darkest.
var (
	distBarLight = color.RGBA{R: 0xa6, G: 0xc9, B: 0xe6, A: 0xff}
	distBarDark  = color.RGBA{R: 0x1f, G: 0x78, B: 0xb4, A: 0xff}
)

// RenderDistribution draws a ranked category distribution as a horizontal
// bar chart, bars in ranked order top to bottom, each annotated with its
// count, at the fixed distribution size.
func (r *Renderer) RenderDistribution(dist domain.RankedDistribution, title string) Result {
	size := r.style.Chart.Distribution
	if dist.Empty() {
		return r.empty(KindDistribution, size)
	}

	return r.render(KindDistribution, title, size, func() ([]byte, error) {
		dc := r.newCanvas(size, title)

		labelFace := r.face(22)
		dc.SetFontFace(labelFace)

		// Left margin sized to the longest category label.
		var labelWidth float64
		for _, e := range dist.Entries {
			if w, _ := dc.MeasureString(e.Category); w > labelWidth {
				labelWidth = w
			}
		}

		const (
			top    = 90.0
			right  = 120.0
			bottom = 90.0
		)
		left := labelWidth + 60
		plotW := float64(size.Width) - left - right
		plotH := float64(size.Height) - top - bottom

		maxCount := dist.Entries[0].Count
		for _, e := range dist.Entries {
			if e.Count > maxCount {
				maxCount = e.Count
			}
		}

		n := len(dist.Entries)
		rowH := plotH / float64(n)
		barH := rowH * 0.7

		for i, e := range dist.Entries {
			t := 0.0
			if n > 1 {
				t = float64(i) / float64(n-1)
			}
			y := top + float64(i)*rowH + (rowH-barH)/2
			barW := plotW * float64(e.Count) / float64(maxCount)

			dc.SetColor(lerp(distBarLight, distBarDark, t))
			dc.DrawRectangle(left, y, barW, barH)
			dc.Fill()

			dc.SetColor(r.hex(r.style.Palette.Dark))
			dc.DrawStringAnchored(e.Category, left-12, y+barH/2, 1, 0.35)
			dc.DrawStringAnchored(fmt.Sprintf("%d", e.Count), left+barW+12, y+barH/2, 0, 0.35)
		}

		// Axis labels.
		dc.SetFontFace(r.face(24))
		dc.DrawStringAnchored("Number of Events", left+plotW/2, float64(size.Height)-30, 0.5, 0.5)

		return encode(dc)
	})
}
