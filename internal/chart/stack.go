package chart

import (
	"image/color"
	"strconv"

	"github.com/couchcryptid/storm-report-service/internal/domain"
)

// stackPalette colors stacked segments per category, in category order.
var stackPalette = []color.RGBA{
	{R: 0x8d, G: 0xd3, B: 0xc7, A: 0xff},
	{R: 0xff, G: 0xe9, B: 0xa8, A: 0xff},
	{R: 0xbe, G: 0xba, B: 0xda, A: 0xff},
	{R: 0xfb, G: 0x80, B: 0x72, A: 0xff},
	{R: 0x80, G: 0xb1, B: 0xd3, A: 0xff},
	{R: 0xfd, G: 0xb4, B: 0x62, A: 0xff},
}

// RenderMonthlyStack draws a stacked bar chart: one bar per month, segments
// stacked bottom-up in category order with absolute counts, plus a legend
// listing every included category, at the fixed monthly-stack size.
func (r *Renderer) RenderMonthlyStack(matrix domain.StackedMatrix, title string) Result {
	size := r.style.Chart.MonthlyStack
	if matrix.Empty() {
		return r.empty(KindMonthlyStack, size)
	}

	return r.render(KindMonthlyStack, title, size, func() ([]byte, error) {
		dc := r.newCanvas(size, title)

		const (
			top    = 150.0
			left   = 110.0
			right  = 60.0
			bottom = 110.0
		)
		plotW := float64(size.Width) - left - right
		plotH := float64(size.Height) - top - bottom

		maxTotal := 1
		for j := range matrix.Months {
			if t := matrix.MonthTotal(j); t > maxTotal {
				maxTotal = t
			}
		}

		// Horizontal gridlines with y-axis count labels.
		dc.SetFontFace(r.face(20))
		gridSteps := 5
		for g := 0; g <= gridSteps; g++ {
			frac := float64(g) / float64(gridSteps)
			y := top + plotH - plotH*frac
			dc.SetColor(color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff})
			dc.SetLineWidth(1)
			dc.DrawLine(left, y, left+plotW, y)
			dc.Stroke()
			dc.SetColor(r.hex(r.style.Palette.Dark))
			dc.DrawStringAnchored(formatCount(frac*float64(maxTotal)), left-12, y, 1, 0.35)
		}

		nMonths := len(matrix.Months)
		slotW := plotW / float64(nMonths)
		barW := slotW * 0.6

		for j, month := range matrix.Months {
			x := left + float64(j)*slotW + (slotW-barW)/2
			yBottom := top + plotH
			for i := range matrix.Categories {
				count := matrix.Counts[i][j]
				if count == 0 {
					continue
				}
				segH := plotH * float64(count) / float64(maxTotal)
				dc.SetColor(stackPalette[i%len(stackPalette)])
				dc.DrawRectangle(x, yBottom-segH, barW, segH)
				dc.Fill()
				dc.SetColor(color.White)
				dc.SetLineWidth(1)
				dc.DrawRectangle(x, yBottom-segH, barW, segH)
				dc.Stroke()
				yBottom -= segH
			}

			dc.SetColor(r.hex(r.style.Palette.Dark))
			dc.DrawStringAnchored(month.Format("Jan 2006"), x+barW/2, top+plotH+28, 0.5, 0.5)
		}

		// Legend: one swatch per included category, top-left, two columns.
		dc.SetFontFace(r.face(22))
		const swatch = 22.0
		legendX, legendY := left, 80.0
		colW := plotW / 2
		for i, cat := range matrix.Categories {
			x := legendX + float64(i%2)*colW
			y := legendY + float64(i/2)*(swatch+8)
			dc.SetColor(stackPalette[i%len(stackPalette)])
			dc.DrawRectangle(x, y, swatch, swatch)
			dc.Fill()
			dc.SetColor(r.hex(r.style.Palette.Dark))
			dc.DrawStringAnchored(cat, x+swatch+10, y+swatch/2, 0, 0.35)
		}

		// Axis titles.
		dc.SetFontFace(r.face(24))
		dc.DrawStringAnchored("Month", left+plotW/2, float64(size.Height)-36, 0.5, 0.5)

		return encode(dc)
	})
}

func formatCount(v float64) string {
	return strconv.Itoa(int(v + 0.5))
}
