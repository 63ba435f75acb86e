package chart

import (
	"strconv"

	"github.com/couchcryptid/storm-report-service/internal/domain"
	"github.com/couchcryptid/storm-report-service/internal/style"
)

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// calendarRamp is the yellow-to-red intensity gradient of the calendar grid.
var calendarRamp = []style.GradientStop{
	{At: 0.0, Color: "#ffffcc"},
	{At: 0.5, Color: "#fd8d3c"},
	{At: 1.0, Color: "#bd0026"},
}

// RenderCalendarHeat draws the weekday × week matrix as a color-intensity
// grid with a horizontal count legend, at the fixed calendar-heat size.
func (r *Renderer) RenderCalendarHeat(matrix domain.CalendarMatrix, title string) Result {
	size := r.style.Chart.CalendarHeat
	if matrix.Empty() {
		return r.empty(KindCalendarHeat, size)
	}

	return r.render(KindCalendarHeat, title, size, func() ([]byte, error) {
		dc := r.newCanvas(size, title)

		const (
			top    = 80.0
			left   = 120.0
			right  = 60.0
			bottom = 140.0
		)
		plotW := float64(size.Width) - left - right
		plotH := float64(size.Height) - top - bottom

		maxCount := matrix.Max()
		if maxCount == 0 {
			maxCount = 1
		}

		cellW := plotW / float64(matrix.Weeks)
		cellH := plotH / 7

		for row := 0; row < 7; row++ {
			for col := 0; col < matrix.Weeks; col++ {
				count := matrix.Counts[row][col]
				t := float64(count) / float64(maxCount)
				dc.SetColor(ramp(calendarRamp, t))
				dc.DrawRectangle(left+float64(col)*cellW, top+float64(row)*cellH, cellW, cellH)
				dc.Fill()
			}
		}

		// Weekday labels.
		dc.SetFontFace(r.face(22))
		dc.SetColor(r.hex(r.style.Palette.Dark))
		for row, label := range weekdayLabels {
			dc.DrawStringAnchored(label, left-16, top+(float64(row)+0.5)*cellH, 1, 0.35)
		}

		// Horizontal color-scale legend labeled by count.
		legendW := plotW * 0.6
		legendH := 24.0
		legendX := left + (plotW-legendW)/2
		legendY := float64(size.Height) - 90
		steps := 120
		for s := 0; s < steps; s++ {
			t := float64(s) / float64(steps-1)
			dc.SetColor(ramp(calendarRamp, t))
			dc.DrawRectangle(legendX+float64(s)*legendW/float64(steps), legendY, legendW/float64(steps)+1, legendH)
			dc.Fill()
		}
		dc.SetColor(r.hex(r.style.Palette.Dark))
		dc.DrawStringAnchored("0", legendX-12, legendY+legendH/2, 1, 0.35)
		dc.DrawStringAnchored(strconv.Itoa(maxCount), legendX+legendW+12, legendY+legendH/2, 0, 0.35)
		dc.DrawStringAnchored("Events per Day", legendX+legendW/2, legendY+legendH+28, 0.5, 0.5)

		return encode(dc)
	})
}
