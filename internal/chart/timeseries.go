package chart

import (
	"bytes"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/storm-report-service/internal/domain"
)

// RenderTimeSeries draws monthly event counts as a line with a filled area
// under it and a month-formatted x-axis, at the fixed time-series size.
func (r *Renderer) RenderTimeSeries(series domain.TimeSeries, title string) Result {
	size := r.style.Chart.TimeSeries
	if series.Empty() {
		return r.empty(KindTimeSeries, size)
	}

	return r.render(KindTimeSeries, title, size, func() ([]byte, error) {
		xs := make([]time.Time, len(series.Points))
		ys := make([]float64, len(series.Points))
		for i, p := range series.Points {
			xs[i] = p.Month
			ys[i] = float64(p.Count)
		}

		primary := drawingColor(r.hex(r.style.Palette.Primary))
		graph := chart.Chart{
			Title:  title,
			Width:  size.Width,
			Height: size.Height,
			Background: chart.Style{
				Padding: chart.Box{Top: 60, Left: 30, Right: 30, Bottom: 30},
			},
			XAxis: chart.XAxis{
				ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
			},
			YAxis: chart.YAxis{
				Name: "Number of Events",
			},
			Series: []chart.Series{
				chart.TimeSeries{
					Name: "Events",
					Style: chart.Style{
						StrokeColor: primary,
						StrokeWidth: 3,
						FillColor:   primary.WithAlpha(76),
					},
					XValues: xs,
					YValues: ys,
				},
			},
		}

		var buf bytes.Buffer
		if err := graph.Render(chart.PNG, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

func drawingColor(c interface{ RGBA() (r, g, b, a uint32) }) drawing.Color {
	r, g, b, a := c.RGBA()
	return drawing.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
