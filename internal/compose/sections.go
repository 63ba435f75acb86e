package compose

import (
	"context"
	"errors"
	"fmt"

	"github.com/couchcryptid/storm-report-service/internal/aggregate"
	"github.com/couchcryptid/storm-report-service/internal/chart"
	"github.com/couchcryptid/storm-report-service/internal/domain"
)

var errNoCenter = errors.New("no center coordinates available")

// spatialSections declares the map and chart sections of a spatial report,
// in output order. Each closure is self-contained so the sections can run
// concurrently.
func (c *Composer) spatialSections(ctx context.Context, meta domain.ReportMeta, spatial *domain.SpatialData) []namedSection {
	events := spatial.Events

	sections := []namedSection{
		{name: "event heat map", fn: func() ([]domain.Block, error) {
			center, ok := spatial.Center()
			if !ok {
				if center, ok = meta.Center(); !ok {
					return nil, errNoCenter
				}
			}
			heatEvents := spatial.HeatMapData
			if len(heatEvents) == 0 {
				heatEvents = events
			}
			png, err := c.geo.RenderHeatMap(ctx, heatEvents, center, "Event Concentration")
			if err != nil {
				return nil, err
			}
			return []domain.Block{
				domain.HeadingBlock{Text: "Event Heat Map"},
				c.mapImage("heat_map", png, "Geographic concentration of weather events"),
			}, nil
		}},
	}

	if polygon := spatial.Boundary.Polygon(); len(polygon) >= 3 {
		sections = append(sections, namedSection{name: "boundary map", fn: func() ([]domain.Block, error) {
			center, ok := spatial.Center()
			if !ok {
				if center, ok = meta.Center(); !ok {
					return nil, errNoCenter
				}
			}
			png, err := c.geo.RenderBoundaryMap(ctx, polygon, events, center, spatial.Boundary.Name)
			if err != nil {
				return nil, err
			}
			return []domain.Block{
				domain.HeadingBlock{Text: "Analysis Area"},
				c.mapImage("boundary_map", png, boundaryCaption(spatial.Boundary)),
			}, nil
		}})
	}

	sections = append(sections,
		namedSection{name: "event timeline chart", fn: func() ([]domain.Block, error) {
			series, skipped := aggregate.BucketByMonth(events)
			c.countSkipped(skipped)
			res := c.charts.RenderTimeSeries(series, "Weather Events Over Time")
			return c.chartSection("Event Timeline", chart.KindTimeSeries, res), nil
		}},
		namedSection{name: "event distribution chart", fn: func() ([]domain.Block, error) {
			dist, skipped := aggregate.RankCategories(events, aggregate.DefaultRankLimit)
			c.countSkipped(skipped)
			res := c.charts.RenderDistribution(dist, "Event Type Distribution")
			return c.chartSection("Event Distribution", chart.KindDistribution, res), nil
		}},
		namedSection{name: "monthly breakdown chart", fn: func() ([]domain.Block, error) {
			matrix, skipped := aggregate.StackByMonth(events, aggregate.DefaultStackCategories)
			c.countSkipped(skipped)
			res := c.charts.RenderMonthlyStack(matrix, "Monthly Breakdown by Event Type")
			return c.chartSection("Monthly Breakdown", chart.KindMonthlyStack, res), nil
		}},
		namedSection{name: "daily activity chart", fn: func() ([]domain.Block, error) {
			matrix, skipped := aggregate.CalendarMatrix(events)
			c.countSkipped(skipped)
			res := c.charts.RenderCalendarHeat(matrix, "Daily Event Activity")
			return c.chartSection("Daily Activity", chart.KindCalendarHeat, res), nil
		}},
	)

	return sections
}

// chartSection wraps a chart result as a titled report section. Degraded
// results still embed their placeholder image; the caption carries the
// degradation note.
func (c *Composer) chartSection(heading, kind string, res chart.Result) []domain.Block {
	caption := ""
	if res.Degraded {
		caption = "Chart could not be fully rendered"
	}
	return []domain.Block{
		domain.SubheadingBlock{Text: heading},
		chartImage(kind, res, caption),
	}
}

func (c *Composer) countSkipped(skipped int) {
	if skipped > 0 {
		c.metrics.RecordsSkipped.WithLabelValues("aggregate").Add(float64(skipped))
	}
}

func boundaryCaption(b *domain.Boundary) string {
	if b == nil {
		return ""
	}
	if b.Type != "" {
		return fmt.Sprintf("%s (%s)", b.Name, b.Type)
	}
	return b.Name
}
