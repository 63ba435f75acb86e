// Package compose assembles weather report documents. It validates request
// metadata, fans out to the chart and map renderers, and isolates section
// failures so one bad section degrades to a placeholder paragraph instead
// of sinking the whole report.
package compose

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/storm-report-service/internal/chart"
	"github.com/couchcryptid/storm-report-service/internal/domain"
	"github.com/couchcryptid/storm-report-service/internal/geo"
	"github.com/couchcryptid/storm-report-service/internal/observability"
)

// LayoutEngine serializes a composed document to its final byte form.
type LayoutEngine interface {
	Render(doc domain.Document) ([]byte, error)
}

// Composer builds address and spatial weather reports.
type Composer struct {
	charts  *chart.Renderer
	geo     *geo.Renderer
	layout  LayoutEngine
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a report composer.
func New(charts *chart.Renderer, geoRenderer *geo.Renderer, layout LayoutEngine, logger *slog.Logger, metrics *observability.Metrics) *Composer {
	return &Composer{
		charts:  charts,
		geo:     geoRenderer,
		layout:  layout,
		logger:  logger,
		metrics: metrics,
	}
}

// ComposeAddressReport builds a PDF report for a single address: a title
// page, the weather statistics table, and a location map when center
// coordinates are present. Metadata validation failure is fatal; a map
// failure degrades to a placeholder paragraph.
func (c *Composer) ComposeAddressReport(ctx context.Context, meta domain.ReportMeta, stats domain.WeatherStats) ([]byte, error) {
	start := time.Now()
	if err := meta.Validate(); err != nil {
		c.metrics.ReportsGenerated.WithLabelValues("address", "error").Inc()
		return nil, err
	}
	c.logger.Info("composing address report", "report_id", meta.ReportID, "location", meta.Location)

	blocks := c.titlePage(meta)
	blocks = append(blocks, domain.PageBreakBlock{})
	blocks = append(blocks,
		domain.HeadingBlock{Text: "Weather Summary"},
		domain.ParagraphBlock{Text: c.summaryText(meta, stats)},
		domain.SpacerBlock{Height: 10},
		statsTable(stats),
	)

	if center, ok := meta.Center(); ok {
		blocks = append(blocks, c.section("location map", func() ([]domain.Block, error) {
			png, err := c.geo.RenderLocationMap(ctx, center, meta.Location, "Property Location")
			if err != nil {
				return nil, err
			}
			return []domain.Block{
				domain.SpacerBlock{Height: 10},
				domain.HeadingBlock{Text: "Location"},
				c.mapImage("location_map", png, meta.Location),
			}, nil
		})...)
	}

	pdf, err := c.finish(meta, blocks)
	if err != nil {
		c.metrics.ReportsGenerated.WithLabelValues("address", "error").Inc()
		return nil, err
	}
	c.metrics.ReportsGenerated.WithLabelValues("address", "success").Inc()
	c.metrics.ReportDuration.WithLabelValues("address").Observe(time.Since(start).Seconds())
	return pdf, nil
}

// ComposeSpatialReport builds a PDF report for an analysis area: a title
// page, an event summary, heat and boundary maps, and the four aggregate
// charts. Sections render concurrently and each failure is isolated to its
// own placeholder.
func (c *Composer) ComposeSpatialReport(ctx context.Context, meta domain.ReportMeta) ([]byte, error) {
	start := time.Now()
	if err := meta.Validate(); err != nil {
		c.metrics.ReportsGenerated.WithLabelValues("spatial", "error").Inc()
		return nil, err
	}
	c.logger.Info("composing spatial report", "report_id", meta.ReportID, "location", meta.Location)

	spatial := meta.Spatial
	if spatial == nil {
		spatial = &domain.SpatialData{}
	}

	blocks := c.titlePage(meta)
	blocks = append(blocks, domain.PageBreakBlock{})
	blocks = append(blocks,
		domain.HeadingBlock{Text: "Event Overview"},
		domain.ParagraphBlock{Text: fmt.Sprintf(
			"This report analyzes %d weather events recorded in %s between %s and %s.",
			len(spatial.Events), meta.Location, meta.StartDate, meta.EndDate)},
	)

	blocks = append(blocks, c.runSections(c.spatialSections(ctx, meta, spatial))...)

	pdf, err := c.finish(meta, blocks)
	if err != nil {
		c.metrics.ReportsGenerated.WithLabelValues("spatial", "error").Inc()
		return nil, err
	}
	c.metrics.ReportsGenerated.WithLabelValues("spatial", "success").Inc()
	c.metrics.ReportDuration.WithLabelValues("spatial").Observe(time.Since(start).Seconds())
	return pdf, nil
}

// CheckReadiness verifies the rendering pipeline can produce output,
// exercising the layout engine with a minimal document.
func (c *Composer) CheckReadiness(ctx context.Context) error {
	_, err := c.layout.Render(domain.Document{
		Title:  "readiness probe",
		Blocks: []domain.Block{domain.ParagraphBlock{Text: "ok"}},
	})
	if err != nil {
		return fmt.Errorf("layout engine not ready: %w", err)
	}
	return ctx.Err()
}

func (c *Composer) finish(meta domain.ReportMeta, blocks []domain.Block) ([]byte, error) {
	doc := domain.Document{
		Title:  meta.Title,
		Author: "Storm Report Service",
		Blocks: blocks,
	}
	pdf, err := c.layout.Render(doc)
	if err != nil {
		c.logger.Error("document serialization failed", "report_id", meta.ReportID, "error", err)
		return nil, fmt.Errorf("serialize report %s: %w", meta.ReportID, err)
	}
	return pdf, nil
}

func (c *Composer) titlePage(meta domain.ReportMeta) []domain.Block {
	generated := domain.Clock().Now().Format("January 2, 2006")
	return []domain.Block{
		domain.SpacerBlock{Height: 120},
		domain.TitleBlock{Text: meta.Title},
		domain.SpacerBlock{Height: 30},
		domain.ParagraphBlock{Text: "Location: " + meta.Location},
		domain.ParagraphBlock{Text: fmt.Sprintf("Analysis Period: %s to %s", meta.StartDate, meta.EndDate)},
		domain.ParagraphBlock{Text: "Generated: " + generated},
		domain.SpacerBlock{Height: 60},
		domain.SubheadingBlock{Text: "Storm Report Service"},
	}
}

func (c *Composer) summaryText(meta domain.ReportMeta, stats domain.WeatherStats) string {
	return fmt.Sprintf(
		"Weather conditions for %s during the period %s to %s, including %s recorded weather events.",
		meta.Location, meta.StartDate, meta.EndDate, domain.FormatCount(stats.WeatherEvents))
}

func statsTable(stats domain.WeatherStats) domain.TableBlock {
	return domain.TableBlock{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Maximum Temperature", domain.FormatMeasure(stats.MaxTemp, "°F")},
			{"Minimum Temperature", domain.FormatMeasure(stats.MinTemp, "°F")},
			{"Total Precipitation", domain.FormatMeasure(stats.TotalPrecip, " inches")},
			{"Maximum Wind Speed", domain.FormatMeasure(stats.MaxWind, " mph")},
			{"Weather Events", domain.FormatCount(stats.WeatherEvents)},
			{"Hail Events", domain.FormatCount(stats.HailEvents)},
			{"Maximum Hail Size", domain.FormatMeasure(stats.MaxHailSize, " inches")},
		},
	}
}

func (c *Composer) mapImage(name string, png []byte, caption string) domain.ImageBlock {
	return domain.ImageBlock{
		Name:    name,
		Source:  name,
		Caption: caption,
		PNG:     png,
		Width:   c.geoSizeWidth(),
		Height:  c.geoSizeHeight(),
	}
}

func (c *Composer) geoSizeWidth() int  { return c.geo.MapSize().Width }
func (c *Composer) geoSizeHeight() int { return c.geo.MapSize().Height }

func chartImage(name string, res chart.Result, caption string) domain.ImageBlock {
	return domain.ImageBlock{
		Name:    name,
		Source:  name,
		Caption: caption,
		PNG:     res.PNG,
		Width:   res.Width,
		Height:  res.Height,
	}
}

// section runs one report section with failure isolation: an error or panic
// becomes a single placeholder paragraph naming the section, and the report
// continues without it.
func (c *Composer) section(name string, fn func() ([]domain.Block, error)) (blocks []domain.Block) {
	defer func() {
		if p := recover(); p != nil {
			c.logger.Error("report section panicked", "section", name, "panic", p)
			c.metrics.SectionsDegraded.WithLabelValues(name).Inc()
			blocks = placeholderBlocks(name, fmt.Errorf("panic: %v", p))
		}
	}()

	blocks, err := fn()
	if err != nil {
		var rendererErr *domain.RendererError
		if errors.As(err, &rendererErr) {
			c.logger.Error("report section failed", "section", name, "backend", rendererErr.Backend, "error", err)
		} else {
			c.logger.Error("report section failed", "section", name, "error", err)
		}
		c.metrics.SectionsDegraded.WithLabelValues(name).Inc()
		return placeholderBlocks(name, err)
	}
	return blocks
}

func placeholderBlocks(name string, err error) []domain.Block {
	return []domain.Block{
		domain.ParagraphBlock{Text: fmt.Sprintf("[%s could not be generated: %v]", name, err)},
	}
}

// namedSection pairs a section with its placeholder name for concurrent runs.
type namedSection struct {
	name string
	fn   func() ([]domain.Block, error)
}

// runSections renders sections concurrently and reassembles their blocks in
// declaration order, so output is deterministic regardless of completion
// order.
func (c *Composer) runSections(sections []namedSection) []domain.Block {
	results := make([][]domain.Block, len(sections))
	var wg sync.WaitGroup
	for i, s := range sections {
		wg.Add(1)
		go func(i int, s namedSection) {
			defer wg.Done()
			results[i] = c.section(s.name, s.fn)
		}(i, s)
	}
	wg.Wait()

	var blocks []domain.Block
	for _, r := range results {
		blocks = append(blocks, r...)
	}
	return blocks
}
