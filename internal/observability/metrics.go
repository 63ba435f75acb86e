package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the report
// composition pipeline.
type Metrics struct {
	ReportsGenerated *prometheus.CounterVec   // labels: kind={address,spatial}, outcome={success,error}
	ReportDuration   *prometheus.HistogramVec // labels: kind

	ChartsRendered    *prometheus.CounterVec   // labels: kind, outcome={ok,empty,degraded}
	MapRenders        *prometheus.CounterVec   // labels: backend, outcome={ok,error}
	MapRenderDuration *prometheus.HistogramVec // labels: backend

	RecordsSkipped   *prometheus.CounterVec // labels: stage={aggregate,heat_map,markers}
	SectionsDegraded *prometheus.CounterVec // labels: section
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ReportsGenerated,
		m.ReportDuration,
		m.ChartsRendered,
		m.MapRenders,
		m.MapRenderDuration,
		m.RecordsSkipped,
		m.SectionsDegraded,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "reports_generated_total",
			Help:      "Report compose calls by kind and outcome.",
		}, []string{"kind", "outcome"}),
		ReportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storm_report",
			Name:      "report_duration_seconds",
			Help:      "End-to-end compose duration per report kind.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"kind"}),
		ChartsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "charts_rendered_total",
			Help:      "Chart render calls by kind and outcome.",
		}, []string{"kind", "outcome"}),
		MapRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "map_renders_total",
			Help:      "Map render calls by backend and outcome.",
		}, []string{"backend", "outcome"}),
		MapRenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storm_report",
			Name:      "map_render_duration_seconds",
			Help:      "Map backend render duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"backend"}),
		RecordsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "records_skipped_total",
			Help:      "Malformed event records dropped per pipeline stage.",
		}, []string{"stage"}),
		SectionsDegraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "sections_degraded_total",
			Help:      "Report sections replaced by a placeholder block.",
		}, []string{"section"}),
	}
}
