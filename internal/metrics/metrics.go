package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the process metrics on a private registry.
type Collector struct {
	reg *prometheus.Registry

	PlanRequests prometheus.Counter
	PlanPages    prometheus.Counter
	PlanErrors   prometheus.Counter

	AnalyzeDuration prometheus.Histogram

	ScoringPasses   prometheus.Counter
	ScoringDuration prometheus.Histogram
	SnapshotOptions prometheus.Gauge

	HTTPRequests *prometheus.CounterVec // status label
}

// NewCollector creates and registers all metrics.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		PlanRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trailhead_plan_requests_total",
			Help: "Total trip-plan requests issued to the trip planner.",
		}),
		PlanPages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trailhead_plan_pages_total",
			Help: "Total result pages fetched from the trip planner.",
		}),
		PlanErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trailhead_plan_errors_total",
			Help: "Total failed trip-plan requests.",
		}),
		AnalyzeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trailhead_analyze_duration_seconds",
			Help:    "Duration of one start-to-target analysis.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		ScoringPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trailhead_scoring_passes_total",
			Help: "Total full scoring passes over the dataset.",
		}),
		ScoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trailhead_scoring_duration_seconds",
			Help:    "Duration of one full scoring pass.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		SnapshotOptions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trailhead_snapshot_options",
			Help: "Number of ranked options in the current default snapshot.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trailhead_http_requests_total",
			Help: "HTTP requests served, by status class.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		c.PlanRequests,
		c.PlanPages,
		c.PlanErrors,
		c.AnalyzeDuration,
		c.ScoringPasses,
		c.ScoringDuration,
		c.SnapshotOptions,
		c.HTTPRequests,
	)

	return c
}

// Handler serves the registry over HTTP.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
