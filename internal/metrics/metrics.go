package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/romangod6/sitemap-gen/internal/models"
)

// Metrics records sitemap builds on a dedicated registry.
type Metrics struct {
	Registry *prometheus.Registry

	urls     *prometheus.CounterVec
	duration prometheus.Histogram
	routes   prometheus.Gauge
	lastRun  prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		urls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitemap_urls_generated_total",
			Help: "Number of sitemap URLs generated, by route.",
		}, []string{"route"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sitemap_build_duration_seconds",
			Help:    "Time spent expanding and rendering the sitemap.",
			Buckets: prometheus.DefBuckets,
		}),
		routes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sitemap_routes",
			Help: "Number of routes in the loaded configuration.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sitemap_last_build_timestamp_seconds",
			Help: "Unix time of the last successful build.",
		}),
	}

	m.Registry.MustRegister(
		m.urls,
		m.duration,
		m.routes,
		m.lastRun,
		collectors.NewGoCollector(),
	)

	return m
}

// ObserveBuild records a successful build.
func (m *Metrics) ObserveBuild(routes int, entries []models.Entry, took time.Duration) {
	m.routes.Set(float64(routes))
	m.duration.Observe(took.Seconds())
	for _, e := range entries {
		m.urls.WithLabelValues(e.Route).Inc()
	}
	m.lastRun.SetToCurrentTime()
}
