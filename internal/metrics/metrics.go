package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	renderCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_render_cycles_total",
		Help: "Filter-and-aggregate cycles executed, per dashboard section.",
	}, []string{"section"})

	renderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_render_cycle_seconds",
		Help:    "Duration of one filter-and-aggregate cycle.",
		Buckets: prometheus.DefBuckets,
	}, []string{"section"})

	exportDownloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_export_downloads_total",
		Help: "Aggregate exports served, per format.",
	}, []string{"format"})
)

// ObserveRenderCycle records one synchronous pipeline run for a section.
func ObserveRenderCycle(section string, d time.Duration) {
	renderCycles.WithLabelValues(section).Inc()
	renderDuration.WithLabelValues(section).Observe(d.Seconds())
}

// CountExport records a served export download.
func CountExport(format string) {
	exportDownloads.WithLabelValues(format).Inc()
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
