package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the process-wide instrumentation. A nil *Metrics is a no-op so
// tests and library callers can skip it.
type Metrics struct {
	SearchesTotal  *prometheus.CounterVec
	SearchDuration prometheus.Histogram

	PagesTotal   *prometheus.CounterVec
	PageDuration prometheus.Histogram

	ListingsTotal *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		SearchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallaseek_searches_total",
				Help: "Total number of searches by outcome",
			},
			[]string{"status"},
		),
		SearchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wallaseek_search_duration_seconds",
				Help:    "End-to-end search duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
		),

		PagesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallaseek_pages_total",
				Help: "Total number of result pages fetched by outcome",
			},
			[]string{"status"},
		),
		PageDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wallaseek_page_fetch_duration_seconds",
				Help:    "Single page fetch duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
		),

		ListingsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallaseek_listings_total",
				Help: "Listings processed by outcome (accepted, filtered, invalid, duplicate, malformed)",
			},
			[]string{"outcome"},
		),
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) RecordSearch(status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.SearchesTotal.WithLabelValues(status).Inc()
	m.SearchDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordPage(status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.PagesTotal.WithLabelValues(status).Inc()
	m.PageDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordListing(outcome string) {
	if m == nil {
		return
	}
	m.ListingsTotal.WithLabelValues(outcome).Inc()
}
