// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeFailed  = "failed"
	OutcomeTimeout = "timeout"
)

// Metrics holds the pipeline's Prometheus collectors. Each Metrics owns its
// registry so tests and multiple services do not collide on the default one.
type Metrics struct {
	registry *prometheus.Registry

	// SourceFetches counts adapter calls, labeled by source and outcome.
	SourceFetches *prometheus.CounterVec

	// SourceFetchDuration observes adapter call duration in seconds, labeled by source.
	SourceFetchDuration *prometheus.HistogramVec

	// SourcePapers counts papers contributed, labeled by source.
	SourcePapers *prometheus.CounterVec

	// CacheLookups counts topic cache lookups, labeled by result (hit, miss).
	CacheLookups *prometheus.CounterVec

	// RelatedLookups counts related-paper lookups, labeled by result (ok, not_found).
	RelatedLookups *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paper_radar",
			Subsystem: "source",
			Name:      "fetches_total",
			Help:      "Source adapter calls by outcome.",
		}, []string{"source", "outcome"}),
		SourceFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "paper_radar",
			Subsystem: "source",
			Name:      "fetch_duration_seconds",
			Help:      "Source adapter call duration.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		}, []string{"source"}),
		SourcePapers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paper_radar",
			Subsystem: "source",
			Name:      "papers_total",
			Help:      "Papers contributed by each source.",
		}, []string{"source"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paper_radar",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Topic cache lookups by result.",
		}, []string{"result"}),
		RelatedLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paper_radar",
			Subsystem: "similarity",
			Name:      "related_lookups_total",
			Help:      "Related-paper lookups by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		m.SourceFetches,
		m.SourceFetchDuration,
		m.SourcePapers,
		m.CacheLookups,
		m.RelatedLookups,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
