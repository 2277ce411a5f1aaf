// Package metrics defines the prometheus instrumentation for mt-nir.  All
// collectors live on a dedicated registry so that serve mode can expose them
// without inheriting unrelated default-registry collectors; the one-shot CLI
// simply never scrapes them.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for PredictionsTotal.
const (
	OutcomeSuccess  = "success"
	OutcomeSentinel = "sentinel"
	OutcomeCached   = "cached"
)

// Metrics holds all application collectors.  A nil *Metrics is valid and
// records nothing, so components can treat instrumentation as optional.
type Metrics struct {
	registry *prometheus.Registry

	// PredictionsTotal counts completed single-molecule predictions by
	// outcome: success, sentinel (failed in-band), or cached.
	PredictionsTotal *prometheus.CounterVec

	// ToolDuration observes wall-clock seconds per external-tool invocation.
	ToolDuration prometheus.Histogram

	// CacheHitsTotal counts prediction-cache hits.
	CacheHitsTotal prometheus.Counter
}

// New constructs the collector set on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		PredictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mtnir",
			Name:      "predictions_total",
			Help:      "Completed single-molecule predictions by outcome.",
		}, []string{"outcome"}),
		ToolDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mtnir",
			Name:      "external_tool_duration_seconds",
			Help:      "Wall-clock duration of chemprop invocations.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mtnir",
			Name:      "cache_hits_total",
			Help:      "Prediction cache hits.",
		}),
	}

	reg.MustRegister(m.PredictionsTotal, m.ToolDuration, m.CacheHitsTotal)
	return m
}

// Registry returns the registry backing the collectors, for the /metrics
// handler.  Returns nil on a nil receiver.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordPrediction increments PredictionsTotal for the given outcome.
func (m *Metrics) RecordPrediction(outcome string) {
	if m == nil {
		return
	}
	m.PredictionsTotal.WithLabelValues(outcome).Inc()
}

// RecordToolDuration observes one external-tool invocation duration.
func (m *Metrics) RecordToolDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.ToolDuration.Observe(d.Seconds())
}

// RecordCacheHit increments CacheHitsTotal.
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}
