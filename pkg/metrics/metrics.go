// Package metrics exposes emission counters and timings as Prometheus
// collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Statement actions recorded by ObserveStatement.
const (
	ActionCreate = "create"
	ActionAlter  = "alter"
	ActionDrop   = "drop"
)

// EmissionMetrics collects what emission passes produce. A nil
// *EmissionMetrics records nothing.
type EmissionMetrics struct {
	statements *prometheus.CounterVec
	skipped    *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewEmissionMetrics() *EmissionMetrics {
	return &EmissionMetrics{
		statements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schemacore_emitted_statements_total",
				Help: "Statements emitted, by object kind and action",
			}, []string{"kind", "action"},
		),
		skipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schemacore_skipped_objects_total",
				Help: "Objects left out of emission, by reason",
			}, []string{"reason"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "schemacore_emission_duration_seconds",
				Help:    "Duration of emission passes",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			}, []string{"operation"},
		),
	}
}

// Register adds the collectors to registry.
func (m *EmissionMetrics) Register(registry prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.statements, m.skipped, m.duration} {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *EmissionMetrics) ObserveStatement(kind, action string) {
	if m == nil {
		return
	}
	m.statements.WithLabelValues(kind, action).Inc()
}

func (m *EmissionMetrics) ObserveSkip(reason string) {
	if m == nil {
		return
	}
	m.skipped.WithLabelValues(reason).Inc()
}

// ObserveDuration records the time since start under operation.
func (m *EmissionMetrics) ObserveDuration(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// StatementCount returns the counter for kind and action.
func (m *EmissionMetrics) StatementCount(kind, action string) prometheus.Counter {
	return m.statements.WithLabelValues(kind, action)
}

// SkipCount returns the counter for reason.
func (m *EmissionMetrics) SkipCount(reason string) prometheus.Counter {
	return m.skipped.WithLabelValues(reason)
}
