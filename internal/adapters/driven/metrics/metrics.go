// Package metrics records audit pipeline metrics with Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
)

// Ensure Metrics implements the interface.
var _ driven.AuditMetrics = (*Metrics)(nil)

// Metrics provides observability for audit runs.
type Metrics struct {
	// Audit durations by outcome.
	AuditLatency *prometheus.HistogramVec

	// Completed audits by outcome.
	AuditsTotal *prometheus.CounterVec

	// Sections that fell back to a placeholder.
	DegradedSections *prometheus.CounterVec
}

// New creates the audit metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AuditLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "auditor_audit_duration_seconds",
			Help:    "Duration of a full audit run",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"outcome"}), // outcome: "complete", "degraded"

		AuditsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auditor_audits_total",
			Help: "Total audit runs by outcome",
		}, []string{"outcome"}),

		DegradedSections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auditor_degraded_sections_total",
			Help: "Total pipeline sections that produced a placeholder",
		}, []string{"section"}),
	}
}

// ObserveAudit records the duration and outcome of a completed run.
func (m *Metrics) ObserveAudit(d time.Duration, degraded bool) {
	if m == nil {
		return
	}
	outcome := "complete"
	if degraded {
		outcome = "degraded"
	}
	m.AuditLatency.WithLabelValues(outcome).Observe(d.Seconds())
	m.AuditsTotal.WithLabelValues(outcome).Inc()
}

// IncDegraded counts a degraded section.
func (m *Metrics) IncDegraded(section domain.Section) {
	if m != nil {
		m.DegradedSections.WithLabelValues(section.String()).Inc()
	}
}
