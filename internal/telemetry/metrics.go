// Package telemetry holds the engine's OTel instruments.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds counters for workflow outcomes. A nil *Metrics is valid and
// records nothing, so tests and partial wiring don't need a meter.
type Metrics struct {
	attempts      metric.Int64Counter
	auditDegraded metric.Int64Counter
	slaThresholds metric.Int64Counter
}

// NewMetrics creates the engine's counters on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	attempts, err := meter.Int64Counter("workflow.transition.attempts",
		metric.WithDescription("Transition attempts by outcome"))
	if err != nil {
		return nil, err
	}
	degraded, err := meter.Int64Counter("workflow.audit.degraded",
		metric.WithDescription("Audit appends that failed after a committed transition"))
	if err != nil {
		return nil, err
	}
	sla, err := meter.Int64Counter("workflow.sla.threshold_crossings",
		metric.WithDescription("SLA threshold crossings observed by the sweeper"))
	if err != nil {
		return nil, err
	}
	return &Metrics{attempts: attempts, auditDegraded: degraded, slaThresholds: sla}, nil
}

// RecordAttempt counts one transition attempt with its outcome label.
func (m *Metrics) RecordAttempt(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.attempts.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordAuditDegraded counts an audit append failure after a successful commit.
func (m *Metrics) RecordAuditDegraded(ctx context.Context) {
	if m == nil {
		return
	}
	m.auditDegraded.Add(ctx, 1)
}

// RecordSLAThreshold counts one threshold crossing for the given stage.
func (m *Metrics) RecordSLAThreshold(ctx context.Context, stage string, thresholdPct int) {
	if m == nil {
		return
	}
	m.slaThresholds.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.Int("threshold_pct", thresholdPct),
	))
}
