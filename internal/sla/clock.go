// Package sla computes elapsed-fraction-of-allowed-time per review stage and
// detects threshold crossings. The clock is a pure function of time; nothing
// here is persisted.
package sla

import (
	"time"

	"pharma-content-review/backend/internal/submission/domain"
)

// ThresholdPcts are the escalation points, in percent of the allowed
// duration. 100 is breach.
var ThresholdPcts = []int{50, 75, 90, 100}

// Durations maps each stage to its allowed duration. Stages absent from the
// map (terminal stages) have no SLA.
type Durations map[domain.Stage]time.Duration

// DefaultDurations returns the per-stage allowances used when config does not
// override them.
func DefaultDurations() Durations {
	return Durations{
		domain.StageSubmitted:         12 * time.Hour,
		domain.StageAIProcessing:      2 * time.Hour,
		domain.StageSEOReview:         24 * time.Hour,
		domain.StageClientReview:      72 * time.Hour,
		domain.StageMLRReview:         96 * time.Hour,
		domain.StageRevisionRequested: 48 * time.Hour,
	}
}

// Status is the result of evaluating a submission's SLA clock.
type Status struct {
	Stage   domain.Stage
	Allowed time.Duration
	Elapsed time.Duration
	// Fraction is elapsed/allowed; it keeps growing past 1.0 after breach.
	// Zero when the stage has no SLA.
	Fraction float64
	// Crossed holds every threshold percentage at or below the current
	// fraction, ascending. Callers dedupe repeated notifications themselves.
	Crossed []int
}

// Breached reports whether the stage has used all of its allowed time.
func (s Status) Breached() bool {
	return len(s.Crossed) > 0 && s.Crossed[len(s.Crossed)-1] >= 100
}

// Evaluate computes the SLA status for a stage entered at enteredAt as of now.
func Evaluate(d Durations, stage domain.Stage, enteredAt, now time.Time) Status {
	st := Status{Stage: stage}
	allowed, ok := d[stage]
	if !ok || allowed <= 0 {
		return st
	}
	st.Allowed = allowed
	elapsed := now.Sub(enteredAt)
	if elapsed < 0 {
		elapsed = 0
	}
	st.Elapsed = elapsed
	st.Fraction = float64(elapsed) / float64(allowed)
	for _, pct := range ThresholdPcts {
		if st.Fraction >= float64(pct)/100 {
			st.Crossed = append(st.Crossed, pct)
		}
	}
	return st
}
