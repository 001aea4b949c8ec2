package sla

import (
	"context"
	"log"
	"sync"
	"time"

	"pharma-content-review/backend/internal/submission/domain"
	submissionrepo "pharma-content-review/backend/internal/submission/repository"
	"pharma-content-review/backend/internal/telemetry"
)

// Event is one threshold crossing reported to the external notifier.
type Event struct {
	SubmissionID string       `json:"submission_id"`
	Stage        domain.Stage `json:"stage"`
	ThresholdPct int          `json:"threshold_pct"`
	Fraction     float64      `json:"fraction"`
	EnteredAt    time.Time    `json:"entered_at"`
	ObservedAt   time.Time    `json:"observed_at"`
}

// Notifier delivers escalation events (e.g. to Kafka for the notification
// service). Best-effort: a failed delivery is retried on the next sweep
// because the dedupe state only advances on success.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Sweeper periodically evaluates the SLA clock for every active submission
// and reports newly crossed thresholds. Dedupe state is in-memory and
// per-process: after a restart the highest crossed threshold is re-reported
// once, which downstream consumers tolerate.
type Sweeper struct {
	subs      submissionrepo.Repository
	durations Durations
	notifier  Notifier
	metrics   *telemetry.Metrics
	now       func() time.Time

	mu       sync.Mutex
	reported map[string]reportedState
}

type reportedState struct {
	stage domain.Stage
	pct   int
}

// NewSweeper returns a Sweeper over the given repository and notifier.
// A nil now defaults to time.Now.
func NewSweeper(subs submissionrepo.Repository, durations Durations, notifier Notifier, metrics *telemetry.Metrics, now func() time.Time) *Sweeper {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Sweeper{
		subs:      subs,
		durations: durations,
		notifier:  notifier,
		metrics:   metrics,
		now:       now,
		reported:  make(map[string]reportedState),
	}
}

// Sweep runs one pass: evaluate every active submission and notify each
// threshold not yet reported for its current stage. Returns an error only
// when the store read fails; notifier failures are logged and retried next
// pass.
func (s *Sweeper) Sweep(ctx context.Context) error {
	subs, err := s.subs.ListActive(ctx)
	if err != nil {
		return err
	}
	now := s.now()

	live := make(map[string]struct{}, len(subs))
	for _, sub := range subs {
		live[sub.ID] = struct{}{}
		status := Evaluate(s.durations, sub.Stage, sub.StageEnteredAt, now)
		for _, pct := range status.Crossed {
			if !s.shouldReport(sub.ID, sub.Stage, pct) {
				continue
			}
			ev := Event{
				SubmissionID: sub.ID,
				Stage:        sub.Stage,
				ThresholdPct: pct,
				Fraction:     status.Fraction,
				EnteredAt:    sub.StageEnteredAt,
				ObservedAt:   now,
			}
			if err := s.notifier.Notify(ctx, ev); err != nil {
				log.Printf("sla: notify %s %d%% for %s failed: %v", sub.Stage, pct, sub.ID, err)
				break
			}
			s.markReported(sub.ID, sub.Stage, pct)
			s.metrics.RecordSLAThreshold(ctx, string(sub.Stage), pct)
		}
	}
	s.prune(live)
	return nil
}

// Run sweeps every interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				log.Printf("sla: sweep failed: %v", err)
			}
		}
	}
}

func (s *Sweeper) shouldReport(id string, stage domain.Stage, pct int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.reported[id]
	if !ok || st.stage != stage {
		return true
	}
	return pct > st.pct
}

func (s *Sweeper) markReported(id string, stage domain.Stage, pct int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.reported[id]
	if ok && st.stage == stage && st.pct >= pct {
		return
	}
	s.reported[id] = reportedState{stage: stage, pct: pct}
}

// prune drops dedupe state for submissions that reached a terminal stage or
// were handed to another sweeper, so the map does not grow unbounded.
func (s *Sweeper) prune(live map[string]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.reported {
		if _, ok := live[id]; !ok {
			delete(s.reported, id)
		}
	}
}
