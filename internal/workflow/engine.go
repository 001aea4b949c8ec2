package workflow

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"pharma-content-review/backend/internal/audit"
	auditdomain "pharma-content-review/backend/internal/audit/domain"
	"pharma-content-review/backend/internal/submission/domain"
	submissionrepo "pharma-content-review/backend/internal/submission/repository"
	"pharma-content-review/backend/internal/telemetry"
)

// auditAppendTimeout bounds the post-commit audit append, which runs on a
// context detached from the caller's so cancellation after the store commit
// cannot leave a committed transition unlogged without a fallback trail.
const auditAppendTimeout = 5 * time.Second

// DegradedFunc is called when the audit append fails after a successful store
// commit. The workflow outcome stands; this is the operator side channel.
type DegradedFunc func(ctx context.Context, e *auditdomain.Entry, err error)

// Engine orchestrates reviewer decisions: validate the payload, consult the
// transition table, compare-and-swap the submission, and append an audit
// entry. It holds no per-submission state; the version column is the sole
// ordering mechanism for concurrent decisions.
type Engine struct {
	subs       submissionrepo.Repository
	sink       audit.Sink
	metrics    *telemetry.Metrics
	tracer     trace.Tracer
	now        func() time.Time
	onDegraded DegradedFunc
}

// Option configures the Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source (tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithMetrics attaches workflow counters.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithTracer attaches a tracer for Submit spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithDegradedFunc overrides the audit-degraded side channel. The default
// logs the failure.
func WithDegradedFunc(f DegradedFunc) Option {
	return func(e *Engine) { e.onDegraded = f }
}

// NewEngine returns an Engine over the given submission repository and audit sink.
func NewEngine(subs submissionrepo.Repository, sink audit.Sink, opts ...Option) *Engine {
	e := &Engine{
		subs:   subs,
		sink:   sink,
		tracer: noop.NewTracerProvider().Tracer(""),
		now:    func() time.Time { return time.Now().UTC() },
		onDegraded: func(_ context.Context, entry *auditdomain.Entry, err error) {
			log.Printf("workflow: audit degraded: append %s after committed transition %s->%s failed: %v",
				entry.ID, entry.FromStage, entry.ToStage, err)
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Submit applies one reviewer decision and returns the updated submission.
//
// Every attempt that reaches application state produces exactly one audit
// entry: success, rejected-by-validator, conflict, or error. Failures to
// reach the store at all (ErrStoreUnavailable, ErrNotFound on load) produce
// none, since no transition was attempted against application state.
//
// The success entry is appended only after the compare-and-swap commits,
// never before. If that append fails the call still succeeds and the
// degraded side channel fires.
func (e *Engine) Submit(ctx context.Context, d Decision) (*domain.Submission, error) {
	ctx, span := e.tracer.Start(ctx, "workflow.Submit", trace.WithAttributes(
		attribute.String("submission.id", d.SubmissionID),
		attribute.String("decision.outcome", string(d.Outcome)),
	))
	defer span.End()

	sub, err := e.subs.GetByID(ctx, d.SubmissionID)
	if err != nil {
		return nil, ErrStoreUnavailable
	}
	if sub == nil {
		return nil, ErrNotFound
	}

	if d.SubmittedVersion != sub.Version {
		e.logAttempt(ctx, d, sub.Stage, sub.Stage, auditdomain.OutcomeConflict, "stale read: submitted version does not match")
		e.metrics.RecordAttempt(ctx, string(auditdomain.OutcomeConflict))
		return nil, ErrConflict
	}

	if missing := Validate(sub.Stage, d.Outcome, d.Payload); len(missing) > 0 {
		verr := &ValidationError{Missing: missing}
		e.logAttempt(ctx, d, sub.Stage, sub.Stage, auditdomain.OutcomeRejectedByValidator, verr.Error())
		e.metrics.RecordAttempt(ctx, string(auditdomain.OutcomeRejectedByValidator))
		return nil, verr
	}

	next, origin, err := NextStage(sub, d.Outcome)
	if err != nil {
		e.logAttempt(ctx, d, sub.Stage, sub.Stage, auditdomain.OutcomeError, err.Error())
		e.metrics.RecordAttempt(ctx, string(auditdomain.OutcomeError))
		return nil, err
	}

	enteredAt := e.now()
	affected, err := e.subs.CompareAndSwap(ctx, sub.ID, d.SubmittedVersion, next, origin, enteredAt)
	if err != nil {
		return nil, ErrStoreUnavailable
	}
	if affected == 0 {
		// Another writer won between our read and the swap.
		e.logAttempt(ctx, d, sub.Stage, sub.Stage, auditdomain.OutcomeConflict, "compare-and-swap lost: version advanced concurrently")
		e.metrics.RecordAttempt(ctx, string(auditdomain.OutcomeConflict))
		return nil, ErrConflict
	}

	updated := *sub
	updated.Stage = next
	updated.Version = sub.Version + 1
	updated.RevisionOrigin = origin
	updated.StageEnteredAt = enteredAt

	entry := e.newEntry(d, sub.Stage, next, auditdomain.OutcomeSuccess, "")
	appendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditAppendTimeout)
	defer cancel()
	if err := e.sink.Append(appendCtx, entry); err != nil {
		e.metrics.RecordAuditDegraded(ctx)
		e.onDegraded(ctx, entry, err)
	}
	e.metrics.RecordAttempt(ctx, string(auditdomain.OutcomeSuccess))

	return &updated, nil
}

// logAttempt appends a failure entry. Best-effort: an audit outage must not
// change which error the caller sees.
func (e *Engine) logAttempt(ctx context.Context, d Decision, from, to domain.Stage, outcome auditdomain.AttemptOutcome, msg string) {
	entry := e.newEntry(d, from, to, outcome, msg)
	if err := e.sink.Append(ctx, entry); err != nil {
		log.Printf("workflow: failed to append %s audit entry for %s: %v", outcome, d.SubmissionID, err)
	}
}

func (e *Engine) newEntry(d Decision, from, to domain.Stage, outcome auditdomain.AttemptOutcome, msg string) *auditdomain.Entry {
	return &auditdomain.Entry{
		ID:              uuid.New().String(),
		SubmissionID:    d.SubmissionID,
		FromStage:       string(from),
		ToStage:         string(to),
		Actor:           d.ActorID,
		Timestamp:       e.now(),
		Outcome:         outcome,
		PayloadSnapshot: SnapshotPayload(d.Payload),
		ErrorMessage:    msg,
	}
}
