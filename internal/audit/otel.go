package audit

import (
	"context"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"pharma-content-review/backend/internal/audit/domain"
)

// NewLogSink returns a Sink that emits entries as OTel log records via the
// given LoggerProvider, for operators who watch the trail through the
// collector. If provider is nil, returns a no-op sink. This is a mirror, not
// the system-of-record; pair it with the postgres repository through Tee.
func NewLogSink(provider *sdklog.LoggerProvider) Sink {
	if provider == nil {
		return noopSink{}
	}
	return &logSink{logger: provider.Logger("content-review.audit")}
}

type noopSink struct{}

func (noopSink) Append(context.Context, *domain.Entry) error { return nil }

type logSink struct {
	logger otellog.Logger
}

func (s *logSink) Append(ctx context.Context, e *domain.Entry) error {
	if e == nil {
		return nil
	}
	rec := otellog.Record{}
	if !e.Timestamp.IsZero() {
		rec.SetTimestamp(e.Timestamp)
	} else {
		rec.SetTimestamp(time.Now().UTC())
	}
	if len(e.PayloadSnapshot) > 0 {
		rec.SetBody(otellog.BytesValue(e.PayloadSnapshot))
	}
	rec.AddAttributes(
		otellog.String("entry_id", e.ID),
		otellog.String("submission_id", e.SubmissionID),
		otellog.String("from_stage", e.FromStage),
		otellog.String("to_stage", e.ToStage),
		otellog.String("actor", e.Actor),
		otellog.String("outcome", string(e.Outcome)),
	)
	if e.ErrorMessage != "" {
		rec.AddAttributes(otellog.String("error_message", e.ErrorMessage))
	}
	s.logger.Emit(ctx, rec)
	return nil
}
