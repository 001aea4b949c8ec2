// Package audit defines the append-only sink for transition attempt records.
package audit

import (
	"context"
	"log"

	"pharma-content-review/backend/internal/audit/domain"
)

// Sink receives audit entries. Implementations must never update or delete
// entries, and Append must be safe to retry with the same entry ID.
type Sink interface {
	Append(ctx context.Context, e *domain.Entry) error
}

// Tee writes each entry to primary and mirrors it to mirror. The mirror is
// best-effort: its errors are logged and never returned, so an observability
// outage cannot mask the system-of-record outcome.
func Tee(primary, mirror Sink) Sink {
	return &tee{primary: primary, mirror: mirror}
}

type tee struct {
	primary Sink
	mirror  Sink
}

func (t *tee) Append(ctx context.Context, e *domain.Entry) error {
	err := t.primary.Append(ctx, e)
	if t.mirror != nil {
		if merr := t.mirror.Append(ctx, e); merr != nil {
			log.Printf("audit: mirror append failed for %s: %v", e.ID, merr)
		}
	}
	return err
}
