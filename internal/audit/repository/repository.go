package repository

import (
	"context"

	"pharma-content-review/backend/internal/audit/domain"
)

// Repository defines persistence for audit entries. The table is insert-only:
// there is no update or delete through this interface, and retention is an
// external concern (commonly multi-year for regulated content).
type Repository interface {
	// Append persists the entry. Appending an ID that already exists is a
	// no-op, so at-least-once callers can retry safely.
	Append(ctx context.Context, e *domain.Entry) error
	// ListBySubmission returns entries for the submission in the order they
	// were appended.
	ListBySubmission(ctx context.Context, submissionID string, limit, offset int32) ([]*domain.Entry, error)
}
