package repository

import (
	"context"
	"time"

	"pharma-content-review/backend/internal/submission/domain"
)

// Repository defines persistence for submissions. All stage/version mutation
// goes through CompareAndSwap; there is no unconditional update.
type Repository interface {
	// GetByID returns the submission for id, or nil if not found.
	// It returns an error only for database failures, not for missing rows.
	GetByID(ctx context.Context, id string) (*domain.Submission, error)
	// ListByStage returns submissions in the given stage, paginated by limit
	// and offset. An empty stage returns all submissions.
	ListByStage(ctx context.Context, stage domain.Stage, limit, offset int32) ([]*domain.Submission, error)
	// ListActive returns submissions whose stage is non-terminal, for SLA
	// sweeping.
	ListActive(ctx context.Context) ([]*domain.Submission, error)
	// Create persists a new submission. The submission must have ID set.
	Create(ctx context.Context, s *domain.Submission) error
	// CompareAndSwap moves the submission with id from expectedVersion to
	// expectedVersion+1, setting stage, revision origin, and stage entry time
	// in the same statement. Returns the number of rows affected: zero means
	// the version did not match (another writer won) or the row is gone.
	CompareAndSwap(ctx context.Context, id string, expectedVersion int64, newStage domain.Stage, newOrigin *domain.Stage, enteredAt time.Time) (int64, error)
}
