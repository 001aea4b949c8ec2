package repository

import (
	"context"
	"database/sql"

	"pharma-content-review/backend/internal/audit/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an audit repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Append inserts the entry. ON CONFLICT DO NOTHING makes retries with the
// same client-generated ID idempotent. Ordering for reads comes from the
// table's seq column, assigned here on first insert.
func (r *PostgresRepository) Append(ctx context.Context, e *domain.Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, submission_id, from_stage, to_stage, actor, ts, outcome, payload_snapshot, error_message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO NOTHING`,
		e.ID, e.SubmissionID, e.FromStage, e.ToStage, e.Actor, e.Timestamp,
		string(e.Outcome), nullBytes(e.PayloadSnapshot),
		sql.NullString{String: e.ErrorMessage, Valid: e.ErrorMessage != ""})
	return err
}

// ListBySubmission returns entries for the submission in append order,
// paginated by limit and offset. Returns (nil, error) only on database errors.
func (r *PostgresRepository) ListBySubmission(ctx context.Context, submissionID string, limit, offset int32) ([]*domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, submission_id, from_stage, to_stage, actor, ts, outcome, payload_snapshot, error_message
		 FROM audit_log WHERE submission_id = $1 ORDER BY seq LIMIT $2 OFFSET $3`,
		submissionID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Entry
	for rows.Next() {
		var (
			e       domain.Entry
			outcome string
			payload []byte
			errMsg  sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.SubmissionID, &e.FromStage, &e.ToStage, &e.Actor, &e.Timestamp, &outcome, &payload, &errMsg); err != nil {
			return nil, err
		}
		e.Outcome = domain.AttemptOutcome(outcome)
		e.PayloadSnapshot = payload
		if errMsg.Valid {
			e.ErrorMessage = errMsg.String
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func nullBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
