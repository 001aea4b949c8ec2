package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pharma-content-review/backend/internal/submission/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a submission repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const submissionColumns = `id, stage, version, revision_origin, payload, stage_entered_at, created_at`

// GetByID returns the submission for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id)
	s, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// ListByStage returns submissions in the given stage ordered by stage entry
// time, paginated by limit and offset. An empty stage returns all submissions.
func (r *PostgresRepository) ListByStage(ctx context.Context, stage domain.Stage, limit, offset int32) ([]*domain.Submission, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if stage == "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+submissionColumns+` FROM submissions ORDER BY stage_entered_at DESC LIMIT $1 OFFSET $2`,
			limit, offset)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+submissionColumns+` FROM submissions WHERE stage = $1 ORDER BY stage_entered_at DESC LIMIT $2 OFFSET $3`,
			string(stage), limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

// ListActive returns submissions whose stage is non-terminal, oldest stage
// entry first, for SLA sweeping.
func (r *PostgresRepository) ListActive(ctx context.Context) ([]*domain.Submission, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE stage NOT IN ($1, $2) ORDER BY stage_entered_at`,
		string(domain.StagePublished), string(domain.StageRejected))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

// Create persists the submission to the database. The submission must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Submission) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO submissions (id, stage, version, revision_origin, payload, stage_entered_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, string(s.Stage), s.Version, stageToNullString(s.RevisionOrigin),
		[]byte(s.Payload), s.StageEnteredAt, s.CreatedAt)
	return err
}

// CompareAndSwap advances the submission's stage iff its version still equals
// expectedVersion. The version check in the WHERE clause is the engine's sole
// ordering mechanism for concurrent decisions.
func (r *PostgresRepository) CompareAndSwap(ctx context.Context, id string, expectedVersion int64, newStage domain.Stage, newOrigin *domain.Stage, enteredAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE submissions
		 SET stage = $1, version = version + 1, revision_origin = $2, stage_entered_at = $3
		 WHERE id = $4 AND version = $5`,
		string(newStage), stageToNullString(newOrigin), enteredAt, id, expectedVersion)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*domain.Submission, error) {
	var (
		s       domain.Submission
		stage   string
		origin  sql.NullString
		payload []byte
	)
	if err := row.Scan(&s.ID, &stage, &s.Version, &origin, &payload, &s.StageEnteredAt, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.Stage = domain.Stage(stage)
	s.Payload = payload
	if origin.Valid {
		o := domain.Stage(origin.String)
		s.RevisionOrigin = &o
	}
	return &s, nil
}

func collectSubmissions(rows *sql.Rows) ([]*domain.Submission, error) {
	var out []*domain.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func stageToNullString(s *domain.Stage) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*s), Valid: true}
}
