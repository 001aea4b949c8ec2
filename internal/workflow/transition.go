package workflow

import (
	"pharma-content-review/backend/internal/submission/domain"
)

type transitionKey struct {
	stage   domain.Stage
	outcome Outcome
}

// transitions is the authoritative map of legal moves. Any (stage, outcome)
// pair absent here is an illegal transition. Revision_Requested's advance
// target is the recorded origin stage, resolved in NextStage.
var transitions = map[transitionKey]domain.Stage{
	{domain.StageSubmitted, OutcomeAdvance}:    domain.StageAIProcessing,
	{domain.StageSubmitted, OutcomeReject}:     domain.StageRejected,
	{domain.StageAIProcessing, OutcomeAdvance}: domain.StageSEOReview,
	{domain.StageAIProcessing, OutcomeReject}:  domain.StageRejected,

	{domain.StageSEOReview, OutcomeAdvance}:         domain.StageClientReview,
	{domain.StageSEOReview, OutcomeRequestRevision}: domain.StageRevisionRequested,
	{domain.StageSEOReview, OutcomeReject}:          domain.StageRejected,

	{domain.StageClientReview, OutcomeAdvance}:         domain.StageMLRReview,
	{domain.StageClientReview, OutcomeRequestRevision}: domain.StageRevisionRequested,
	{domain.StageClientReview, OutcomeReject}:          domain.StageRejected,

	{domain.StageMLRReview, OutcomeAdvance}:         domain.StagePublished,
	{domain.StageMLRReview, OutcomeRequestRevision}: domain.StageRevisionRequested,
	{domain.StageMLRReview, OutcomeReject}:          domain.StageRejected,

	{domain.StageRevisionRequested, OutcomeAdvance}: "", // resolved from origin
	{domain.StageRevisionRequested, OutcomeReject}:  domain.StageRejected,
}

// NextStage resolves the legal next stage for the submission and outcome,
// along with the revision origin to persist with it. Re-submitting a revision
// returns to the stage that requested it, not to the start of the pipeline.
// Returns ErrInvalidTransition when the pair is not in the table, or when a
// Revision_Requested submission has no recorded origin.
func NextStage(s *domain.Submission, outcome Outcome) (domain.Stage, *domain.Stage, error) {
	next, ok := transitions[transitionKey{s.Stage, outcome}]
	if !ok {
		return "", nil, ErrInvalidTransition
	}
	if s.Stage == domain.StageRevisionRequested && outcome == OutcomeAdvance {
		if s.RevisionOrigin == nil {
			return "", nil, ErrInvalidTransition
		}
		return *s.RevisionOrigin, nil, nil
	}
	if next == domain.StageRevisionRequested {
		origin := s.Stage
		return next, &origin, nil
	}
	return next, nil, nil
}
