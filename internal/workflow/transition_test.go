package workflow

import (
	"errors"
	"testing"

	"pharma-content-review/backend/internal/submission/domain"
)

func TestNextStagePipelineWalk(t *testing.T) {
	tests := []struct {
		stage   domain.Stage
		outcome Outcome
		want    domain.Stage
	}{
		{domain.StageSubmitted, OutcomeAdvance, domain.StageAIProcessing},
		{domain.StageSubmitted, OutcomeReject, domain.StageRejected},
		{domain.StageAIProcessing, OutcomeAdvance, domain.StageSEOReview},
		{domain.StageAIProcessing, OutcomeReject, domain.StageRejected},
		{domain.StageSEOReview, OutcomeAdvance, domain.StageClientReview},
		{domain.StageSEOReview, OutcomeRequestRevision, domain.StageRevisionRequested},
		{domain.StageSEOReview, OutcomeReject, domain.StageRejected},
		{domain.StageClientReview, OutcomeAdvance, domain.StageMLRReview},
		{domain.StageClientReview, OutcomeRequestRevision, domain.StageRevisionRequested},
		{domain.StageClientReview, OutcomeReject, domain.StageRejected},
		{domain.StageMLRReview, OutcomeAdvance, domain.StagePublished},
		{domain.StageMLRReview, OutcomeRequestRevision, domain.StageRevisionRequested},
		{domain.StageMLRReview, OutcomeReject, domain.StageRejected},
		{domain.StageRevisionRequested, OutcomeReject, domain.StageRejected},
	}
	for _, tt := range tests {
		sub := &domain.Submission{Stage: tt.stage}
		got, _, err := NextStage(sub, tt.outcome)
		if err != nil {
			t.Errorf("NextStage(%s, %s) error: %v", tt.stage, tt.outcome, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NextStage(%s, %s) = %s, want %s", tt.stage, tt.outcome, got, tt.want)
		}
	}
}

func TestNextStageIllegalPairs(t *testing.T) {
	tests := []struct {
		stage   domain.Stage
		outcome Outcome
	}{
		{domain.StagePublished, OutcomeAdvance},
		{domain.StagePublished, OutcomeReject},
		{domain.StagePublished, OutcomeRequestRevision},
		{domain.StageRejected, OutcomeAdvance},
		{domain.StageRejected, OutcomeReject},
		{domain.StageSubmitted, OutcomeRequestRevision},
		{domain.StageAIProcessing, OutcomeRequestRevision},
		{domain.StageRevisionRequested, OutcomeRequestRevision},
	}
	for _, tt := range tests {
		sub := &domain.Submission{Stage: tt.stage}
		if _, _, err := NextStage(sub, tt.outcome); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("NextStage(%s, %s) = %v, want ErrInvalidTransition", tt.stage, tt.outcome, err)
		}
	}
}

func TestNextStageRevisionReturnsToOrigin(t *testing.T) {
	for _, origin := range []domain.Stage{domain.StageSEOReview, domain.StageClientReview, domain.StageMLRReview} {
		o := origin
		sub := &domain.Submission{Stage: domain.StageRevisionRequested, RevisionOrigin: &o}
		got, newOrigin, err := NextStage(sub, OutcomeAdvance)
		if err != nil {
			t.Fatalf("NextStage(Revision_Requested from %s) error: %v", origin, err)
		}
		if got != origin {
			t.Errorf("re-submission returned to %s, want %s", got, origin)
		}
		if newOrigin != nil {
			t.Errorf("origin should clear on re-entry, got %s", *newOrigin)
		}
	}
}

func TestNextStageRevisionWithoutOrigin(t *testing.T) {
	sub := &domain.Submission{Stage: domain.StageRevisionRequested}
	if _, _, err := NextStage(sub, OutcomeAdvance); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("NextStage without origin = %v, want ErrInvalidTransition", err)
	}
}

func TestNextStageIntoRevisionRecordsOrigin(t *testing.T) {
	sub := &domain.Submission{Stage: domain.StageClientReview}
	next, origin, err := NextStage(sub, OutcomeRequestRevision)
	if err != nil {
		t.Fatalf("NextStage error: %v", err)
	}
	if next != domain.StageRevisionRequested {
		t.Errorf("next = %s, want Revision_Requested", next)
	}
	if origin == nil || *origin != domain.StageClientReview {
		t.Errorf("origin = %v, want Client_Review", origin)
	}
}
