// Package workflow implements the submission review pipeline: the transition
// table of legal moves, per-stage decision gates, and the engine that applies
// reviewer decisions with optimistic concurrency and an audit trail.
package workflow

import (
	"encoding/json"
	"fmt"

	"pharma-content-review/backend/internal/submission/domain"
)

// Outcome is the category of a reviewer's decision.
type Outcome string

const (
	OutcomeAdvance         Outcome = "advance"
	OutcomeRequestRevision Outcome = "request-revision"
	OutcomeReject          Outcome = "reject"
)

// ParseOutcome returns the Outcome for s, or an error for unknown values.
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomeAdvance, OutcomeRequestRevision, OutcomeReject:
		return Outcome(s), nil
	}
	return "", fmt.Errorf("unknown decision outcome %q", s)
}

// Decision is a reviewer's attempt to move a submission forward or back.
// It is ephemeral input to the engine; only the resulting audit entry is kept.
type Decision struct {
	SubmissionID string
	// SubmittedVersion is the version the reviewer believed was current.
	SubmittedVersion int64
	// Stage is the stage the decision is being made in.
	Stage   domain.Stage
	Outcome Outcome
	ActorID string
	Payload StagePayload
}

// StagePayload is the stage-specific decision payload. Concrete types carry
// the checklist fields the validator gates on; stages without a form use
// EmptyPayload.
type StagePayload interface {
	payloadStage() domain.Stage
}

// SEOReviewPayload carries the SEO reviewer's per-asset approval flags.
type SEOReviewPayload struct {
	TitleApproved           bool   `json:"title_approved"`
	MetaDescriptionApproved bool   `json:"meta_description_approved"`
	KeywordsApproved        bool   `json:"keywords_approved"`
	HeadingTagsApproved     bool   `json:"heading_tags_approved"`
	Notes                   string `json:"notes,omitempty"`
}

func (SEOReviewPayload) payloadStage() domain.Stage { return domain.StageSEOReview }

// ClientReviewPayload carries the brand/commercial assessment.
type ClientReviewPayload struct {
	BrandAlignment string `json:"brand_alignment"`
	TargetAudience string `json:"target_audience"`
	ROIConfidence  string `json:"roi_confidence"`
	Notes          string `json:"notes,omitempty"`
}

func (ClientReviewPayload) payloadStage() domain.Stage { return domain.StageClientReview }

// MLRChecklist is the medical-legal-regulatory compliance checklist. Every
// item must be true before content can advance past MLR review.
type MLRChecklist struct {
	MedicalAccuracy    bool `json:"medical_accuracy"`
	FairBalance        bool `json:"fair_balance"`
	SafetyInfo         bool `json:"safety_info"`
	FDAGuidelines      bool `json:"fda_guidelines"`
	OffLabelPromotion  bool `json:"off_label_promotion"`
	Disclaimers        bool `json:"disclaimers"`
}

// Complete reports whether every checklist item is checked.
func (c MLRChecklist) Complete() bool {
	return c.MedicalAccuracy && c.FairBalance && c.SafetyInfo &&
		c.FDAGuidelines && c.OffLabelPromotion && c.Disclaimers
}

// MLRReviewPayload carries the compliance checklist and risk assessment.
type MLRReviewPayload struct {
	Checklist      MLRChecklist `json:"checklist"`
	RiskAssessment string       `json:"risk_assessment"` // low, medium, high
	Notes          string       `json:"notes,omitempty"`
}

func (MLRReviewPayload) payloadStage() domain.Stage { return domain.StageMLRReview }

// EmptyPayload is used for stages with no decision form.
type EmptyPayload struct{}

func (EmptyPayload) payloadStage() domain.Stage { return "" }

// DecodePayload parses raw JSON into the payload type for the given stage.
// Stages without a payload contract accept anything (including nothing).
func DecodePayload(stage domain.Stage, raw json.RawMessage) (StagePayload, error) {
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	switch stage {
	case domain.StageSEOReview:
		var p SEOReviewPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode SEO review payload: %w", err)
		}
		return p, nil
	case domain.StageClientReview:
		var p ClientReviewPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode client review payload: %w", err)
		}
		return p, nil
	case domain.StageMLRReview:
		var p MLRReviewPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode MLR review payload: %w", err)
		}
		return p, nil
	default:
		return EmptyPayload{}, nil
	}
}

// SnapshotPayload serializes the payload for the audit trail. Returns nil for
// empty payloads.
func SnapshotPayload(p StagePayload) json.RawMessage {
	if p == nil {
		return nil
	}
	if _, ok := p.(EmptyPayload); ok {
		return nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	return b
}
