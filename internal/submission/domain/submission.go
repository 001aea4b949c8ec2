// Package domain defines the submission record and the canonical workflow stages.
package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Stage is one state in the submission approval pipeline.
type Stage string

// Canonical workflow stages. These are the only values that may appear in
// submissions.stage; the source system's lowercase variants are a migration
// concern handled outside the engine.
const (
	StageSubmitted         Stage = "Submitted"
	StageAIProcessing      Stage = "AI_Processing"
	StageSEOReview         Stage = "SEO_Review"
	StageClientReview      Stage = "Client_Review"
	StageMLRReview         Stage = "MLR_Review"
	StageRevisionRequested Stage = "Revision_Requested"
	StagePublished         Stage = "Published"
	StageRejected          Stage = "Rejected"
)

// ParseStage returns the Stage for s, or an error if s is not a canonical stage name.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageSubmitted, StageAIProcessing, StageSEOReview, StageClientReview,
		StageMLRReview, StageRevisionRequested, StagePublished, StageRejected:
		return Stage(s), nil
	}
	return "", fmt.Errorf("unknown workflow stage %q", s)
}

// Terminal reports whether the stage has no outgoing transitions.
func (s Stage) Terminal() bool {
	return s == StagePublished || s == StageRejected
}

// String returns the canonical stage name.
func (s Stage) String() string { return string(s) }

// Submission is the unit of work moving through the review pipeline.
// Stage and Version are mutated only by the workflow engine, through the
// repository's compare-and-swap; Payload is opaque content the engine
// forwards but never interprets.
type Submission struct {
	ID      string
	Stage   Stage
	Version int64
	// RevisionOrigin is the stage that requested the revision; set only while
	// Stage is Revision_Requested.
	RevisionOrigin *Stage
	Payload        json.RawMessage
	StageEnteredAt time.Time
	CreatedAt      time.Time
}
