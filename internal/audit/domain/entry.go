package domain

import (
	"encoding/json"
	"time"
)

// AttemptOutcome classifies what happened to a transition attempt.
type AttemptOutcome string

const (
	// OutcomeSuccess: the compare-and-swap committed and the stage changed.
	OutcomeSuccess AttemptOutcome = "success"
	// OutcomeRejectedByValidator: the decision payload failed its stage gate.
	OutcomeRejectedByValidator AttemptOutcome = "rejected-by-validator"
	// OutcomeConflict: the submitted version was stale.
	OutcomeConflict AttemptOutcome = "conflict"
	// OutcomeError: the (stage, outcome) pair was not a legal transition.
	OutcomeError AttemptOutcome = "error"
)

// Entry is one immutable audit record. Exactly one entry is written per
// transition attempt, successful or not; entries are never updated or
// deleted. ID is client-generated so retried appends dedupe.
type Entry struct {
	ID              string
	SubmissionID    string
	FromStage       string
	ToStage         string
	Actor           string
	Timestamp       time.Time
	Outcome         AttemptOutcome
	PayloadSnapshot json.RawMessage
	ErrorMessage    string
}
