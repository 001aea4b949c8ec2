package workflow

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the workflow engine; handlers map them to HTTP codes.
var (
	// ErrNotFound means the submission does not exist.
	ErrNotFound = errors.New("submission not found")
	// ErrConflict means the submitted version is stale: another decision won
	// the race. The caller must re-read and re-decide; the engine never
	// retries on its behalf.
	ErrConflict = errors.New("submission version conflict")
	// ErrInvalidTransition means the (stage, outcome) pair is not in the
	// transition table. This indicates a client bug or stale UI, not an
	// incomplete form.
	ErrInvalidTransition = errors.New("invalid workflow transition")
	// ErrStoreUnavailable means the submission store could not be reached;
	// no transition was attempted and nothing is audited.
	ErrStoreUnavailable = errors.New("submission store unavailable")
)

// ValidationError reports an incomplete decision payload. Missing holds
// field identifiers (e.g. "seo.title_approved") surfaced verbatim to the
// caller so it can prompt for exactly what's missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("decision payload incomplete: missing %s", strings.Join(e.Missing, ", "))
}

// Is makes errors.Is(err, &ValidationError{}) match any validation error.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}
