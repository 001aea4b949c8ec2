package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pharma-content-review/backend/internal/submission/domain"
	"pharma-content-review/backend/internal/workflow"
)

type decisionRequest struct {
	SubmittedVersion int64           `json:"submitted_version"`
	Stage            string          `json:"stage"`
	Outcome          string          `json:"outcome"`
	ActorID          string          `json:"actor_id"`
	Payload          json.RawMessage `json:"payload"`
}

// handleSubmitDecision applies a reviewer decision through the engine and
// returns the authoritative updated submission. Callers must render from the
// response, never from an optimistic local copy.
func (s *Server) handleSubmitDecision(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return
	}
	if req.ActorID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "actor_id is required")
		return
	}
	stage, err := domain.ParseStage(req.Stage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	outcome, err := workflow.ParseOutcome(req.Outcome)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	payload, err := workflow.DecodePayload(stage, req.Payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	sub, err := s.engine.Submit(r.Context(), workflow.Decision{
		SubmissionID:     id,
		SubmittedVersion: req.SubmittedVersion,
		Stage:            stage,
		Outcome:          outcome,
		ActorID:          req.ActorID,
		Payload:          payload,
	})
	if err != nil {
		s.writeDecisionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.submissionToResponse(sub))
}

// writeDecisionError maps engine errors to HTTP statuses. Validation and
// invalid-transition failures are kept distinct: the first means an
// incomplete form, the second a client bug or stale UI.
func (s *Server) writeDecisionError(w http.ResponseWriter, err error) {
	var verr *workflow.ValidationError
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "submission not found")
	case errors.Is(err, workflow.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", "submission changed since it was read; re-read and re-decide")
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:         "validation_incomplete",
			Message:       verr.Error(),
			MissingFields: verr.Missing,
		})
	case errors.Is(err, workflow.ErrInvalidTransition):
		writeError(w, http.StatusBadRequest, "invalid_transition", err.Error())
	default:
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", "submission store unavailable")
	}
}
