package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	auditdomain "pharma-content-review/backend/internal/audit/domain"
)

type auditEntryResponse struct {
	ID              string          `json:"id"`
	SubmissionID    string          `json:"submission_id"`
	FromStage       string          `json:"from_stage"`
	ToStage         string          `json:"to_stage"`
	Actor           string          `json:"actor"`
	Timestamp       time.Time       `json:"timestamp"`
	Outcome         string          `json:"outcome"`
	PayloadSnapshot json.RawMessage `json:"payload_snapshot,omitempty"`
	ErrorMessage    string          `json:"error_message,omitempty"`
}

// handleListAudit returns the submission's audit trail in append order. This
// is the read-only poll surface for the audit UI; the engine is the sole
// writer.
func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	limit, offset := pagination(r, 100)
	entries, err := s.auditRepo.ListBySubmission(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", "failed to list audit entries")
		return
	}
	out := make([]auditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = auditEntryToResponse(e)
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": out})
}

func auditEntryToResponse(e *auditdomain.Entry) auditEntryResponse {
	return auditEntryResponse{
		ID:              e.ID,
		SubmissionID:    e.SubmissionID,
		FromStage:       e.FromStage,
		ToStage:         e.ToStage,
		Actor:           e.Actor,
		Timestamp:       e.Timestamp,
		Outcome:         string(e.Outcome),
		PayloadSnapshot: e.PayloadSnapshot,
		ErrorMessage:    e.ErrorMessage,
	}
}
