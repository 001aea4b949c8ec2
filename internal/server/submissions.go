package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pharma-content-review/backend/internal/sla"
	"pharma-content-review/backend/internal/submission/domain"
)

type submissionResponse struct {
	ID             string          `json:"id"`
	Stage          string          `json:"stage"`
	Version        int64           `json:"version"`
	RevisionOrigin string          `json:"revision_origin,omitempty"`
	Payload        json.RawMessage `json:"payload,omitempty"`
	StageEnteredAt time.Time       `json:"stage_entered_at"`
	CreatedAt      time.Time       `json:"created_at"`
	SLA            *slaResponse    `json:"sla,omitempty"`
}

type slaResponse struct {
	Fraction     float64 `json:"fraction"`
	AllowedHours float64 `json:"allowed_hours"`
	Breached     bool    `json:"breached"`
}

func (s *Server) submissionToResponse(sub *domain.Submission) submissionResponse {
	resp := submissionResponse{
		ID:             sub.ID,
		Stage:          string(sub.Stage),
		Version:        sub.Version,
		Payload:        sub.Payload,
		StageEnteredAt: sub.StageEnteredAt,
		CreatedAt:      sub.CreatedAt,
	}
	if sub.RevisionOrigin != nil {
		resp.RevisionOrigin = string(*sub.RevisionOrigin)
	}
	status := sla.Evaluate(s.durations, sub.Stage, sub.StageEnteredAt, s.now())
	if status.Allowed > 0 {
		resp.SLA = &slaResponse{
			Fraction:     status.Fraction,
			AllowedHours: status.Allowed.Hours(),
			Breached:     status.Breached(),
		}
	}
	return resp
}

type createSubmissionRequest struct {
	Payload json.RawMessage `json:"payload"`
}

// handleCreateSubmission is the intake path: a new submission starts in
// Submitted at version 1 with an opaque payload. Only the engine mutates the
// stage afterwards.
func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req createSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return
	}
	now := s.now()
	sub := &domain.Submission{
		ID:             uuid.New().String(),
		Stage:          domain.StageSubmitted,
		Version:        1,
		Payload:        req.Payload,
		StageEnteredAt: now,
		CreatedAt:      now,
	}
	if err := s.subs.Create(r.Context(), sub); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", "failed to create submission")
		return
	}
	writeJSON(w, http.StatusCreated, s.submissionToResponse(sub))
}

// handleGetSubmission returns a submission with its current SLA status.
func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sub, err := s.subs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", "failed to load submission")
		return
	}
	if sub == nil {
		writeError(w, http.StatusNotFound, "not_found", "submission not found")
		return
	}
	writeJSON(w, http.StatusOK, s.submissionToResponse(sub))
}

// handleListSubmissions returns submissions, optionally filtered by stage.
func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	var stage domain.Stage
	if raw := r.URL.Query().Get("stage"); raw != "" {
		parsed, err := domain.ParseStage(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		stage = parsed
	}
	limit, offset := pagination(r, 50)
	subs, err := s.subs.ListByStage(r.Context(), stage, limit, offset)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", "failed to list submissions")
		return
	}
	out := make([]submissionResponse, len(subs))
	for i, sub := range subs {
		out[i] = s.submissionToResponse(sub)
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": out})
}

func pagination(r *http.Request, defaultLimit int32) (limit, offset int32) {
	limit = defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil && n > 0 && n <= 500 {
			limit = int32(n)
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil && n >= 0 {
			offset = int32(n)
		}
	}
	return limit, offset
}
