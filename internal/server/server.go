// Package server exposes the review engine over HTTP: decision submission,
// submission reads with SLA status, and the per-submission audit trail.
package server

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	auditrepo "pharma-content-review/backend/internal/audit/repository"
	"pharma-content-review/backend/internal/sla"
	submissionrepo "pharma-content-review/backend/internal/submission/repository"
	"pharma-content-review/backend/internal/workflow"
)

// Pinger checks a dependency for readiness (e.g. *sql.DB).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server holds handler dependencies.
type Server struct {
	engine    *workflow.Engine
	subs      submissionrepo.Repository
	auditRepo auditrepo.Repository
	durations sla.Durations
	pinger    Pinger
	now       func() time.Time
}

// New returns a Server. pinger may be nil; then readiness skips the DB check.
// A nil now defaults to time.Now.
func New(engine *workflow.Engine, subs submissionrepo.Repository, auditRepo auditrepo.Repository, durations sla.Durations, pinger Pinger, now func() time.Time) *Server {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Server{
		engine:    engine,
		subs:      subs,
		auditRepo: auditRepo,
		durations: durations,
		pinger:    pinger,
		now:       now,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1/submissions", func(r chi.Router) {
		r.Post("/", s.handleCreateSubmission)
		r.Get("/", s.handleListSubmissions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSubmission)
			r.Post("/decisions", s.handleSubmitDecision)
			r.Get("/audit", s.handleListAudit)
		})
	})

	return r
}
