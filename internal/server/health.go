package server

import (
	"net/http"
)

// handleHealth reports liveness plus DB readiness when a pinger is wired.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	code := http.StatusOK
	if s.pinger != nil {
		if err := s.pinger.PingContext(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
			code = http.StatusServiceUnavailable
		} else {
			status["database"] = "ok"
		}
	}
	writeJSON(w, code, status)
}
