package handlers

import "net/http"

// handleHealth reports connectivity to the database, the storage bucket and
// the host metadata service. It always answers 200 with whatever statuses
// were gathered.
// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	for service, status := range report {
		s.logger.Info(r.Context(), "health check", "service", service, "status", status)
	}

	s.writeJSON(w, r, http.StatusOK, report)
}
