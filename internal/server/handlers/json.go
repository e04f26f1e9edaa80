package handlers

import (
	"encoding/json"
	"net/http"
)

// writeJSON sends a JSON response with the given status code and data.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error(r.Context(), "write JSON response", "error", err)
	}
}

// writeMessage answers 200 with a user-visible message, the inline-error
// shape used by the form endpoints.
func (s *Server) writeMessage(w http.ResponseWriter, r *http.Request, message string) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"message": message})
}
