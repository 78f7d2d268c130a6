package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chatLogsByTrip handles GET /api/chat-logs/trip/{tripId}.
func (s *Server) chatLogsByTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	logs, err := s.chatLogs.ByTrip(r.Context(), tripID)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(logs))
}

// chatLogsByAgent handles GET /api/chat-logs/agent/{agent}.
// Agent names contain spaces, so the path segment arrives URL-encoded.
func (s *Server) chatLogsByAgent(w http.ResponseWriter, r *http.Request) {
	logs, err := s.chatLogs.ByAgent(r.Context(), chi.URLParam(r, "agent"))
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(logs))
}
