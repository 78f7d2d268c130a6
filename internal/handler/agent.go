package handler

import (
	"net/http"

	"github.com/pkordes/smarttravel/internal/service"
)

// updateAgentRequest is the body of PATCH /api/agents/{id}.
// isActive is the only mutable field.
type updateAgentRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// listAgents handles GET /api/agents.
func (s *Server) listAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := s.agents.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(agents))
}

// updateAgent handles PATCH /api/agents/{id}.
func (s *Server) updateAgent(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	var body updateAgentRequest
	if err := s.decodeBody(r, &body); err != nil {
		writeRequestError(w, err)
		return
	}

	agent, err := s.agents.Update(r.Context(), id, service.AgentUpdate{IsActive: body.IsActive})
	if err != nil {
		s.writeServiceError(w, r, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

// getAnalytics handles GET /api/analytics.
func (s *Server) getAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := s.agents.Analytics(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, a)
}
