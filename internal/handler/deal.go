package handler

import (
	"net/http"
)

type emailDealRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// listDeals handles GET /api/deals.
func (s *Server) listDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := s.deals.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(deals))
}

// getDeal handles GET /api/deals/{id}.
func (s *Server) getDeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	deal, err := s.deals.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "deal not found")
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

// saveDeal handles POST /api/deals/{id}/save.
func (s *Server) saveDeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	msg, err := s.deals.Save(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "deal not found")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// emailDeal handles POST /api/deals/{id}/email.
// A delivery failure still answers 200 with sent=false.
func (s *Server) emailDeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	var body emailDealRequest
	if err := s.decodeBody(r, &body); err != nil {
		writeRequestError(w, err)
		return
	}

	res, err := s.deals.Email(r.Context(), id, body.Email)
	if err != nil {
		s.writeServiceError(w, r, err, "deal not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// bookDeal handles POST /api/deals/{id}/book.
func (s *Server) bookDeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	booking, err := s.deals.Book(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "deal not found")
		return
	}
	writeJSON(w, http.StatusOK, booking)
}
