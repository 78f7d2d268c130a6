package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/smarttravel/internal/domain"
)

// createTripRequest is the body of POST /api/trips.
// Date ordering and whitespace-only strings are checked by the service.
type createTripRequest struct {
	Destination   string             `json:"destination" validate:"required"`
	Duration      string             `json:"duration" validate:"required"`
	TravelType    string             `json:"travelType" validate:"required"`
	Budget        string             `json:"budget" validate:"required"`
	DepartureDate openapi_types.Date `json:"departureDate"`
	ReturnDate    openapi_types.Date `json:"returnDate"`
	Email         string             `json:"email,omitempty" validate:"omitempty,email"`
}

type tripResponse struct {
	ID            uuid.UUID          `json:"id"`
	Destination   string             `json:"destination"`
	Duration      string             `json:"duration"`
	TravelType    string             `json:"travelType"`
	Budget        string             `json:"budget"`
	DepartureDate openapi_types.Date `json:"departureDate"`
	ReturnDate    openapi_types.Date `json:"returnDate"`
	Email         string             `json:"email,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

type planResponse struct {
	Trip  tripResponse  `json:"trip"`
	Deals []domain.Deal `json:"deals"`
}

type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type tripListResponse struct {
	Data       []tripResponse `json:"data"`
	Pagination pagination     `json:"pagination"`
}

// createTrip handles POST /api/trips.
// It plans the trip and answers with the trip and its top-ranked deals.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var body createTripRequest
	if err := s.decodeBody(r, &body); err != nil {
		writeRequestError(w, err)
		return
	}

	trip, deals, err := s.trips.Plan(r.Context(), requestToTrip(body))
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, planResponse{
		Trip:  tripToResponse(trip),
		Deals: nonNil(deals),
	})
}

// listTrips handles GET /api/trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	params, err := pageParams(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	page, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	data := make([]tripResponse, len(page.Items))
	for i, t := range page.Items {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, tripListResponse{
		Data: data,
		Pagination: pagination{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: page.TotalPages(),
		},
	})
}

// getTrip handles GET /api/trips/{id}.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeRequestError(w, err)
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// listTripDeals handles GET /api/trips/{id}/deals.
func (s *Server) listTripDeals(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeRequestError(w, err)
		return
	}

	deals, err := s.trips.Deals(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(deals))
}

// --- mapping helpers --------------------------------------------------------

func requestToTrip(body createTripRequest) domain.Trip {
	return domain.Trip{
		Destination:   body.Destination,
		Duration:      body.Duration,
		TravelType:    body.TravelType,
		Budget:        body.Budget,
		DepartureDate: body.DepartureDate.Time,
		ReturnDate:    body.ReturnDate.Time,
		Email:         body.Email,
	}
}

func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:            t.ID,
		Destination:   t.Destination,
		Duration:      t.Duration,
		TravelType:    t.TravelType,
		Budget:        t.Budget,
		DepartureDate: openapi_types.Date{Time: t.DepartureDate},
		ReturnDate:    openapi_types.Date{Time: t.ReturnDate},
		Email:         t.Email,
		CreatedAt:     t.CreatedAt,
	}
}
