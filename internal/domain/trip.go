// Package domain contains the core data types for the SmartTravel API.
// It depends only on uuid and the standard library and is imported by every
// other internal package (dealgen, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a single planning request submitted through the trip form.
// A trip is the top-level aggregate; deals and chat logs belong to a trip.
type Trip struct {
	ID            uuid.UUID `json:"id"`
	Destination   string    `json:"destination"`
	Duration      string    `json:"duration"`
	TravelType    string    `json:"travelType"`
	Budget        string    `json:"budget"`
	DepartureDate time.Time `json:"departureDate"`
	ReturnDate    time.Time `json:"returnDate"`
	Email         string    `json:"email,omitempty"` // empty when the user did not ask for mail
	CreatedAt     time.Time `json:"createdAt"`
}

// Nights returns the number of nights between departure and return.
// It never returns less than 1.
func (t Trip) Nights() int {
	n := int(t.ReturnDate.Sub(t.DepartureDate).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}
