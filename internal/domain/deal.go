package domain

import (
	"time"

	"github.com/google/uuid"
)

// Deal is a synthesized travel offer kept for a trip.
// Only the top-ranked offers of a planning run are persisted as deals.
// The detail blobs are optional and stored as JSON.
type Deal struct {
	ID                   uuid.UUID             `json:"id"`
	TripID               *uuid.UUID            `json:"tripId,omitempty"`
	Agent                string                `json:"agent"`
	Destination          string                `json:"destination"`
	Price                float64               `json:"price"`
	OriginalPrice        float64               `json:"originalPrice"`
	HotelRating          int                   `json:"hotelRating"`
	ConfirmationTime     string                `json:"confirmationTime"`
	Inclusions           []string              `json:"inclusions"`
	ImageURL             string                `json:"imageUrl"`
	Description          string                `json:"description"`
	ValueScore           float64               `json:"valueScore"`
	FlightDetails        *FlightDetails        `json:"flightDetails,omitempty"`
	AccommodationDetails *AccommodationDetails `json:"accommodationDetails,omitempty"`
	InclusionsBreakdown  map[string]string     `json:"inclusionsBreakdown,omitempty"`
	LocationInfo         *LocationInfo         `json:"locationInfo,omitempty"`
	BookingTerms         *BookingTerms         `json:"bookingTerms,omitempty"`
	CreatedAt            time.Time             `json:"createdAt"`
}

// FlightDetails describes the outbound and return legs of a package.
type FlightDetails struct {
	Outbound FlightLeg `json:"outbound"`
	Return   FlightLeg `json:"return"`
}

// FlightLeg is one direction of travel.
type FlightLeg struct {
	Airline      string         `json:"airline"`
	FlightNumber string         `json:"flightNumber"`
	Departure    FlightEndpoint `json:"departure"`
	Arrival      FlightEndpoint `json:"arrival"`
	Duration     string         `json:"duration"`
	Layovers     []string       `json:"layovers"`
}

// FlightEndpoint is an airport with a local time and date.
type FlightEndpoint struct {
	Airport string `json:"airport"`
	Time    string `json:"time"`
	Date    string `json:"date"`
}

// AccommodationDetails describes the hotel included in a package.
type AccommodationDetails struct {
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	RoomType         string   `json:"roomType"`
	CheckIn          string   `json:"checkIn"`
	CheckOut         string   `json:"checkOut"`
	Amenities        []string `json:"amenities"`
	Rating           int      `json:"rating"`
	DistanceToCenter string   `json:"distanceToCenter"`
}

// LocationInfo describes where the accommodation sits.
type LocationInfo struct {
	Area              string   `json:"area"`
	District          string   `json:"district"`
	NearbyAttractions []string `json:"nearbyAttractions"`
	LocalTransport    string   `json:"localTransport"`
}

// BookingTerms are the commercial conditions attached to a deal.
type BookingTerms struct {
	CancellationPolicy string `json:"cancellationPolicy"`
	PaymentTerms       string `json:"paymentTerms"`
	BookingDeadline    string `json:"bookingDeadline"`
	RefundPolicy       string `json:"refundPolicy"`
	ChangePolicy       string `json:"changePolicy"`
	Insurance          string `json:"insurance"`
}

// SavingsPercent returns the discount of the deal as a whole-number-friendly
// percentage. Zero when OriginalPrice is not positive.
func (d Deal) SavingsPercent() float64 {
	if d.OriginalPrice <= 0 {
		return 0
	}
	return (d.OriginalPrice - d.Price) / d.OriginalPrice * 100
}
