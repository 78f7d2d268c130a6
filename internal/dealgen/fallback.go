package dealgen

import (
	"strings"

	"github.com/pkordes/smarttravel/internal/domain"
)

// Fallback returns the canned offer used when no candidates could be
// produced for a trip.
func Fallback(trip domain.Trip) domain.Deal {
	dest := strings.TrimSpace(trip.Destination)
	if dest == "" {
		dest = "Bali"
	}
	d := domain.Deal{
		Agent:            "TravelBot Pro",
		Destination:      dest,
		Price:            2899.00,
		OriginalPrice:    3499.00,
		HotelRating:      5,
		ConfirmationTime: "2 min",
		Inclusions:       []string{"5★ Resort", "All Meals", "Spa Package", "Airport Transfer"},
		ImageURL:         defaultImageURL,
		Description:      "Luxury beachfront resort with private villas",
	}
	d.ValueScore = ValueScore(d)
	return d
}
