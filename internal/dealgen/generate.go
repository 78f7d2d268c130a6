package dealgen

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/smarttravel/internal/domain"
)

const (
	priceJitter    = 0.05 // ±5% of the computed price
	discountJitter = 0.02 // ±2 percentage points of the persona discount
	layoverHours   = 2.0
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04"
)

// SeedFor returns a generator seeded from a trip id, so that generating
// twice for the same trip produces identical offers.
func SeedFor(id uuid.UUID) *rand.Rand {
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])
	return rand.New(rand.NewPCG(hi, lo))
}

// Generate synthesizes one offer per persona for the trip, in persona order.
// The returned deals are unscored; pass them to Rank.
func Generate(trip domain.Trip, personas []Persona, rng *rand.Rand) []domain.Deal {
	dest := lookupDestination(trip.Destination)
	base := lookupBudget(trip.Budget) *
		lookupDuration(trip.Duration) *
		lookupTravelType(trip.TravelType) *
		dest.CostIndex

	deals := make([]domain.Deal, 0, len(personas))
	for _, p := range personas {
		price := round2(base * p.PriceMultiplier * (1 + jitter(rng, priceJitter)))
		discount := clamp(p.Discount+jitter(rng, discountJitter), 0.01, 0.9)
		flightNo := 100 + rng.IntN(900)

		deals = append(deals, domain.Deal{
			Agent:                p.Name,
			Destination:          dest.Name,
			Price:                price,
			OriginalPrice:        round2(price / (1 - discount)),
			HotelRating:          p.HotelRating,
			ConfirmationTime:     p.ConfirmationTime,
			Inclusions:           append([]string(nil), p.Inclusions...),
			ImageURL:             dest.ImageURL,
			Description:          fmt.Sprintf(p.Description, dest.Name),
			FlightDetails:        flightDetails(trip, p, dest, flightNo),
			AccommodationDetails: accommodation(trip, p, dest),
			InclusionsBreakdown:  breakdown(trip, p),
			LocationInfo: &domain.LocationInfo{
				Area:              dest.Area,
				District:          dest.District,
				NearbyAttractions: append([]string(nil), dest.Attractions...),
				LocalTransport:    dest.Transport,
			},
			BookingTerms: &domain.BookingTerms{
				CancellationPolicy: p.CancellationPolicy,
				PaymentTerms:       p.PaymentTerms,
				BookingDeadline:    trip.DepartureDate.AddDate(0, 0, -3).Format(dateLayout),
				RefundPolicy:       p.RefundPolicy,
				ChangePolicy:       p.ChangePolicy,
				Insurance:          p.Insurance,
			},
		})
	}
	return deals
}

func flightDetails(trip domain.Trip, p Persona, dest destination, flightNo int) *domain.FlightDetails {
	hours := dest.FlightHours + layoverHours*float64(len(p.Layovers))
	outDepart := atClock(trip.DepartureDate, p.OutboundTime)
	retDepart := atClock(trip.ReturnDate, "10:00")

	reversed := make([]string, len(p.Layovers))
	for i, l := range p.Layovers {
		reversed[len(p.Layovers)-1-i] = l
	}

	return &domain.FlightDetails{
		Outbound: flightLeg(p, fmt.Sprintf("%s %d", p.FlightPrefix, flightNo),
			originAirport, dest.Airport, outDepart, hours, p.Layovers),
		Return: flightLeg(p, fmt.Sprintf("%s %d", p.FlightPrefix, flightNo+1),
			dest.Airport, originAirport, retDepart, hours, reversed),
	}
}

func flightLeg(p Persona, number, from, to string, depart time.Time, hours float64, layovers []string) domain.FlightLeg {
	d := time.Duration(hours * float64(time.Hour))
	arrive := depart.Add(d)
	return domain.FlightLeg{
		Airline:      p.Airline,
		FlightNumber: number,
		Departure:    domain.FlightEndpoint{Airport: from, Time: depart.Format(clockLayout), Date: depart.Format(dateLayout)},
		Arrival:      domain.FlightEndpoint{Airport: to, Time: arrive.Format(clockLayout), Date: arrive.Format(dateLayout)},
		Duration:     formatDuration(d),
		Layovers:     append([]string{}, layovers...),
	}
}

func accommodation(trip domain.Trip, p Persona, dest destination) *domain.AccommodationDetails {
	return &domain.AccommodationDetails{
		Name:             dest.Name + " " + p.HotelStyle,
		Address:          fmt.Sprintf("%s, %s, %s", dest.Area, dest.District, dest.Name),
		RoomType:         p.RoomType,
		CheckIn:          trip.DepartureDate.Format(dateLayout) + " 14:00",
		CheckOut:         trip.ReturnDate.Format(dateLayout) + " 11:00",
		Amenities:        append([]string(nil), p.Amenities...),
		Rating:           p.HotelRating,
		DistanceToCenter: p.DistanceToCenter,
	}
}

func breakdown(trip domain.Trip, p Persona) map[string]string {
	nights := trip.Nights()
	out := make(map[string]string, len(p.Inclusions))
	for i, inc := range p.Inclusions {
		if i == 0 {
			out[inc] = fmt.Sprintf("%d nights in a %s", nights, p.RoomType)
			continue
		}
		out[inc] = fmt.Sprintf("Included for the full %d-night stay", nights)
	}
	return out
}

// atClock returns the calendar day of t at the given "15:04" time, in UTC.
func atClock(t time.Time, clock string) time.Time {
	c, err := time.Parse(clockLayout, clock)
	if err != nil {
		c = time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, time.UTC)
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// jitter returns a uniform value in [-spread, spread).
func jitter(rng *rand.Rand, spread float64) float64 {
	return (rng.Float64()*2 - 1) * spread
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
