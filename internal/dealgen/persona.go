package dealgen

// Persona is a simulated travel agent and the template data it uses to
// fabricate an offer.
type Persona struct {
	Name        string
	Specialty   string
	Personality string

	// PriceMultiplier scales the trip's base price.
	PriceMultiplier float64
	// Discount is the advertised markdown; originalPrice = price / (1 - Discount).
	Discount         float64
	HotelRating      int
	ConfirmationTime string

	Inclusions  []string
	Amenities   []string
	Description string // fmt template, %s is the destination
	Greeting    string // fmt template, %s is the destination

	HotelStyle       string
	RoomType         string
	DistanceToCenter string
	Airline          string
	FlightPrefix     string
	OutboundTime     string
	Layovers         []string

	CancellationPolicy string
	PaymentTerms       string
	RefundPolicy       string
	ChangePolicy       string
	Insurance          string
}

var personas = []Persona{
	{
		Name:               "TravelBot Pro",
		Specialty:          "Luxury Travel",
		Personality:        "Sophisticated and detail-oriented",
		PriceMultiplier:    1.15,
		Discount:           0.17,
		HotelRating:        5,
		ConfirmationTime:   "2 min",
		Inclusions:         []string{"5★ Resort", "All Meals", "Spa Package", "Airport Transfer"},
		Amenities:          []string{"Private Pool", "Butler Service", "Spa", "Fine Dining"},
		Description:        "Luxury beachfront escape in %s with private villas",
		Greeting:           "I have secured an exclusive suite in %s with a private transfer and full board.",
		HotelStyle:         "Grand Palace Resort",
		RoomType:           "Private Pool Villa",
		DistanceToCenter:   "2.5 km",
		Airline:            "Emirates",
		FlightPrefix:       "EK",
		OutboundTime:       "09:15",
		Layovers:           []string{},
		CancellationPolicy: "Free cancellation up to 14 days before departure",
		PaymentTerms:       "20% deposit, balance 30 days before departure",
		RefundPolicy:       "Full refund within the free cancellation window",
		ChangePolicy:       "One free date change",
		Insurance:          "Comprehensive travel insurance included",
	},
	{
		Name:               "VoyageAI",
		Specialty:          "Cultural Experiences",
		Personality:        "Knowledgeable and curious",
		PriceMultiplier:    1.0,
		Discount:           0.20,
		HotelRating:        4,
		ConfirmationTime:   "4 min",
		Inclusions:         []string{"4★ Heritage Hotel", "Breakfast", "Guided City Tours", "Museum Passes"},
		Amenities:          []string{"Rooftop Terrace", "Library Lounge", "Free Wi-Fi"},
		Description:        "Heritage stay in %s with guided cultural tours",
		Greeting:           "I found a heritage hotel in %s close to the old town, with guided tours every day.",
		HotelStyle:         "Heritage Inn",
		RoomType:           "Deluxe Double",
		DistanceToCenter:   "0.8 km",
		Airline:            "Air India",
		FlightPrefix:       "AI",
		OutboundTime:       "06:40",
		Layovers:           []string{},
		CancellationPolicy: "Free cancellation up to 7 days before departure",
		PaymentTerms:       "Full payment at booking",
		RefundPolicy:       "80% refund after the free cancellation window",
		ChangePolicy:       "Date changes for a fee",
		Insurance:          "Optional travel insurance available",
	},
	{
		Name:               "JourneyGenie",
		Specialty:          "Adventure Travel",
		Personality:        "Energetic and adventurous",
		PriceMultiplier:    0.9,
		Discount:           0.15,
		HotelRating:        4,
		ConfirmationTime:   "5 min",
		Inclusions:         []string{"Boutique Lodge", "Breakfast", "Trekking Excursion", "Snorkeling Trip"},
		Amenities:          []string{"Gear Storage", "Outdoor Pool", "Yoga Deck"},
		Description:        "Adventure package in %s with outdoor excursions",
		Greeting:           "For %s I lined up a boutique lodge plus two guided outdoor excursions.",
		HotelStyle:         "Trailhead Lodge",
		RoomType:           "Garden View Room",
		DistanceToCenter:   "6 km",
		Airline:            "IndiGo",
		FlightPrefix:       "6E",
		OutboundTime:       "13:05",
		Layovers:           []string{"Mumbai"},
		CancellationPolicy: "Free cancellation up to 10 days before departure",
		PaymentTerms:       "30% deposit, balance 14 days before departure",
		RefundPolicy:       "Deposit is non-refundable",
		ChangePolicy:       "Free changes up to 21 days before departure",
		Insurance:          "Adventure activity cover included",
	},
	{
		Name:               "WanderBot",
		Specialty:          "Budget Travel",
		Personality:        "Practical and thrifty",
		PriceMultiplier:    0.7,
		Discount:           0.30,
		HotelRating:        3,
		ConfirmationTime:   "3 min",
		Inclusions:         []string{"3★ Hotel", "Breakfast", "City Pass"},
		Amenities:          []string{"Free Wi-Fi", "Shared Kitchen"},
		Description:        "Great-value stay in %s without the frills",
		Greeting:           "Best price I could get for %s: a clean central hotel and a city pass.",
		HotelStyle:         "Central Stay",
		RoomType:           "Standard Room",
		DistanceToCenter:   "1.5 km",
		Airline:            "SpiceJet",
		FlightPrefix:       "SG",
		OutboundTime:       "23:50",
		Layovers:           []string{"Chennai"},
		CancellationPolicy: "Non-refundable",
		PaymentTerms:       "Full payment at booking",
		RefundPolicy:       "No refunds",
		ChangePolicy:       "No changes permitted",
		Insurance:          "Not included",
	},
	{
		Name:               "ExploreAI",
		Specialty:          "Unique Experiences",
		Personality:        "Creative and spontaneous",
		PriceMultiplier:    1.05,
		Discount:           0.12,
		HotelRating:        5,
		ConfirmationTime:   "6 min",
		Inclusions:         []string{"Design Hotel", "Breakfast", "Private Cooking Class", "Sunset Cruise"},
		Amenities:          []string{"Art Gallery", "Infinity Pool", "Cocktail Bar"},
		Description:        "One-of-a-kind design hotel in %s with curated experiences",
		Greeting:           "I curated something different for %s: a design hotel and a private sunset cruise.",
		HotelStyle:         "Atelier Hotel",
		RoomType:           "Signature Suite",
		DistanceToCenter:   "3 km",
		Airline:            "Singapore Airlines",
		FlightPrefix:       "SQ",
		OutboundTime:       "11:30",
		Layovers:           []string{"Singapore"},
		CancellationPolicy: "Free cancellation up to 5 days before departure",
		PaymentTerms:       "50% deposit, balance on arrival",
		RefundPolicy:       "Full refund within the free cancellation window",
		ChangePolicy:       "One free change, subject to availability",
		Insurance:          "Basic travel insurance included",
	},
}

// Personas returns the five built-in agent personas in their canonical order.
// The returned slice is a copy and may be modified by the caller.
func Personas() []Persona {
	out := make([]Persona, len(personas))
	copy(out, personas)
	return out
}

// PersonaNames returns the names of the built-in personas.
func PersonaNames() []string {
	names := make([]string, len(personas))
	for i, p := range personas {
		names[i] = p.Name
	}
	return names
}

// FindPersona looks up a built-in persona by name.
func FindPersona(name string) (Persona, bool) {
	for _, p := range personas {
		if p.Name == name {
			return p, true
		}
	}
	return Persona{}, false
}

// ActivePersonas returns the built-in personas whose names are in active,
// preserving canonical order. A nil active list means "no agent registry",
// and every persona is returned.
func ActivePersonas(active []string) []Persona {
	if active == nil {
		return Personas()
	}
	set := make(map[string]struct{}, len(active))
	for _, name := range active {
		set[name] = struct{}{}
	}
	out := make([]Persona, 0, len(active))
	for _, p := range personas {
		if _, ok := set[p.Name]; ok {
			out = append(out, p)
		}
	}
	return out
}
