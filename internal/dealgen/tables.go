package dealgen

import "strings"

// Base package prices in INR for a one-week trip, by budget tier.
var budgetBase = map[string]float64{
	"budget":       80000,
	"mid-range":    200000,
	"luxury":       400000,
	"ultra-luxury": 900000,
}

var durationMultiplier = map[string]float64{
	"3-5 days": 0.6,
	"1 week":   1.0,
	"2 weeks":  1.8,
	"1 month":  3.2,
	"custom":   1.0,
}

var travelTypeMultiplier = map[string]float64{
	"honeymoon": 1.1,
	"solo":      0.8,
	"family":    1.3,
	"business":  1.0,
	"group":     1.5,
}

// destination is the template data used for a known destination.
type destination struct {
	Name        string
	ImageURL    string
	Airport     string
	Area        string
	District    string
	Attractions []string
	Transport   string
	FlightHours float64
	CostIndex   float64
}

// originAirport is where every outbound flight departs.
const originAirport = "DEL"

const defaultImageURL = "https://images.unsplash.com/photo-1537953773345-d172ccf13cf1?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"

var destinations = map[string]destination{
	"bali": {
		Name:        "Bali",
		ImageURL:    defaultImageURL,
		Airport:     "DPS",
		Area:        "Seminyak",
		District:    "Badung",
		Attractions: []string{"Tanah Lot Temple", "Seminyak Beach", "Ubud Monkey Forest"},
		Transport:   "Private driver or scooter rental",
		FlightHours: 8.5,
		CostIndex:   0.9,
	},
	"paris": {
		Name:        "Paris",
		ImageURL:    "https://images.unsplash.com/photo-1502602898657-3e91760cbb34?auto=format&fit=crop&w=800&h=600",
		Airport:     "CDG",
		Area:        "Le Marais",
		District:    "4th Arrondissement",
		Attractions: []string{"Eiffel Tower", "Louvre Museum", "Notre-Dame"},
		Transport:   "Metro and RER",
		FlightHours: 9.5,
		CostIndex:   1.4,
	},
	"tokyo": {
		Name:        "Tokyo",
		ImageURL:    "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?auto=format&fit=crop&w=800&h=600",
		Airport:     "HND",
		Area:        "Shinjuku",
		District:    "Shinjuku City",
		Attractions: []string{"Senso-ji Temple", "Shibuya Crossing", "Meiji Shrine"},
		Transport:   "JR lines and Tokyo Metro",
		FlightHours: 8,
		CostIndex:   1.3,
	},
	"maldives": {
		Name:        "Maldives",
		ImageURL:    "https://images.unsplash.com/photo-1514282401047-d79a71a590e8?auto=format&fit=crop&w=800&h=600",
		Airport:     "MLE",
		Area:        "North Malé Atoll",
		District:    "Kaafu",
		Attractions: []string{"House Reef Snorkeling", "Sandbank Picnic", "Dolphin Cruise"},
		Transport:   "Speedboat and seaplane transfers",
		FlightHours: 4,
		CostIndex:   1.5,
	},
	"dubai": {
		Name:        "Dubai",
		ImageURL:    "https://images.unsplash.com/photo-1512453979798-5ea266f8880c?auto=format&fit=crop&w=800&h=600",
		Airport:     "DXB",
		Area:        "Downtown Dubai",
		District:    "Bur Dubai",
		Attractions: []string{"Burj Khalifa", "Dubai Mall", "Desert Safari"},
		Transport:   "Dubai Metro and taxis",
		FlightHours: 3.5,
		CostIndex:   1.2,
	},
	"goa": {
		Name:        "Goa",
		ImageURL:    "https://images.unsplash.com/photo-1512343879784-a960bf40e7f2?auto=format&fit=crop&w=800&h=600",
		Airport:     "GOI",
		Area:        "Candolim",
		District:    "North Goa",
		Attractions: []string{"Baga Beach", "Fort Aguada", "Basilica of Bom Jesus"},
		Transport:   "Taxis and scooter rental",
		FlightHours: 2.5,
		CostIndex:   0.5,
	},
	"london": {
		Name:        "London",
		ImageURL:    "https://images.unsplash.com/photo-1513635269975-59663e0ac1ad?auto=format&fit=crop&w=800&h=600",
		Airport:     "LHR",
		Area:        "Covent Garden",
		District:    "Westminster",
		Attractions: []string{"British Museum", "Tower of London", "Hyde Park"},
		Transport:   "London Underground and buses",
		FlightHours: 10,
		CostIndex:   1.5,
	},
	"new york": {
		Name:        "New York",
		ImageURL:    "https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9?auto=format&fit=crop&w=800&h=600",
		Airport:     "JFK",
		Area:        "Midtown Manhattan",
		District:    "Manhattan",
		Attractions: []string{"Central Park", "Times Square", "Statue of Liberty"},
		Transport:   "Subway and yellow cabs",
		FlightHours: 16,
		CostIndex:   1.6,
	},
	"switzerland": {
		Name:        "Switzerland",
		ImageURL:    "https://images.unsplash.com/photo-1530122037265-a5f1f91d3b99?auto=format&fit=crop&w=800&h=600",
		Airport:     "ZRH",
		Area:        "Interlaken",
		District:    "Bern Canton",
		Attractions: []string{"Jungfraujoch", "Lake Brienz", "Harder Kulm"},
		Transport:   "Swiss Travel Pass rail network",
		FlightHours: 9,
		CostIndex:   1.6,
	},
}

// destinationAliases maps common spellings onto table keys.
var destinationAliases = map[string]string{
	"swiss":         "switzerland",
	"swiss alps":    "switzerland",
	"nyc":           "new york",
	"new york city": "new york",
	"male":          "maldives",
}

// lookupDestination returns the table entry for name, matching case-insensitively
// on the whole name or its first comma-separated part ("Paris, France").
// Unknown destinations get a generic entry that keeps the caller's spelling.
func lookupDestination(name string) destination {
	key := strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexByte(key, ','); i >= 0 {
		key = strings.TrimSpace(key[:i])
	}
	if alias, ok := destinationAliases[key]; ok {
		key = alias
	}
	if d, ok := destinations[key]; ok {
		return d
	}
	return destination{
		Name:        strings.TrimSpace(name),
		ImageURL:    defaultImageURL,
		Airport:     "INT",
		Area:        "City Centre",
		District:    "Central District",
		Attractions: []string{"Old Town", "Local Markets", "Main Square"},
		Transport:   "Public transport and taxis",
		FlightHours: 6,
		CostIndex:   1.0,
	}
}

func lookupBudget(budget string) float64 {
	if v, ok := budgetBase[strings.ToLower(strings.TrimSpace(budget))]; ok {
		return v
	}
	return budgetBase["mid-range"]
}

func lookupDuration(duration string) float64 {
	if v, ok := durationMultiplier[strings.ToLower(strings.TrimSpace(duration))]; ok {
		return v
	}
	return durationMultiplier["custom"]
}

func lookupTravelType(travelType string) float64 {
	if v, ok := travelTypeMultiplier[strings.ToLower(strings.TrimSpace(travelType))]; ok {
		return v
	}
	return 1.0
}
