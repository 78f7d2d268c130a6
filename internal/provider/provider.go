// Package provider is the HTTP client for the optional remote deal
// provider. When configured, the planning flow asks it for offers before
// falling back to the built-in generator.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pkordes/smarttravel/internal/domain"
)

// MaxResults is how many offers the provider is asked for.
const MaxResults = 3

// Defaults applied to fields the provider leaves out.
const (
	defaultAgent            = "AI Travel Agent"
	defaultHotelRating      = 4
	defaultConfirmationTime = "3 min"
	defaultImageURL         = "https://images.unsplash.com/photo-1537953773345-d172ccf13cf1?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"
)

var defaultInclusions = []string{"Hotel", "Breakfast", "Tours"}

// Client asks a remote provider for travel offers.
type Client struct {
	http     *resty.Client
	endpoint string
}

// New returns a Client posting to endpoint with a bearer API key.
func New(endpoint, apiKey string, timeout time.Duration) *Client {
	c := resty.New().
		SetTimeout(timeout).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: c, endpoint: endpoint}
}

type quoteRequest struct {
	Destination   string `json:"destination"`
	Duration      string `json:"duration"`
	TravelType    string `json:"travelType"`
	Budget        string `json:"budget"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
	RequestType   string `json:"requestType"`
	MaxResults    int    `json:"maxResults"`
}

// quoteResponse accepts both the "deals" and the "results" envelope.
type quoteResponse struct {
	Deals   []remoteDeal `json:"deals"`
	Results []remoteDeal `json:"results"`
}

// remoteDeal lists every field name the provider has been seen to use.
type remoteDeal struct {
	AgentName        string   `json:"agentName"`
	Agent            string   `json:"agent"`
	Price            amount   `json:"price"`
	TotalCost        amount   `json:"totalCost"`
	OriginalPrice    amount   `json:"originalPrice"`
	ListPrice        amount   `json:"listPrice"`
	HotelStars       int      `json:"hotelStars"`
	Rating           int      `json:"rating"`
	ResponseTime     string   `json:"responseTime"`
	ConfirmationTime string   `json:"confirmationTime"`
	Inclusions       []string `json:"inclusions"`
	Amenities        []string `json:"amenities"`
	ImageURL         string   `json:"imageUrl"`
	Description      string   `json:"description"`
	Summary          string   `json:"summary"`
}

// amount decodes a price sent either as a JSON number or a numeric string.
type amount float64

func (a *amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("amount %q: %w", s, err)
		}
		*a = amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = amount(f)
	return nil
}

// ErrStatus is wrapped by Quote when the provider answers with a non-2xx status.
var ErrStatus = errors.New("provider returned an error status")

// Quote asks the provider for up to MaxResults offers for trip.
// The returned deals are unscored and carry the trip's destination.
func (c *Client) Quote(ctx context.Context, trip domain.Trip) ([]domain.Deal, error) {
	req := quoteRequest{
		Destination:   trip.Destination,
		Duration:      trip.Duration,
		TravelType:    trip.TravelType,
		Budget:        trip.Budget,
		DepartureDate: trip.DepartureDate.Format(time.DateOnly),
		ReturnDate:    trip.ReturnDate.Format(time.DateOnly),
		RequestType:   "travel_deals",
		MaxResults:    MaxResults,
	}

	var out quoteResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("provider.Client.Quote: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("provider.Client.Quote: %w: %d", ErrStatus, resp.StatusCode())
	}

	remote := out.Deals
	if len(remote) == 0 {
		remote = out.Results
	}
	if len(remote) > MaxResults {
		remote = remote[:MaxResults]
	}

	deals := make([]domain.Deal, 0, len(remote))
	for _, r := range remote {
		deals = append(deals, r.toDeal(trip))
	}
	return deals, nil
}

func (r remoteDeal) toDeal(trip domain.Trip) domain.Deal {
	d := domain.Deal{
		Agent:            firstNonEmpty(r.AgentName, r.Agent, defaultAgent),
		Destination:      trip.Destination,
		Price:            float64(firstPositive(r.Price, r.TotalCost, 2899)),
		OriginalPrice:    float64(firstPositive(r.OriginalPrice, r.ListPrice, 3499)),
		HotelRating:      defaultHotelRating,
		ConfirmationTime: firstNonEmpty(r.ResponseTime, r.ConfirmationTime, defaultConfirmationTime),
		Inclusions:       r.Inclusions,
		ImageURL:         firstNonEmpty(r.ImageURL, defaultImageURL),
		Description:      firstNonEmpty(r.Description, r.Summary, "Premium travel package to "+trip.Destination),
	}
	switch {
	case r.HotelStars >= 1 && r.HotelStars <= 5:
		d.HotelRating = r.HotelStars
	case r.Rating >= 1 && r.Rating <= 5:
		d.HotelRating = r.Rating
	}
	if len(d.Inclusions) == 0 {
		d.Inclusions = r.Amenities
	}
	if len(d.Inclusions) == 0 {
		d.Inclusions = append([]string(nil), defaultInclusions...)
	}
	return d
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstPositive(vals ...amount) amount {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
