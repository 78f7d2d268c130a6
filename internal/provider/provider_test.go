package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/smarttravel/internal/domain"
	"github.com/pkordes/smarttravel/internal/provider"
)

func tripFixture() domain.Trip {
	return domain.Trip{
		Destination:   "Bali",
		Duration:      "1 week",
		TravelType:    "honeymoon",
		Budget:        "luxury",
		DepartureDate: time.Date(2026, 12, 10, 0, 0, 0, 0, time.UTC),
		ReturnDate:    time.Date(2026, 12, 17, 0, 0, 0, 0, time.UTC),
	}
}

func TestClient_Quote_SendsRequestAndMapsDeals(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"deals":[
			{"agentName":"RemoteBot","price":"1999.50","originalPrice":2500,"hotelStars":4,
			 "responseTime":"1 min","inclusions":["Hotel"],"description":"Remote offer"},
			{"agent":"Other","totalCost":1500,"listPrice":"1800","rating":3,"amenities":["Pool"],"summary":"Second"}
		]}`))
	}))
	defer srv.Close()

	c := provider.New(srv.URL, "secret", 2*time.Second)
	deals, err := c.Quote(context.Background(), tripFixture())

	require.NoError(t, err)
	assert.Equal(t, "Bali", got["destination"])
	assert.Equal(t, "2026-12-10", got["departureDate"])
	assert.Equal(t, "travel_deals", got["requestType"])
	assert.EqualValues(t, provider.MaxResults, got["maxResults"])

	require.Len(t, deals, 2)
	assert.Equal(t, "RemoteBot", deals[0].Agent)
	assert.Equal(t, 1999.50, deals[0].Price)
	assert.Equal(t, 2500.0, deals[0].OriginalPrice)
	assert.Equal(t, 4, deals[0].HotelRating)
	assert.Equal(t, "1 min", deals[0].ConfirmationTime)
	assert.Equal(t, "Bali", deals[0].Destination)

	assert.Equal(t, "Other", deals[1].Agent)
	assert.Equal(t, 1500.0, deals[1].Price)
	assert.Equal(t, 1800.0, deals[1].OriginalPrice)
	assert.Equal(t, 3, deals[1].HotelRating)
	assert.Equal(t, []string{"Pool"}, deals[1].Inclusions)
	assert.Equal(t, "Second", deals[1].Description)
}

func TestClient_Quote_ResultsEnvelopeAndDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{},{},{},{}]}`))
	}))
	defer srv.Close()

	deals, err := provider.New(srv.URL, "k", time.Second).Quote(context.Background(), tripFixture())

	require.NoError(t, err)
	require.Len(t, deals, provider.MaxResults, "extra results are dropped")
	d := deals[0]
	assert.Equal(t, "AI Travel Agent", d.Agent)
	assert.Equal(t, 2899.0, d.Price)
	assert.Equal(t, 3499.0, d.OriginalPrice)
	assert.Equal(t, 4, d.HotelRating)
	assert.Equal(t, "3 min", d.ConfirmationTime)
	assert.Equal(t, []string{"Hotel", "Breakfast", "Tours"}, d.Inclusions)
	assert.Equal(t, "Premium travel package to Bali", d.Description)
}

func TestClient_Quote_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := provider.New(srv.URL, "k", time.Second).Quote(context.Background(), tripFixture())

	assert.ErrorIs(t, err, provider.ErrStatus)
}

func TestClient_Quote_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := provider.New(url, "k", time.Second).Quote(context.Background(), tripFixture())

	assert.Error(t, err)
}
