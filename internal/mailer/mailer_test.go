package mailer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/smarttravel/internal/domain"
	"github.com/pkordes/smarttravel/internal/mailer"
)

// recordingSender captures every message instead of delivering it.
type recordingSender struct {
	sent []mailer.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	s.sent = append(s.sent, msg)
	return s.err
}

var _ mailer.Sender = (*recordingSender)(nil)

func dealFixture(agent string) domain.Deal {
	return domain.Deal{
		Agent:            agent,
		Destination:      "Bali",
		Price:            2899,
		OriginalPrice:    3499,
		HotelRating:      4,
		ConfirmationTime: "2 min",
		Inclusions:       []string{"5★ Resort", "Spa <Package>"},
		Description:      "Luxury beachfront resort",
	}
}

func tripFixture() domain.Trip {
	return domain.Trip{
		Destination:   "Bali",
		TravelType:    "honeymoon",
		Email:         "traveller@example.com",
		DepartureDate: time.Date(2026, 12, 10, 0, 0, 0, 0, time.UTC),
		ReturnDate:    time.Date(2026, 12, 17, 0, 0, 0, 0, time.UTC),
	}
}

func newMailer(t *testing.T, s mailer.Sender) *mailer.Mailer {
	t.Helper()
	m, err := mailer.New(s, "http://localhost:5000/")
	require.NoError(t, err)
	return m
}

func TestMailer_SendTopDeals(t *testing.T) {
	s := &recordingSender{}
	m := newMailer(t, s)

	deals := []domain.Deal{dealFixture("TravelBot Pro"), dealFixture("VoyageAI"), dealFixture("Unknown")}
	err := m.SendTopDeals(context.Background(), tripFixture(), deals)

	require.NoError(t, err)
	require.Len(t, s.sent, 1)
	msg := s.sent[0]
	assert.Equal(t, "traveller@example.com", msg.To)
	assert.Equal(t, "🌟 Your Top 3 AI-Curated Travel Deals for Bali", msg.Subject)

	assert.Contains(t, msg.HTML, "👑 TravelBot Pro")
	assert.Contains(t, msg.HTML, "VoyageAI")
	assert.Contains(t, msg.HTML, "🤖 Unknown")
	assert.Contains(t, msg.HTML, "₹2899.00")
	assert.Contains(t, msg.HTML, "Save 17%")
	assert.Contains(t, msg.HTML, "★★★★☆")
	assert.Contains(t, msg.HTML, "Spa &lt;Package&gt;", "HTML content is escaped")
	assert.Contains(t, msg.HTML, `href="http://localhost:5000/chat-logs"`)

	assert.Contains(t, msg.Text, "DEAL 1: TravelBot Pro")
	assert.Contains(t, msg.Text, "DEAL 3: Unknown")
	assert.Contains(t, msg.Text, "Includes: 5★ Resort, Spa <Package>")
	assert.Contains(t, msg.Text, "For your honeymoon trip to Bali")
}

func TestMailer_SendDeal(t *testing.T) {
	s := &recordingSender{}
	m := newMailer(t, s)

	err := m.SendDeal(context.Background(), "friend@example.com", dealFixture("ExploreAI"))

	require.NoError(t, err)
	require.Len(t, s.sent, 1)
	msg := s.sent[0]
	assert.Equal(t, "friend@example.com", msg.To)
	assert.Equal(t, "🎯 Exclusive Travel Deal: Bali from ExploreAI", msg.Subject)
	assert.Contains(t, msg.HTML, "Curated by ExploreAI")
	assert.Contains(t, msg.Text, "ExploreAI has found you an amazing deal!")
	assert.Contains(t, msg.Text, "• 5★ Resort")
	assert.Contains(t, msg.Text, "Book now at: http://localhost:5000")
}

func TestMailer_SenderErrorIsWrapped(t *testing.T) {
	boom := errors.New("smtp down")
	m := newMailer(t, &recordingSender{err: boom})

	err := m.SendDeal(context.Background(), "a@b.co", dealFixture("WanderBot"))

	assert.ErrorIs(t, err, boom)
}

func TestMailer_RenderTopDeals_NoDestination(t *testing.T) {
	m := newMailer(t, &recordingSender{})
	trip := tripFixture()
	trip.Destination = ""

	msg, err := m.RenderTopDeals(trip, []domain.Deal{dealFixture("WanderBot")})

	require.NoError(t, err)
	assert.Equal(t, "🌟 Your Top 1 AI-Curated Travel Deals for Your Trip", msg.Subject)
}
