package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/smarttravel/internal/domain"
	"github.com/pkordes/smarttravel/internal/repo"
	"github.com/pkordes/smarttravel/testutil"
)

func dealFixture(tripID *uuid.UUID, agent string, score float64) domain.Deal {
	return domain.Deal{
		TripID:           tripID,
		Agent:            agent,
		Destination:      "Bali",
		Price:            2899.00,
		OriginalPrice:    3499.00,
		HotelRating:      5,
		ConfirmationTime: "2 min",
		Inclusions:       []string{"5★ Resort", "All Meals"},
		ImageURL:         "https://example.com/bali.jpg",
		Description:      "Beach villa",
		ValueScore:       score,
	}
}

func TestDealRepo_Create_WithDetails(t *testing.T) {
	tx := testutil.NewTx(t)
	trips := repo.NewTripRepo(tx)
	deals := repo.NewDealRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	input := dealFixture(&trip.ID, "TravelBot Pro", 107.1)
	input.FlightDetails = &domain.FlightDetails{
		Outbound: domain.FlightLeg{Airline: "Emirates", FlightNumber: "EK 512", Layovers: []string{}},
		Return:   domain.FlightLeg{Airline: "Emirates", FlightNumber: "EK 513", Layovers: []string{"Dubai"}},
	}
	input.InclusionsBreakdown = map[string]string{"All Meals": "Breakfast, lunch and dinner"}
	input.BookingTerms = &domain.BookingTerms{Insurance: "Included"}

	got, err := deals.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	require.NotNil(t, got.TripID)
	assert.Equal(t, trip.ID, *got.TripID)
	assert.Equal(t, 2899.00, got.Price)
	assert.Equal(t, 3499.00, got.OriginalPrice)
	assert.InDelta(t, 107.1, got.ValueScore, 1e-9)
	assert.Equal(t, input.Inclusions, got.Inclusions)
	assert.Equal(t, input.FlightDetails, got.FlightDetails)
	assert.Equal(t, input.InclusionsBreakdown, got.InclusionsBreakdown)
	assert.Equal(t, input.BookingTerms, got.BookingTerms)
	assert.Nil(t, got.AccommodationDetails, "absent details stay NULL")
	assert.Nil(t, got.LocationInfo)
}

func TestDealRepo_Create_NoTrip(t *testing.T) {
	deals := repo.NewDealRepo(testutil.NewTx(t))

	got, err := deals.Create(context.Background(), dealFixture(nil, "WanderBot", 75))

	require.NoError(t, err)
	assert.Nil(t, got.TripID)
}

func TestDealRepo_GetByID_NotFound(t *testing.T) {
	deals := repo.NewDealRepo(testutil.NewTx(t))

	_, err := deals.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDealRepo_ListByTrip_RankedByScore(t *testing.T) {
	tx := testutil.NewTx(t)
	trips := repo.NewTripRepo(tx)
	deals := repo.NewDealRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	other, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	for agent, score := range map[string]float64{"VoyageAI": 80, "TravelBot Pro": 107, "ExploreAI": 82} {
		_, err := deals.Create(ctx, dealFixture(&trip.ID, agent, score))
		require.NoError(t, err)
	}
	_, err = deals.Create(ctx, dealFixture(&other.ID, "WanderBot", 200))
	require.NoError(t, err)

	got, err := deals.ListByTrip(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "TravelBot Pro", got[0].Agent)
	assert.Equal(t, "ExploreAI", got[1].Agent)
	assert.Equal(t, "VoyageAI", got[2].Agent)
}

func TestDealRepo_ListByTrip_EqualScoresKeepInsertOrder(t *testing.T) {
	tx := testutil.NewTx(t)
	trips := repo.NewTripRepo(tx)
	deals := repo.NewDealRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	// One transaction, so every row shares created_at.
	var want []uuid.UUID
	for range 5 {
		d, err := deals.Create(ctx, dealFixture(&trip.ID, "AI Travel Agent", 90))
		require.NoError(t, err)
		want = append(want, d.ID)
	}

	got, err := deals.ListByTrip(ctx, trip.ID)

	require.NoError(t, err)
	ids := make([]uuid.UUID, len(got))
	for i, d := range got {
		ids[i] = d.ID
	}
	assert.Equal(t, want, ids)
}

func TestDealRepo_List(t *testing.T) {
	deals := repo.NewDealRepo(testutil.NewTx(t))
	ctx := context.Background()

	created, err := deals.Create(ctx, dealFixture(nil, "JourneyGenie", 70))
	require.NoError(t, err)

	got, err := deals.List(ctx)

	require.NoError(t, err)
	var ids []uuid.UUID
	for _, d := range got {
		ids = append(ids, d.ID)
	}
	assert.Contains(t, ids, created.ID)
}

func TestDealRepo_CountByDestination(t *testing.T) {
	deals := repo.NewDealRepo(testutil.NewTx(t))
	ctx := context.Background()

	for _, dest := range []string{"Atlantis", "Atlantis", "El Dorado"} {
		d := dealFixture(nil, "VoyageAI", 80)
		d.Destination = dest
		_, err := deals.Create(ctx, d)
		require.NoError(t, err)
	}

	got, err := deals.CountByDestination(ctx)

	require.NoError(t, err)
	counts := map[string]int64{}
	for _, c := range got {
		counts[c.Destination] = c.Count
	}
	assert.Equal(t, int64(2), counts["Atlantis"])
	assert.Equal(t, int64(1), counts["El Dorado"])
}
