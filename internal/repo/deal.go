package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/smarttravel/internal/domain"
)

// DealRepo defines the persistence operations for Deals.
type DealRepo interface {
	// Create inserts a deal and returns it with its DB-generated fields.
	Create(ctx context.Context, deal domain.Deal) (domain.Deal, error)

	// GetByID returns domain.ErrNotFound if no deal with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Deal, error)

	// List returns every deal, newest first.
	List(ctx context.Context) ([]domain.Deal, error)

	// ListByTrip returns the deals of one trip ranked by value score.
	// Equal scores come back in insertion order.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Deal, error)

	// CountByDestination returns how many deals were kept per destination,
	// in the order each destination first appeared.
	CountByDestination(ctx context.Context) ([]DestinationCount, error)
}

// DestinationCount is one row of CountByDestination.
type DestinationCount struct {
	Destination string
	Count       int64
}

type pgDealRepo struct {
	db db
}

// NewDealRepo constructs a DealRepo backed by the provided db connection.
func NewDealRepo(db db) DealRepo {
	return &pgDealRepo{db: db}
}

const dealColumns = `id, trip_id, agent, destination, price, original_price,
		       hotel_rating, confirmation_time, inclusions, image_url, description,
		       value_score, flight_details, accommodation_details,
		       inclusions_breakdown, location_info, booking_terms, created_at`

func (r *pgDealRepo) Create(ctx context.Context, deal domain.Deal) (domain.Deal, error) {
	const q = `
		INSERT INTO deals (trip_id, agent, destination, price, original_price,
		                   hotel_rating, confirmation_time, inclusions, image_url,
		                   description, value_score, flight_details,
		                   accommodation_details, inclusions_breakdown,
		                   location_info, booking_terms)
		VALUES (@trip_id, @agent, @destination, @price, @original_price,
		        @hotel_rating, @confirmation_time, @inclusions, @image_url,
		        @description, @value_score, @flight_details::jsonb,
		        @accommodation_details::jsonb, @inclusions_breakdown::jsonb,
		        @location_info::jsonb, @booking_terms::jsonb)
		RETURNING ` + dealColumns

	blobs, err := marshalDealBlobs(deal)
	if err != nil {
		return domain.Deal{}, fmt.Errorf("repo.DealRepo.Create: %w", err)
	}

	inclusions := deal.Inclusions
	if inclusions == nil {
		inclusions = []string{}
	}

	args := pgx.NamedArgs{
		"trip_id":               deal.TripID, // nil becomes NULL
		"agent":                 deal.Agent,
		"destination":           deal.Destination,
		"price":                 deal.Price,
		"original_price":        deal.OriginalPrice,
		"hotel_rating":          deal.HotelRating,
		"confirmation_time":     deal.ConfirmationTime,
		"inclusions":            inclusions,
		"image_url":             deal.ImageURL,
		"description":           deal.Description,
		"value_score":           deal.ValueScore,
		"flight_details":        blobs[0],
		"accommodation_details": blobs[1],
		"inclusions_breakdown":  blobs[2],
		"location_info":         blobs[3],
		"booking_terms":         blobs[4],
	}

	result, err := scanDeal(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Deal{}, fmt.Errorf("repo.DealRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDealRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Deal, error) {
	const q = `SELECT ` + dealColumns + ` FROM deals WHERE id = @id`

	result, err := scanDeal(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Deal{}, fmt.Errorf("repo.DealRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDealRepo) List(ctx context.Context) ([]domain.Deal, error) {
	const q = `SELECT ` + dealColumns + ` FROM deals ORDER BY created_at DESC, seq DESC`

	deals, err := r.query(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.DealRepo.List: %w", err)
	}
	return deals, nil
}

func (r *pgDealRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Deal, error) {
	const q = `
		SELECT ` + dealColumns + `
		FROM deals
		WHERE trip_id = @trip_id
		ORDER BY value_score DESC, seq`

	deals, err := r.query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DealRepo.ListByTrip: %w", err)
	}
	return deals, nil
}

func (r *pgDealRepo) CountByDestination(ctx context.Context) ([]DestinationCount, error) {
	const q = `
		SELECT destination, count(*)
		FROM deals
		GROUP BY destination
		ORDER BY min(seq)`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DealRepo.CountByDestination: %w", err)
	}
	defer rows.Close()

	counts := []DestinationCount{}
	for rows.Next() {
		var c DestinationCount
		if err := rows.Scan(&c.Destination, &c.Count); err != nil {
			return nil, fmt.Errorf("repo.DealRepo.CountByDestination: scan: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DealRepo.CountByDestination: rows: %w", err)
	}
	return counts, nil
}

func (r *pgDealRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Deal, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deals := []domain.Deal{}
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return deals, nil
}

// marshalDealBlobs encodes the optional detail fields in column order.
// Absent details encode as nil, which is stored as NULL.
func marshalDealBlobs(d domain.Deal) ([5][]byte, error) {
	var out [5][]byte
	var err error
	if out[0], err = jsonOrNull(d.FlightDetails); err != nil {
		return out, fmt.Errorf("flight_details: %w", err)
	}
	if out[1], err = jsonOrNull(d.AccommodationDetails); err != nil {
		return out, fmt.Errorf("accommodation_details: %w", err)
	}
	if len(d.InclusionsBreakdown) > 0 {
		if out[2], err = json.Marshal(d.InclusionsBreakdown); err != nil {
			return out, fmt.Errorf("inclusions_breakdown: %w", err)
		}
	}
	if out[3], err = jsonOrNull(d.LocationInfo); err != nil {
		return out, fmt.Errorf("location_info: %w", err)
	}
	if out[4], err = jsonOrNull(d.BookingTerms); err != nil {
		return out, fmt.Errorf("booking_terms: %w", err)
	}
	return out, nil
}

func scanDeal(s scanner) (domain.Deal, error) {
	var (
		d      domain.Deal
		id     pgtype.UUID
		tripID pgtype.UUID
		blobs  [5][]byte
	)

	err := s.Scan(&id, &tripID, &d.Agent, &d.Destination, &d.Price, &d.OriginalPrice,
		&d.HotelRating, &d.ConfirmationTime, &d.Inclusions, &d.ImageURL, &d.Description,
		&d.ValueScore, &blobs[0], &blobs[1], &blobs[2], &blobs[3], &blobs[4], &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Deal{}, domain.ErrNotFound
		}
		return domain.Deal{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	if tripID.Valid {
		tid := uuid.UUID(tripID.Bytes)
		d.TripID = &tid
	}

	if err := unmarshalIfPresent(blobs[0], &d.FlightDetails); err != nil {
		return domain.Deal{}, fmt.Errorf("flight_details: %w", err)
	}
	if err := unmarshalIfPresent(blobs[1], &d.AccommodationDetails); err != nil {
		return domain.Deal{}, fmt.Errorf("accommodation_details: %w", err)
	}
	if err := unmarshalIfPresent(blobs[2], &d.InclusionsBreakdown); err != nil {
		return domain.Deal{}, fmt.Errorf("inclusions_breakdown: %w", err)
	}
	if err := unmarshalIfPresent(blobs[3], &d.LocationInfo); err != nil {
		return domain.Deal{}, fmt.Errorf("location_info: %w", err)
	}
	if err := unmarshalIfPresent(blobs[4], &d.BookingTerms); err != nil {
		return domain.Deal{}, fmt.Errorf("booking_terms: %w", err)
	}
	return d, nil
}

func jsonOrNull[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalIfPresent(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
