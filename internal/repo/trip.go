// Package repo contains all database access logic for the SmartTravel API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/smarttravel/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record with its
	// DB-generated id and created_at.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of trips, newest first, and the total count.
	ListPaged(ctx context.Context, p domain.PageParams) ([]domain.Trip, int64, error)
}

type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, destination, duration, travel_type, budget,
		       departure_date, return_date, email, created_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (destination, duration, travel_type, budget,
		                   departure_date, return_date, email)
		VALUES (@destination, @duration, @travel_type, @budget,
		        @departure_date, @return_date, @email)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"destination":    trip.Destination,
		"duration":       trip.Duration,
		"travel_type":    trip.TravelType,
		"budget":         trip.Budget,
		"departure_date": trip.DepartureDate,
		"return_date":    trip.ReturnDate,
		"email":          nullIfEmpty(trip.Email),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PageParams) ([]domain.Trip, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}
	return trips, total, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		departure pgtype.Date
		ret       pgtype.Date
		email     *string
	)

	err := s.Scan(&id, &t.Destination, &t.Duration, &t.TravelType, &t.Budget,
		&departure, &ret, &email, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.DepartureDate = departure.Time
	t.ReturnDate = ret.Time
	if email != nil {
		t.Email = *email
	}
	return t, nil
}

// nullIfEmpty maps "" to SQL NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
