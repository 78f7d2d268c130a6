// Package service contains the business logic for the SmartTravel API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/smarttravel/internal/dealgen"
	"github.com/pkordes/smarttravel/internal/domain"
	"github.com/pkordes/smarttravel/internal/metrics"
	"github.com/pkordes/smarttravel/internal/repo"
)

// DealProvider is a remote source of offers for a trip.
type DealProvider interface {
	Quote(ctx context.Context, trip domain.Trip) ([]domain.Deal, error)
}

// Notifier delivers deal emails.
type Notifier interface {
	SendTopDeals(ctx context.Context, trip domain.Trip, deals []domain.Deal) error
	SendDeal(ctx context.Context, to string, deal domain.Deal) error
}

// TripDeps wires a TripService. Provider, Notifier and Tx are optional.
// Without Tx, Plan writes through the repos above one statement at a time.
type TripDeps struct {
	Trips     repo.TripRepo
	Deals     repo.DealRepo
	AgentLogs repo.AgentLogRepo
	Agents    repo.AgentRepo
	ChatLogs  repo.ChatLogRepo
	Tx        repo.Transactor

	Provider DealProvider
	Notifier Notifier
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Now      func() time.Time
}

// TripService plans trips and answers trip queries.
type TripService struct {
	trips  repo.TripRepo
	deals  repo.DealRepo
	agents repo.AgentRepo
	tx     repo.Transactor

	provider DealProvider
	notifier Notifier
	metrics  *metrics.Metrics
	log      *slog.Logger
	now      func() time.Time
}

// NewTripService constructs a TripService from its dependencies.
func NewTripService(d TripDeps) *TripService {
	s := &TripService{
		trips:    d.Trips,
		deals:    d.Deals,
		agents:   d.Agents,
		tx:       d.Tx,
		provider: d.Provider,
		notifier: d.Notifier,
		metrics:  d.Metrics,
		log:      d.Logger,
		now:      d.Now,
	}
	if s.tx == nil {
		s.tx = directTx{repo.Repos{Trips: d.Trips, Deals: d.Deals, AgentLogs: d.AgentLogs, ChatLogs: d.ChatLogs}}
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// directTx hands fn the service's own repos without a transaction.
type directTx struct{ repos repo.Repos }

func (d directTx) InTx(_ context.Context, fn func(repo.Repos) error) error { return fn(d.repos) }

// Plan validates and stores a trip, gathers candidate offers, keeps the
// top-ranked ones and records the run. The trip, kept deals, agent logs and
// chat transcript are written in one transaction; the email goes out after
// it commits. The returned deals are ranked by descending value score.
func (s *TripService) Plan(ctx context.Context, trip domain.Trip) (domain.Trip, []domain.Deal, error) {
	trip = normalizeTrip(trip)
	if err := validateTrip(trip, s.now()); err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.TripService.Plan: %w", err)
	}

	quoted := s.quote(ctx, trip)

	var (
		created domain.Trip
		kept    []domain.Deal
	)
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		var err error
		created, err = r.Trips.Create(ctx, trip)
		if err != nil {
			return err
		}

		candidates := quoted
		if len(candidates) == 0 {
			candidates = s.generate(ctx, created)
		}

		order := dealgen.RankOrder(candidates, dealgen.TopN)
		dealIDs := make(map[int]uuid.UUID, len(order))
		kept = make([]domain.Deal, 0, len(order))
		for _, pos := range order {
			d := candidates[pos]
			d.ValueScore = dealgen.ValueScore(d)
			d.TripID = &created.ID
			saved, err := r.Deals.Create(ctx, d)
			if err != nil {
				return err
			}
			dealIDs[pos] = saved.ID
			kept = append(kept, saved)
		}

		for _, c := range candidates {
			_, err := r.AgentLogs.Create(ctx, domain.AgentLog{
				Agent:        c.Agent,
				Price:        c.Price,
				HotelRating:  c.HotelRating,
				DeliveryTime: c.ConfirmationTime,
				Notes:        fmt.Sprintf("Trip to %s for %s", created.Destination, created.TravelType),
			})
			if err != nil {
				return err
			}
		}

		for _, line := range transcript(created, candidates, kept, dealIDs, s.now()) {
			if _, err := r.ChatLogs.Create(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.TripService.Plan: %w", err)
	}

	if created.Email != "" && s.notifier != nil {
		err := s.notifier.SendTopDeals(ctx, created, kept)
		s.metrics.EmailResult("top_deals", err)
		if err != nil {
			s.log.WarnContext(ctx, "top deals email failed", "trip_id", created.ID, "error", err)
		}
	}

	s.metrics.TripPlanned()
	return created, kept, nil
}

// quote asks the remote provider for offers. It returns nil when no
// provider is configured, when it fails, or when it has nothing to offer.
func (s *TripService) quote(ctx context.Context, trip domain.Trip) []domain.Deal {
	if s.provider == nil {
		return nil
	}
	deals, err := s.provider.Quote(ctx, trip)
	if err != nil {
		s.metrics.ProviderError()
		s.log.WarnContext(ctx, "deal provider failed, using generator", "destination", trip.Destination, "error", err)
		return nil
	}
	if len(deals) > 0 {
		s.metrics.DealSource(metrics.SourceProvider, len(deals))
	}
	return deals
}

// generate returns the synthetic personas' offers for a stored trip, or the
// canned fallback when no persona is active.
func (s *TripService) generate(ctx context.Context, trip domain.Trip) []domain.Deal {
	if deals := dealgen.Generate(trip, s.activePersonas(ctx), dealgen.SeedFor(trip.ID)); len(deals) > 0 {
		s.metrics.DealSource(metrics.SourceGenerator, len(deals))
		return deals
	}
	s.metrics.DealSource(metrics.SourceFallback, 1)
	return []domain.Deal{dealgen.Fallback(trip)}
}

// activePersonas restricts the built-in personas to the agents switched on
// in the roster. An empty or unreadable roster enables all of them.
func (s *TripService) activePersonas(ctx context.Context) []dealgen.Persona {
	agents, err := s.agents.List(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "agent roster unavailable, using every persona", "error", err)
		return dealgen.Personas()
	}
	if len(agents) == 0 {
		return dealgen.Personas()
	}
	active := []string{}
	for _, a := range agents {
		if a.IsActive {
			active = append(active, a.Name)
		}
	}
	return dealgen.ActivePersonas(active)
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// ListPaged returns one page of trips, newest first.
func (s *TripService) ListPaged(ctx context.Context, p domain.PageParams) (domain.Page[domain.Trip], error) {
	items, total, err := s.trips.ListPaged(ctx, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	return domain.Page[domain.Trip]{Items: items, Total: total, PageParams: p}, nil
}

// Deals returns the kept deals of a trip, best value first.
// Returns domain.ErrNotFound when the trip does not exist.
func (s *TripService) Deals(ctx context.Context, tripID uuid.UUID) ([]domain.Deal, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.TripService.Deals: %w", err)
	}
	deals, err := s.deals.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Deals: %w", err)
	}
	return deals, nil
}

func normalizeTrip(t domain.Trip) domain.Trip {
	t.Destination = strings.TrimSpace(t.Destination)
	t.Duration = strings.TrimSpace(t.Duration)
	t.TravelType = strings.TrimSpace(t.TravelType)
	t.Budget = strings.TrimSpace(t.Budget)
	t.Email = strings.TrimSpace(t.Email)
	return t
}

// validateTrip enforces the trip form rules. now supplies "today".
func validateTrip(t domain.Trip, now time.Time) error {
	required := []struct{ name, value string }{
		{"destination", t.Destination},
		{"duration", t.Duration},
		{"travelType", t.TravelType},
		{"budget", t.Budget},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, f.name)
		}
	}
	if t.DepartureDate.IsZero() || t.ReturnDate.IsZero() {
		return fmt.Errorf("%w: departure and return dates are required", domain.ErrValidation)
	}
	if dateOf(t.DepartureDate).Before(dateOf(now)) {
		return fmt.Errorf("%w: departure date cannot be in the past", domain.ErrValidation)
	}
	if !dateOf(t.ReturnDate).After(dateOf(t.DepartureDate)) {
		return fmt.Errorf("%w: return date must be after departure date", domain.ErrValidation)
	}
	return nil
}

// dateOf truncates t to its calendar date in UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
