package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/smarttravel/internal/domain"
	"github.com/pkordes/smarttravel/internal/metrics"
	"github.com/pkordes/smarttravel/internal/repo"
)

// EmailResult reports the outcome of emailing a single deal.
type EmailResult struct {
	Message string `json:"message"`
	Sent    bool   `json:"sent"`
}

// Booking acknowledges a booking request.
type Booking struct {
	Message   string `json:"message"`
	BookingID string `json:"bookingId"`
}

// DealService implements the deal actions of the results page.
// Save and Book only acknowledge; nothing is persisted.
type DealService struct {
	deals    repo.DealRepo
	notifier Notifier
	metrics  *metrics.Metrics
	log      *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewDealService constructs a DealService. notifier may be nil, in which
// case Email always reports sent=false.
func NewDealService(deals repo.DealRepo, notifier Notifier, m *metrics.Metrics, log *slog.Logger) *DealService {
	if log == nil {
		log = slog.Default()
	}
	return &DealService{
		deals:    deals,
		notifier: notifier,
		metrics:  m,
		log:      log,
		validate: validator.New(),
		now:      time.Now,
	}
}

// List returns every deal, newest first.
func (s *DealService) List(ctx context.Context) ([]domain.Deal, error) {
	deals, err := s.deals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DealService.List: %w", err)
	}
	return deals, nil
}

// GetByID returns a single deal by ID.
func (s *DealService) GetByID(ctx context.Context, id uuid.UUID) (domain.Deal, error) {
	deal, err := s.deals.GetByID(ctx, id)
	if err != nil {
		return domain.Deal{}, fmt.Errorf("service.DealService.GetByID: %w", err)
	}
	return deal, nil
}

// Save marks a deal as a favourite.
func (s *DealService) Save(ctx context.Context, id uuid.UUID) (string, error) {
	if _, err := s.deals.GetByID(ctx, id); err != nil {
		return "", fmt.Errorf("service.DealService.Save: %w", err)
	}
	return fmt.Sprintf("Deal %s saved to favorites", id), nil
}

// Email sends one deal to an address. Delivery failures are reported in the
// result, not as an error.
func (s *DealService) Email(ctx context.Context, id uuid.UUID, to string) (EmailResult, error) {
	to = strings.TrimSpace(to)
	if err := s.validate.Var(to, "required,email"); err != nil {
		return EmailResult{}, fmt.Errorf("service.DealService.Email: %w: a valid email is required", domain.ErrValidation)
	}

	deal, err := s.deals.GetByID(ctx, id)
	if err != nil {
		return EmailResult{}, fmt.Errorf("service.DealService.Email: %w", err)
	}

	if s.notifier == nil {
		return EmailResult{Message: fmt.Sprintf("Deal %s could not be emailed to %s", id, to)}, nil
	}

	err = s.notifier.SendDeal(ctx, to, deal)
	s.metrics.EmailResult("deal", err)
	if err != nil {
		s.log.WarnContext(ctx, "deal email failed", "deal_id", id, "error", err)
		return EmailResult{Message: fmt.Sprintf("Deal %s could not be emailed to %s", id, to)}, nil
	}
	return EmailResult{Message: fmt.Sprintf("Deal %s will be emailed to %s", id, to), Sent: true}, nil
}

// Book starts a (simulated) booking for a deal.
func (s *DealService) Book(ctx context.Context, id uuid.UUID) (Booking, error) {
	if _, err := s.deals.GetByID(ctx, id); err != nil {
		return Booking{}, fmt.Errorf("service.DealService.Book: %w", err)
	}
	return Booking{
		Message:   fmt.Sprintf("Booking initiated for deal %s", id),
		BookingID: fmt.Sprintf("BK%d", s.now().UnixMilli()),
	}, nil
}
