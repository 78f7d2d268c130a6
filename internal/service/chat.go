package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/smarttravel/internal/dealgen"
	"github.com/pkordes/smarttravel/internal/domain"
	"github.com/pkordes/smarttravel/internal/repo"
)

// Chat transcript steps, stored in ChatMetadata.Step.
const (
	StepInitialRequest = "initial_request"
	StepOffer          = "offer"
	StepSelection      = "selection"
)

const (
	userAgent   = "User"
	systemAgent = "SmartTravel Pro"
)

// ChatLogService reads the planning transcripts.
type ChatLogService struct {
	chatLogs repo.ChatLogRepo
}

// NewChatLogService constructs a ChatLogService backed by the provided repo.
func NewChatLogService(r repo.ChatLogRepo) *ChatLogService {
	return &ChatLogService{chatLogs: r}
}

// ByTrip returns the transcript of one planning run, oldest first.
func (s *ChatLogService) ByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ChatLog, error) {
	logs, err := s.chatLogs.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ChatLogService.ByTrip: %w", err)
	}
	return logs, nil
}

// ByAgent returns every message an agent has sent, newest first.
func (s *ChatLogService) ByAgent(ctx context.Context, agent string) ([]domain.ChatLog, error) {
	agent = strings.TrimSpace(agent)
	if agent == "" {
		return nil, fmt.Errorf("service.ChatLogService.ByAgent: %w: agent is required", domain.ErrValidation)
	}
	logs, err := s.chatLogs.ListByAgent(ctx, agent)
	if err != nil {
		return nil, fmt.Errorf("service.ChatLogService.ByAgent: %w", err)
	}
	return logs, nil
}

// transcript builds the chat lines of a planning run: the traveller's
// request, one offer per candidate and a closing selection message.
// dealIDs maps a candidate's position to the deal saved for it.
// Lines are a second apart so that they sort in conversation order.
func transcript(trip domain.Trip, candidates, kept []domain.Deal, dealIDs map[int]uuid.UUID, start time.Time) []domain.ChatLog {
	at := func(i int) time.Time { return start.Add(time.Duration(i) * time.Second) }

	lines := make([]domain.ChatLog, 0, len(candidates)+2)
	lines = append(lines, domain.ChatLog{
		TripID:      trip.ID,
		Agent:       userAgent,
		MessageType: domain.MessageTypeUser,
		Message: fmt.Sprintf("I'm planning a %s trip to %s for %s on a %s budget, %s to %s.",
			trip.TravelType, trip.Destination, trip.Duration, trip.Budget,
			trip.DepartureDate.Format(time.DateOnly), trip.ReturnDate.Format(time.DateOnly)),
		Metadata:  &domain.ChatMetadata{Step: StepInitialRequest},
		Timestamp: at(0),
	})

	for i, c := range candidates {
		meta := &domain.ChatMetadata{Step: StepOffer}
		greeting := fmt.Sprintf("Here is my offer for %s.", c.Destination)
		if p, ok := dealgen.FindPersona(c.Agent); ok {
			meta.Specialty = p.Specialty
			meta.Personality = p.Personality
			greeting = fmt.Sprintf(p.Greeting, c.Destination)
		}
		if id, ok := dealIDs[i]; ok {
			meta.DealID = &id
		}
		lines = append(lines, domain.ChatLog{
			TripID:      trip.ID,
			Agent:       c.Agent,
			MessageType: domain.MessageTypeAgent,
			Message: fmt.Sprintf("%s My price is ₹%.2f (was ₹%.2f) with a %d★ hotel, confirmed in %s.",
				greeting, c.Price, c.OriginalPrice, c.HotelRating, c.ConfirmationTime),
			Metadata:  meta,
			Timestamp: at(i + 1),
		})
	}

	names := make([]string, len(kept))
	for i, d := range kept {
		names[i] = d.Agent
	}
	lines = append(lines, domain.ChatLog{
		TripID:      trip.ID,
		Agent:       systemAgent,
		MessageType: domain.MessageTypeAgent,
		Message: fmt.Sprintf("I compared %d offers for %s. Your top %d: %s.",
			len(candidates), trip.Destination, len(kept), strings.Join(names, ", ")),
		Metadata:  &domain.ChatMetadata{Step: StepSelection},
		Timestamp: at(len(candidates) + 1),
	})
	return lines
}
