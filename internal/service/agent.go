package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/pkordes/smarttravel/internal/dealgen"
	"github.com/pkordes/smarttravel/internal/domain"
	"github.com/pkordes/smarttravel/internal/metrics"
	"github.com/pkordes/smarttravel/internal/repo"
)

// Dashboard values shown before any trip has been planned.
const (
	DefaultAvgPrice            = 2845.0
	DefaultPopularDestination  = "Bali"
	DefaultFastestConfirmation = "2.3 min"
)

// AgentUpdate is the set of agent fields an operator may change.
type AgentUpdate struct {
	IsActive *bool
}

// AgentService implements the admin panel: roster, toggles and analytics.
type AgentService struct {
	agents    repo.AgentRepo
	agentLogs repo.AgentLogRepo
	deals     repo.DealRepo
	metrics   *metrics.Metrics
	log       *slog.Logger
}

// NewAgentService constructs an AgentService backed by the provided repos.
func NewAgentService(agents repo.AgentRepo, agentLogs repo.AgentLogRepo, deals repo.DealRepo, m *metrics.Metrics, log *slog.Logger) *AgentService {
	if log == nil {
		log = slog.Default()
	}
	return &AgentService{agents: agents, agentLogs: agentLogs, deals: deals, metrics: m, log: log}
}

// List returns the agent roster.
func (s *AgentService) List(ctx context.Context) ([]domain.Agent, error) {
	agents, err := s.agents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.AgentService.List: %w", err)
	}
	return agents, nil
}

// Update applies an admin change to one agent.
func (s *AgentService) Update(ctx context.Context, id uuid.UUID, u AgentUpdate) (domain.Agent, error) {
	if u.IsActive == nil {
		return domain.Agent{}, fmt.Errorf("service.AgentService.Update: %w: isActive is required", domain.ErrValidation)
	}
	agent, err := s.agents.SetActive(ctx, id, *u.IsActive)
	if err != nil {
		return domain.Agent{}, fmt.Errorf("service.AgentService.Update: %w", err)
	}
	return agent, nil
}

// Analytics summarises the agent logs and deals for the dashboard.
func (s *AgentService) Analytics(ctx context.Context) (domain.Analytics, error) {
	logs, err := s.agentLogs.List(ctx)
	if err != nil {
		return domain.Analytics{}, fmt.Errorf("service.AgentService.Analytics: %w", err)
	}
	counts, err := s.deals.CountByDestination(ctx)
	if err != nil {
		return domain.Analytics{}, fmt.Errorf("service.AgentService.Analytics: %w", err)
	}

	out := domain.Analytics{
		AvgPrice:               DefaultAvgPrice,
		MostPopularDestination: DefaultPopularDestination,
		FastestConfirmation:    DefaultFastestConfirmation,
	}

	if len(logs) > 0 {
		var sum float64
		for _, l := range logs {
			sum += l.Price
		}
		out.AvgPrice = round2(sum / float64(len(logs)))

		fastest := logs[0].DeliveryTime
		for _, l := range logs[1:] {
			if dealgen.ParseMinutes(l.DeliveryTime) < dealgen.ParseMinutes(fastest) {
				fastest = l.DeliveryTime
			}
		}
		out.FastestConfirmation = fastest
	}

	if len(counts) > 0 {
		best := counts[0]
		for _, c := range counts[1:] {
			if c.Count >= best.Count {
				best = c
			}
		}
		out.MostPopularDestination = best.Destination
	}

	return out, nil
}

// RefreshStats recomputes every agent's average price and confirmation time
// from the agent logs. Agents without logs keep their previous values.
func (s *AgentService) RefreshStats(ctx context.Context) (err error) {
	defer func() { s.metrics.StatsRefreshed(err) }()

	logs, err := s.agentLogs.List(ctx)
	if err != nil {
		return fmt.Errorf("service.AgentService.RefreshStats: %w", err)
	}

	type acc struct {
		price, minutes float64
		n              int
	}
	byAgent := map[string]*acc{}
	order := []string{}
	for _, l := range logs {
		a, ok := byAgent[l.Agent]
		if !ok {
			a = &acc{}
			byAgent[l.Agent] = a
			order = append(order, l.Agent)
		}
		a.price += l.Price
		a.minutes += dealgen.ParseMinutes(l.DeliveryTime)
		a.n++
	}

	for _, name := range order {
		a := byAgent[name]
		stats := domain.AgentStats{
			Name:                name,
			AvgPrice:            round2(a.price / float64(a.n)),
			AvgConfirmationTime: fmt.Sprintf("%.1f min", a.minutes/float64(a.n)),
		}
		if err := s.agents.UpdateStats(ctx, stats); err != nil {
			return fmt.Errorf("service.AgentService.RefreshStats: %w", err)
		}
	}

	s.log.InfoContext(ctx, "agent stats refreshed", "agents", len(order), "logs", len(logs))
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
