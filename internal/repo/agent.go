package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/smarttravel/internal/domain"
)

// AgentRepo defines the persistence operations for the agent roster.
// Agents are seeded by migration; nothing here inserts or deletes them.
type AgentRepo interface {
	// List returns every agent in roster order.
	List(ctx context.Context) ([]domain.Agent, error)

	// SetActive toggles an agent. Returns domain.ErrNotFound for an unknown id.
	SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.Agent, error)

	// UpdateStats stores recomputed averages for the named agent.
	// Unknown names are ignored.
	UpdateStats(ctx context.Context, stats domain.AgentStats) error
}

type pgAgentRepo struct {
	db db
}

// NewAgentRepo constructs an AgentRepo backed by the provided db connection.
func NewAgentRepo(db db) AgentRepo {
	return &pgAgentRepo{db: db}
}

const agentColumns = `id, name, is_active, avg_price, avg_confirmation_time, created_at`

func (r *pgAgentRepo) List(ctx context.Context) ([]domain.Agent, error) {
	const q = `SELECT ` + agentColumns + ` FROM agents ORDER BY created_at, name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.AgentRepo.List: %w", err)
	}
	defer rows.Close()

	agents := []domain.Agent{}
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.AgentRepo.List: scan: %w", err)
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AgentRepo.List: rows: %w", err)
	}
	return agents, nil
}

func (r *pgAgentRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.Agent, error) {
	const q = `
		UPDATE agents
		SET is_active = @is_active
		WHERE id = @id
		RETURNING ` + agentColumns

	result, err := scanAgent(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "is_active": active}))
	if err != nil {
		return domain.Agent{}, fmt.Errorf("repo.AgentRepo.SetActive: %w", err)
	}
	return result, nil
}

func (r *pgAgentRepo) UpdateStats(ctx context.Context, stats domain.AgentStats) error {
	const q = `
		UPDATE agents
		SET avg_price             = @avg_price,
		    avg_confirmation_time = @avg_confirmation_time
		WHERE name = @name`

	args := pgx.NamedArgs{
		"name":                  stats.Name,
		"avg_price":             stats.AvgPrice,
		"avg_confirmation_time": stats.AvgConfirmationTime,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.AgentRepo.UpdateStats: %w", err)
	}
	return nil
}

func scanAgent(s scanner) (domain.Agent, error) {
	var (
		a  domain.Agent
		id pgtype.UUID
	)
	if err := s.Scan(&id, &a.Name, &a.IsActive, &a.AvgPrice, &a.AvgConfirmationTime, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Agent{}, domain.ErrNotFound
		}
		return domain.Agent{}, err
	}
	a.ID = uuid.UUID(id.Bytes)
	return a, nil
}
