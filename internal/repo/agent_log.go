package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/smarttravel/internal/domain"
)

// AgentLogRepo defines the persistence operations for agent logs.
type AgentLogRepo interface {
	Create(ctx context.Context, log domain.AgentLog) (domain.AgentLog, error)

	// List returns every agent log, newest first.
	List(ctx context.Context) ([]domain.AgentLog, error)
}

type pgAgentLogRepo struct {
	db db
}

// NewAgentLogRepo constructs an AgentLogRepo backed by the provided db connection.
func NewAgentLogRepo(db db) AgentLogRepo {
	return &pgAgentLogRepo{db: db}
}

func (r *pgAgentLogRepo) Create(ctx context.Context, log domain.AgentLog) (domain.AgentLog, error) {
	const q = `
		INSERT INTO agent_logs (agent, price, hotel_rating, delivery_time, notes)
		VALUES (@agent, @price, @hotel_rating, @delivery_time, @notes)
		RETURNING id, agent, price, hotel_rating, delivery_time, notes, created_at`

	args := pgx.NamedArgs{
		"agent":         log.Agent,
		"price":         log.Price,
		"hotel_rating":  log.HotelRating,
		"delivery_time": log.DeliveryTime,
		"notes":         log.Notes,
	}

	result, err := scanAgentLog(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.AgentLog{}, fmt.Errorf("repo.AgentLogRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgAgentLogRepo) List(ctx context.Context) ([]domain.AgentLog, error) {
	const q = `
		SELECT id, agent, price, hotel_rating, delivery_time, notes, created_at
		FROM agent_logs
		ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.AgentLogRepo.List: %w", err)
	}
	defer rows.Close()

	logs := []domain.AgentLog{}
	for rows.Next() {
		l, err := scanAgentLog(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.AgentLogRepo.List: scan: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AgentLogRepo.List: rows: %w", err)
	}
	return logs, nil
}

func scanAgentLog(s scanner) (domain.AgentLog, error) {
	var (
		l  domain.AgentLog
		id pgtype.UUID
	)
	if err := s.Scan(&id, &l.Agent, &l.Price, &l.HotelRating, &l.DeliveryTime, &l.Notes, &l.CreatedAt); err != nil {
		return domain.AgentLog{}, err
	}
	l.ID = uuid.UUID(id.Bytes)
	return l, nil
}
