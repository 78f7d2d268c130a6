package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/smarttravel/internal/domain"
)

// ChatLogRepo defines the persistence operations for chat transcripts.
type ChatLogRepo interface {
	// Create inserts a chat line. A zero Timestamp is replaced by now().
	Create(ctx context.Context, log domain.ChatLog) (domain.ChatLog, error)

	// ListByTrip returns a trip's transcript, oldest first.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ChatLog, error)

	// ListByAgent returns every line spoken by or to an agent, newest first.
	ListByAgent(ctx context.Context, agent string) ([]domain.ChatLog, error)
}

type pgChatLogRepo struct {
	db db
}

// NewChatLogRepo constructs a ChatLogRepo backed by the provided db connection.
func NewChatLogRepo(db db) ChatLogRepo {
	return &pgChatLogRepo{db: db}
}

const chatLogColumns = `id, trip_id, agent, message_type, message, metadata, "timestamp", created_at`

func (r *pgChatLogRepo) Create(ctx context.Context, log domain.ChatLog) (domain.ChatLog, error) {
	const q = `
		INSERT INTO chat_logs (trip_id, agent, message_type, message, metadata, "timestamp")
		VALUES (@trip_id, @agent, @message_type, @message, @metadata::jsonb,
		        COALESCE(@timestamp, now()))
		RETURNING ` + chatLogColumns

	meta, err := jsonOrNull(log.Metadata)
	if err != nil {
		return domain.ChatLog{}, fmt.Errorf("repo.ChatLogRepo.Create: metadata: %w", err)
	}

	args := pgx.NamedArgs{
		"trip_id":      log.TripID,
		"agent":        log.Agent,
		"message_type": log.MessageType,
		"message":      log.Message,
		"metadata":     meta,
		"timestamp":    pgtype.Timestamptz{Time: log.Timestamp, Valid: !log.Timestamp.IsZero()},
	}

	result, err := scanChatLog(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ChatLog{}, fmt.Errorf("repo.ChatLogRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgChatLogRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ChatLog, error) {
	const q = `
		SELECT ` + chatLogColumns + `
		FROM chat_logs
		WHERE trip_id = @trip_id
		ORDER BY "timestamp", created_at, id`

	logs, err := r.query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ChatLogRepo.ListByTrip: %w", err)
	}
	return logs, nil
}

func (r *pgChatLogRepo) ListByAgent(ctx context.Context, agent string) ([]domain.ChatLog, error) {
	const q = `
		SELECT ` + chatLogColumns + `
		FROM chat_logs
		WHERE agent = @agent
		ORDER BY "timestamp" DESC, created_at DESC, id`

	logs, err := r.query(ctx, q, pgx.NamedArgs{"agent": agent})
	if err != nil {
		return nil, fmt.Errorf("repo.ChatLogRepo.ListByAgent: %w", err)
	}
	return logs, nil
}

func (r *pgChatLogRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.ChatLog, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []domain.ChatLog{}
	for rows.Next() {
		l, err := scanChatLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return logs, nil
}

func scanChatLog(s scanner) (domain.ChatLog, error) {
	var (
		l      domain.ChatLog
		id     pgtype.UUID
		tripID pgtype.UUID
		meta   []byte
	)
	err := s.Scan(&id, &tripID, &l.Agent, &l.MessageType, &l.Message, &meta, &l.Timestamp, &l.CreatedAt)
	if err != nil {
		return domain.ChatLog{}, err
	}
	l.ID = uuid.UUID(id.Bytes)
	l.TripID = uuid.UUID(tripID.Bytes)
	if len(meta) > 0 {
		var m domain.ChatMetadata
		if err := json.Unmarshal(meta, &m); err != nil {
			return domain.ChatLog{}, fmt.Errorf("metadata: %w", err)
		}
		l.Metadata = &m
	}
	return l, nil
}
