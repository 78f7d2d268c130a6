package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Repos groups the repositories a planning run writes through, all bound
// to the same connection or transaction.
type Repos struct {
	Trips     TripRepo
	Deals     DealRepo
	AgentLogs AgentLogRepo
	ChatLogs  ChatLogRepo
}

// NewRepos binds every repo in Repos to db.
func NewRepos(db db) Repos {
	return Repos{
		Trips:     NewTripRepo(db),
		Deals:     NewDealRepo(db),
		AgentLogs: NewAgentLogRepo(db),
		ChatLogs:  NewChatLogRepo(db),
	}
}

// Transactor runs fn inside one database transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	InTx(ctx context.Context, fn func(Repos) error) error
}

// beginner is satisfied by *pgxpool.Pool and pgx.Tx. A pgx.Tx begins a
// savepoint, which lets integration tests nest inside their rolled-back tx.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type pgTransactor struct {
	db beginner
}

// NewTransactor constructs a Transactor that begins transactions on db.
func NewTransactor(db beginner) Transactor {
	return &pgTransactor{db: db}
}

func (t *pgTransactor) InTx(ctx context.Context, fn func(Repos) error) error {
	err := pgx.BeginFunc(ctx, t.db, func(tx pgx.Tx) error {
		return fn(NewRepos(tx))
	})
	if err != nil {
		return fmt.Errorf("repo.Transactor.InTx: %w", err)
	}
	return nil
}
