package service_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/smarttravel/internal/domain"
	"github.com/pkordes/smarttravel/internal/repo"
	"github.com/pkordes/smarttravel/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs. Create methods fall back to echoing their input with a
// fresh ID so planning tests only configure what they assert on.

// ---- repo mocks ------------------------------------------------------------

type mockTripRepo struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PageParams) ([]domain.Trip, int64, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if m.create != nil {
		return m.create(ctx, trip)
	}
	trip.ID = uuid.New()
	return trip, nil
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PageParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockDealRepo struct {
	mu      sync.Mutex
	created []domain.Deal

	create             func(ctx context.Context, deal domain.Deal) (domain.Deal, error)
	getByID            func(ctx context.Context, id uuid.UUID) (domain.Deal, error)
	list               func(ctx context.Context) ([]domain.Deal, error)
	listByTrip         func(ctx context.Context, tripID uuid.UUID) ([]domain.Deal, error)
	countByDestination func(ctx context.Context) ([]repo.DestinationCount, error)
}

func (m *mockDealRepo) Create(ctx context.Context, deal domain.Deal) (domain.Deal, error) {
	if m.create != nil {
		return m.create(ctx, deal)
	}
	deal.ID = uuid.New()
	m.mu.Lock()
	m.created = append(m.created, deal)
	m.mu.Unlock()
	return deal, nil
}
func (m *mockDealRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Deal, error) {
	return m.getByID(ctx, id)
}
func (m *mockDealRepo) List(ctx context.Context) ([]domain.Deal, error) {
	return m.list(ctx)
}
func (m *mockDealRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Deal, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockDealRepo) CountByDestination(ctx context.Context) ([]repo.DestinationCount, error) {
	if m.countByDestination != nil {
		return m.countByDestination(ctx)
	}
	return nil, nil
}

var _ repo.DealRepo = (*mockDealRepo)(nil)

type mockAgentLogRepo struct {
	created []domain.AgentLog

	create func(ctx context.Context, log domain.AgentLog) (domain.AgentLog, error)
	list   func(ctx context.Context) ([]domain.AgentLog, error)
}

func (m *mockAgentLogRepo) Create(ctx context.Context, log domain.AgentLog) (domain.AgentLog, error) {
	if m.create != nil {
		return m.create(ctx, log)
	}
	log.ID = uuid.New()
	m.created = append(m.created, log)
	return log, nil
}
func (m *mockAgentLogRepo) List(ctx context.Context) ([]domain.AgentLog, error) {
	if m.list != nil {
		return m.list(ctx)
	}
	return nil, nil
}

var _ repo.AgentLogRepo = (*mockAgentLogRepo)(nil)

type mockAgentRepo struct {
	updated []domain.AgentStats

	list        func(ctx context.Context) ([]domain.Agent, error)
	setActive   func(ctx context.Context, id uuid.UUID, active bool) (domain.Agent, error)
	updateStats func(ctx context.Context, stats domain.AgentStats) error
}

func (m *mockAgentRepo) List(ctx context.Context) ([]domain.Agent, error) {
	if m.list != nil {
		return m.list(ctx)
	}
	return nil, nil
}
func (m *mockAgentRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.Agent, error) {
	return m.setActive(ctx, id, active)
}
func (m *mockAgentRepo) UpdateStats(ctx context.Context, stats domain.AgentStats) error {
	if m.updateStats != nil {
		return m.updateStats(ctx, stats)
	}
	m.updated = append(m.updated, stats)
	return nil
}

var _ repo.AgentRepo = (*mockAgentRepo)(nil)

type mockChatLogRepo struct {
	created []domain.ChatLog

	create      func(ctx context.Context, log domain.ChatLog) (domain.ChatLog, error)
	listByTrip  func(ctx context.Context, tripID uuid.UUID) ([]domain.ChatLog, error)
	listByAgent func(ctx context.Context, agent string) ([]domain.ChatLog, error)
}

func (m *mockChatLogRepo) Create(ctx context.Context, log domain.ChatLog) (domain.ChatLog, error) {
	if m.create != nil {
		return m.create(ctx, log)
	}
	log.ID = uuid.New()
	m.created = append(m.created, log)
	return log, nil
}
func (m *mockChatLogRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ChatLog, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockChatLogRepo) ListByAgent(ctx context.Context, agent string) ([]domain.ChatLog, error) {
	return m.listByAgent(ctx, agent)
}

var _ repo.ChatLogRepo = (*mockChatLogRepo)(nil)

// mockTransactor runs fn against repos, standing in for a database
// transaction. committed and rolledBack record how fn finished.
type mockTransactor struct {
	repos      repo.Repos
	committed  bool
	rolledBack bool
}

func (m *mockTransactor) InTx(_ context.Context, fn func(repo.Repos) error) error {
	if err := fn(m.repos); err != nil {
		m.rolledBack = true
		return err
	}
	m.committed = true
	return nil
}

var _ repo.Transactor = (*mockTransactor)(nil)

// ---- collaborator mocks ----------------------------------------------------

type mockProvider struct {
	quote func(ctx context.Context, trip domain.Trip) ([]domain.Deal, error)
}

func (m *mockProvider) Quote(ctx context.Context, trip domain.Trip) ([]domain.Deal, error) {
	return m.quote(ctx, trip)
}

var _ service.DealProvider = (*mockProvider)(nil)

type mockNotifier struct {
	topDeals []domain.Deal
	dealTo   string

	sendTopDeals func(ctx context.Context, trip domain.Trip, deals []domain.Deal) error
	sendDeal     func(ctx context.Context, to string, deal domain.Deal) error
}

func (m *mockNotifier) SendTopDeals(ctx context.Context, trip domain.Trip, deals []domain.Deal) error {
	m.topDeals = deals
	if m.sendTopDeals != nil {
		return m.sendTopDeals(ctx, trip, deals)
	}
	return nil
}
func (m *mockNotifier) SendDeal(ctx context.Context, to string, deal domain.Deal) error {
	m.dealTo = to
	if m.sendDeal != nil {
		return m.sendDeal(ctx, to, deal)
	}
	return nil
}

var _ service.Notifier = (*mockNotifier)(nil)

type mockSheet struct {
	rows   [][]string
	append func(ctx context.Context, rows [][]string) (int, error)
}

func (m *mockSheet) Append(ctx context.Context, rows [][]string) (int, error) {
	m.rows = rows
	if m.append != nil {
		return m.append(ctx, rows)
	}
	return len(rows), nil
}

var _ service.SheetAppender = (*mockSheet)(nil)
