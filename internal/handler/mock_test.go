package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/smarttravel/internal/domain"
	"github.com/pkordes/smarttravel/internal/handler"
	"github.com/pkordes/smarttravel/internal/service"
)

// Test doubles for the servicer interfaces.
// Set only the method fields your test needs.

type mockTripServicer struct {
	plan      func(ctx context.Context, trip domain.Trip) (domain.Trip, []domain.Deal, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PageParams) (domain.Page[domain.Trip], error)
	deals     func(ctx context.Context, tripID uuid.UUID) ([]domain.Deal, error)
}

func (m *mockTripServicer) Plan(ctx context.Context, t domain.Trip) (domain.Trip, []domain.Deal, error) {
	return m.plan(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PageParams) (domain.Page[domain.Trip], error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Deals(ctx context.Context, tripID uuid.UUID) ([]domain.Deal, error) {
	return m.deals(ctx, tripID)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockDealServicer struct {
	list    func(ctx context.Context) ([]domain.Deal, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Deal, error)
	save    func(ctx context.Context, id uuid.UUID) (string, error)
	email   func(ctx context.Context, id uuid.UUID, to string) (service.EmailResult, error)
	book    func(ctx context.Context, id uuid.UUID) (service.Booking, error)
}

func (m *mockDealServicer) List(ctx context.Context) ([]domain.Deal, error) { return m.list(ctx) }
func (m *mockDealServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Deal, error) {
	return m.getByID(ctx, id)
}
func (m *mockDealServicer) Save(ctx context.Context, id uuid.UUID) (string, error) {
	return m.save(ctx, id)
}
func (m *mockDealServicer) Email(ctx context.Context, id uuid.UUID, to string) (service.EmailResult, error) {
	return m.email(ctx, id, to)
}
func (m *mockDealServicer) Book(ctx context.Context, id uuid.UUID) (service.Booking, error) {
	return m.book(ctx, id)
}

var _ handler.DealServicer = (*mockDealServicer)(nil)

type mockLogServicer struct {
	list         func(ctx context.Context) ([]domain.AgentLog, error)
	export       func(ctx context.Context) ([][]string, error)
	pushToSheets func(ctx context.Context) (int, error)
}

func (m *mockLogServicer) List(ctx context.Context) ([]domain.AgentLog, error) { return m.list(ctx) }
func (m *mockLogServicer) Export(ctx context.Context) ([][]string, error)      { return m.export(ctx) }
func (m *mockLogServicer) PushToSheets(ctx context.Context) (int, error)       { return m.pushToSheets(ctx) }

var _ handler.LogServicer = (*mockLogServicer)(nil)

type mockAgentServicer struct {
	list      func(ctx context.Context) ([]domain.Agent, error)
	update    func(ctx context.Context, id uuid.UUID, u service.AgentUpdate) (domain.Agent, error)
	analytics func(ctx context.Context) (domain.Analytics, error)
}

func (m *mockAgentServicer) List(ctx context.Context) ([]domain.Agent, error) { return m.list(ctx) }
func (m *mockAgentServicer) Update(ctx context.Context, id uuid.UUID, u service.AgentUpdate) (domain.Agent, error) {
	return m.update(ctx, id, u)
}
func (m *mockAgentServicer) Analytics(ctx context.Context) (domain.Analytics, error) {
	return m.analytics(ctx)
}

var _ handler.AgentServicer = (*mockAgentServicer)(nil)

type mockChatLogServicer struct {
	byTrip  func(ctx context.Context, tripID uuid.UUID) ([]domain.ChatLog, error)
	byAgent func(ctx context.Context, agent string) ([]domain.ChatLog, error)
}

func (m *mockChatLogServicer) ByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ChatLog, error) {
	return m.byTrip(ctx, tripID)
}
func (m *mockChatLogServicer) ByAgent(ctx context.Context, agent string) ([]domain.ChatLog, error) {
	return m.byAgent(ctx, agent)
}

var _ handler.ChatLogServicer = (*mockChatLogServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// errorEnvelope mirrors the JSON error body.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func serve(svc handler.Services, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.NewServer(svc, nil).Handler().ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}
