// Package handler implements the HTTP handlers for the SmartTravel API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, deal.go, etc.) but share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/smarttravel/internal/domain"
	"github.com/pkordes/smarttravel/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types".
type TripServicer interface {
	Plan(ctx context.Context, trip domain.Trip) (domain.Trip, []domain.Deal, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PageParams) (domain.Page[domain.Trip], error)
	Deals(ctx context.Context, tripID uuid.UUID) ([]domain.Deal, error)
}

// DealServicer defines the deal actions of the results page.
type DealServicer interface {
	List(ctx context.Context) ([]domain.Deal, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Deal, error)
	Save(ctx context.Context, id uuid.UUID) (string, error)
	Email(ctx context.Context, id uuid.UUID, to string) (service.EmailResult, error)
	Book(ctx context.Context, id uuid.UUID) (service.Booking, error)
}

// LogServicer defines agent-log listing and export.
type LogServicer interface {
	List(ctx context.Context) ([]domain.AgentLog, error)
	Export(ctx context.Context) ([][]string, error)
	PushToSheets(ctx context.Context) (int, error)
}

// AgentServicer defines the admin panel operations.
type AgentServicer interface {
	List(ctx context.Context) ([]domain.Agent, error)
	Update(ctx context.Context, id uuid.UUID, u service.AgentUpdate) (domain.Agent, error)
	Analytics(ctx context.Context) (domain.Analytics, error)
}

// ChatLogServicer defines transcript lookups.
type ChatLogServicer interface {
	ByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ChatLog, error)
	ByAgent(ctx context.Context, agent string) ([]domain.ChatLog, error)
}

// Services groups the servicers a Server dispatches to.
type Services struct {
	Trips    TripServicer
	Deals    DealServicer
	Logs     LogServicer
	Agents   AgentServicer
	ChatLogs ChatLogServicer
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips    TripServicer
	deals    DealServicer
	logs     LogServicer
	agents   AgentServicer
	chatLogs ChatLogServicer

	validate *validator.Validate
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	v := validator.New()
	// Report JSON field names in validation messages.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Server{
		trips:    svc.Trips,
		deals:    svc.Deals,
		logs:     svc.Logs,
		agents:   svc.Agents,
		chatLogs: svc.ChatLogs,
		validate: v,
		log:      log,
	}
}

// Handler returns the chi router for every endpoint. Cross-cutting
// middleware (request id, logging, CORS, metrics) is applied by the caller.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.createTrip)
			r.Get("/", s.listTrips)
			r.Get("/{id}", s.getTrip)
			r.Get("/{id}/deals", s.listTripDeals)
		})
		r.Route("/deals", func(r chi.Router) {
			r.Get("/", s.listDeals)
			r.Get("/{id}", s.getDeal)
			r.Post("/{id}/save", s.saveDeal)
			r.Post("/{id}/email", s.emailDeal)
			r.Post("/{id}/book", s.bookDeal)
		})
		r.Route("/logs", func(r chi.Router) {
			r.Get("/", s.listLogs)
			r.Get("/export", s.exportLogs)
			r.Post("/sheets", s.pushLogsToSheets)
		})
		r.Get("/agents", s.listAgents)
		r.Patch("/agents/{id}", s.updateAgent)
		r.Get("/analytics", s.getAnalytics)
		r.Get("/chat-logs/trip/{tripId}", s.chatLogsByTrip)
		r.Get("/chat-logs/agent/{agent}", s.chatLogsByAgent)
	})
	return r
}
