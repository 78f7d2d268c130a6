// Package main is the entry point for the SmartTravel API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/smarttravel/internal/config"
	"github.com/pkordes/smarttravel/internal/handler"
	"github.com/pkordes/smarttravel/internal/metrics"
	"github.com/pkordes/smarttravel/internal/middleware"
	"github.com/pkordes/smarttravel/internal/provider"
	"github.com/pkordes/smarttravel/internal/repo"
	"github.com/pkordes/smarttravel/internal/scheduler"
	"github.com/pkordes/smarttravel/internal/service"
	"github.com/pkordes/smarttravel/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Error("dotenv error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if err := migrate(ctx, pool); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	// --- Services ---------------------------------------------------------
	m := metrics.New()

	trips := repo.NewTripRepo(pool)
	deals := repo.NewDealRepo(pool)
	agentLogs := repo.NewAgentLogRepo(pool)
	agents := repo.NewAgentRepo(pool)
	chatLogs := repo.NewChatLogRepo(pool)

	notifier, err := newNotifier(ctx, cfg, logger)
	if err != nil {
		slog.Error("mail setup failed", "error", err)
		os.Exit(1)
	}
	sheet, err := newSheetAppender(ctx, cfg, logger)
	if err != nil {
		slog.Error("sheets setup failed", "error", err)
		os.Exit(1)
	}

	tripDeps := service.TripDeps{
		Trips:     trips,
		Deals:     deals,
		AgentLogs: agentLogs,
		Agents:    agents,
		ChatLogs:  chatLogs,
		Tx:        repo.NewTransactor(pool),
		Notifier:  notifier,
		Metrics:   m,
		Logger:    logger,
	}
	// Assigned only when configured so the interface stays nil otherwise.
	if cfg.DealProvider.Enabled() {
		tripDeps.Provider = provider.New(cfg.DealProvider.URL, cfg.DealProvider.APIKey, cfg.DealProvider.Timeout)
		slog.Info("remote deal provider enabled", "url", cfg.DealProvider.URL)
	}

	agentSvc := service.NewAgentService(agents, agentLogs, deals, m, logger)
	srv := handler.NewServer(handler.Services{
		Trips:    service.NewTripService(tripDeps),
		Deals:    service.NewDealService(deals, notifier, m, logger),
		Logs:     service.NewLogService(agentLogs, sheet, m, logger),
		Agents:   agentSvc,
		ChatLogs: service.NewChatLogService(chatLogs),
	}, logger)

	// --- Background jobs --------------------------------------------------
	sched := scheduler.New(logger)
	if err := sched.Add("agent-stats", cfg.AgentStatsCron, agentSvc.RefreshStats); err != nil {
		slog.Error("invalid AGENT_STATS_CRON", "error", err)
		os.Exit(1)
	}
	if err := agentSvc.RefreshStats(ctx); err != nil {
		slog.Warn("initial agent stats refresh failed", "error", err)
	}
	sched.Start()

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit → metrics.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(middleware.NewMetrics(m))

	r.Handle("/metrics", m.Handler())
	r.Mount("/", srv.Handler())

	// --- HTTP Server ------------------------------------------------------
	// Planning can wait on the remote provider and the mail API, so the
	// write timeout leaves room beyond the provider timeout.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := sched.Stop(shutdownCtx); err != nil {
		slog.Warn("scheduler stop", "error", err)
	}
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies pending goose migrations through a database/sql view of
// the pool.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	p, err := migrations.NewProvider(db)
	if err != nil {
		return err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("migration applied", "version", res.Source.Version, "duration", res.Duration)
	}
	return nil
}
