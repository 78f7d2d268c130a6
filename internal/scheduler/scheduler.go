// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one unit of scheduled work. The context is cancelled when the
// scheduler stops.
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner with structured logging and panic recovery.
type Scheduler struct {
	cron   *cron.Cron
	log    *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// New returns a stopped Scheduler. Schedules use the standard five-field
// cron syntax plus descriptors such as "@every 1m".
func New(log *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	cl := cronLogger{log: log}
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add registers job under name on the given schedule.
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		if err := job(s.ctx); err != nil {
			s.log.Error("scheduled job failed", "job", name, "error", err, "duration_ms", time.Since(start).Milliseconds())
			return
		}
		s.log.Info("scheduled job finished", "job", name, "duration_ms", time.Since(start).Milliseconds())
	})
	if err != nil {
		return fmt.Errorf("scheduler.Scheduler.Add %s: %w", name, err)
	}
	return nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule, cancels running jobs' context and waits for them
// to return or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	s.cancel()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler.Scheduler.Stop: %w", ctx.Err())
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}
