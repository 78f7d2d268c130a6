package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/pkordes/smarttravel/internal/domain"
	"github.com/pkordes/smarttravel/internal/metrics"
	"github.com/pkordes/smarttravel/internal/repo"
)

// LogHeader is the column header of the agent-log export.
var LogHeader = []string{"Agent", "Price", "Hotel Rating", "Delivery Time", "Timestamp", "Notes"}

const logTimestampLayout = "2006-01-02 15:04:05"

// SheetAppender appends rows to a spreadsheet and reports how many landed.
type SheetAppender interface {
	Append(ctx context.Context, rows [][]string) (int, error)
}

// LogService reads agent logs and exports them to CSV and Google Sheets.
type LogService struct {
	logs    repo.AgentLogRepo
	sheet   SheetAppender
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewLogService constructs a LogService. sheet is the Sheets client, or the
// mock appender when no credentials are configured.
func NewLogService(logs repo.AgentLogRepo, sheet SheetAppender, m *metrics.Metrics, log *slog.Logger) *LogService {
	if log == nil {
		log = slog.Default()
	}
	return &LogService{logs: logs, sheet: sheet, metrics: m, log: log}
}

// List returns every agent log, newest first.
func (s *LogService) List(ctx context.Context) ([]domain.AgentLog, error) {
	logs, err := s.logs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.List: %w", err)
	}
	return logs, nil
}

// Export returns one record per agent log, newest first, without the header.
// Callers writing CSV prepend LogHeader.
func (s *LogService) Export(ctx context.Context) ([][]string, error) {
	logs, err := s.logs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.Export: %w", err)
	}
	return logRecords(logs), nil
}

// PushToSheets appends every agent log to the configured spreadsheet and
// returns the number of rows written.
func (s *LogService) PushToSheets(ctx context.Context) (int, error) {
	if s.sheet == nil {
		return 0, fmt.Errorf("service.LogService.PushToSheets: no spreadsheet configured")
	}
	records, err := s.Export(ctx)
	if err != nil {
		return 0, fmt.Errorf("service.LogService.PushToSheets: %w", err)
	}
	n, err := s.sheet.Append(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("service.LogService.PushToSheets: %w", err)
	}
	s.metrics.SheetsPushed(n)
	s.log.InfoContext(ctx, "agent logs pushed to sheets", "rows", n)
	return n, nil
}

func logRecords(logs []domain.AgentLog) [][]string {
	records := make([][]string, 0, len(logs))
	for _, l := range logs {
		records = append(records, []string{
			l.Agent,
			strconv.FormatFloat(l.Price, 'f', 2, 64),
			strconv.Itoa(l.HotelRating),
			l.DeliveryTime,
			l.CreatedAt.UTC().Format(logTimestampLayout),
			l.Notes,
		})
	}
	return records
}
