package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/smarttravel/internal/domain"
	"github.com/pkordes/smarttravel/internal/service"
)

func logRepoWith(logs ...domain.AgentLog) *mockAgentLogRepo {
	return &mockAgentLogRepo{list: func(_ context.Context) ([]domain.AgentLog, error) {
		return logs, nil
	}}
}

func sampleLog() domain.AgentLog {
	return domain.AgentLog{
		Agent:        "JourneyGenie",
		Price:        3120.5,
		HotelRating:  4,
		DeliveryTime: "4 min",
		Notes:        "Trip to Paris, France for solo",
		CreatedAt:    time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestLogService_Export(t *testing.T) {
	svc := service.NewLogService(logRepoWith(sampleLog()), nil, nil, nil)

	got, err := svc.Export(context.Background())

	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"JourneyGenie", "3120.50", "4", "4 min", "2026-10-01 09:30:00", "Trip to Paris, France for solo"},
	}, got)
}

func TestLogService_Export_Empty(t *testing.T) {
	svc := service.NewLogService(logRepoWith(), nil, nil, nil)

	got, err := svc.Export(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLogService_Header(t *testing.T) {
	assert.Equal(t, []string{"Agent", "Price", "Hotel Rating", "Delivery Time", "Timestamp", "Notes"}, service.LogHeader)
}

func TestLogService_PushToSheets(t *testing.T) {
	sheet := &mockSheet{}
	svc := service.NewLogService(logRepoWith(sampleLog(), sampleLog()), sheet, nil, nil)

	n, err := svc.PushToSheets(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, sheet.rows, 2)
}

func TestLogService_PushToSheets_Error(t *testing.T) {
	sheetErr := errors.New("403 forbidden")
	sheet := &mockSheet{append: func(_ context.Context, _ [][]string) (int, error) {
		return 0, sheetErr
	}}
	svc := service.NewLogService(logRepoWith(sampleLog()), sheet, nil, nil)

	_, err := svc.PushToSheets(context.Background())

	assert.ErrorIs(t, err, sheetErr)
}
