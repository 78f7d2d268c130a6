// Package sheets appends agent-log rows to a Google spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Appender is implemented by Client and Mock.
type Appender interface {
	Append(ctx context.Context, rows [][]string) (int, error)
}

// Client appends rows through the Sheets v4 API.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	writeRange    string
}

// NewClient returns a Client for one spreadsheet. writeRange is an A1
// range such as "Logs!A:F"; rows are appended after the last filled row.
func NewClient(ctx context.Context, spreadsheetID, writeRange string, opts ...option.ClientOption) (*Client, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets.NewClient: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, writeRange: writeRange}, nil
}

// Append writes rows as raw values and returns how many were appended.
func (c *Client) Append(ctx context.Context, rows [][]string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		values[i] = cells
	}

	resp, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.writeRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets.Client.Append: %w", err)
	}
	if resp.Updates != nil && resp.Updates.UpdatedRows > 0 {
		return int(resp.Updates.UpdatedRows), nil
	}
	return len(rows), nil
}

// Mock stands in for Client when no spreadsheet is configured. It logs the
// push and reports every row as sent.
type Mock struct {
	log *slog.Logger
}

// NewMock returns a logging Appender.
func NewMock(log *slog.Logger) *Mock {
	return &Mock{log: log}
}

func (m *Mock) Append(ctx context.Context, rows [][]string) (int, error) {
	m.log.InfoContext(ctx, "sheets not configured, mock push", "rows", len(rows))
	return len(rows), nil
}
