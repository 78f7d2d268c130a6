package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/smarttravel/internal/service"
)

const exportFilename = "travel-agent-logs.csv"

type sheetsResponse struct {
	Message string `json:"message"`
	Rows    int    `json:"rows"`
}

// listLogs handles GET /api/logs.
func (s *Server) listLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := s.logs.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(logs))
}

// exportLogs handles GET /api/logs/export.
// It returns every agent log as a CSV attachment. Use ?format=json to get
// the same rows as JSON arrays instead.
func (s *Server) exportLogs(w http.ResponseWriter, r *http.Request) {
	records, err := s.logs.Export(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, append([][]string{service.LogHeader}, records...))
		return
	}

	body, err := buildCSV(records)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
}

// buildCSV encodes the header and records. Fields containing commas or
// quotes are quoted by encoding/csv.
func buildCSV(records [][]string) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(service.LogHeader); err != nil {
		return nil, err
	}
	if err := cw.WriteAll(records); err != nil {
		return nil, err
	}
	return &buf, nil
}

// pushLogsToSheets handles POST /api/logs/sheets.
func (s *Server) pushLogsToSheets(w http.ResponseWriter, r *http.Request) {
	n, err := s.logs.PushToSheets(r.Context())
	if err != nil {
		s.log.ErrorContext(r.Context(), "sheets push failed", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "failed to send logs to Google Sheets")
		return
	}
	writeJSON(w, http.StatusOK, sheetsResponse{
		Message: "Logs sent to Google Sheets successfully",
		Rows:    n,
	})
}
