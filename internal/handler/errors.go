package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/smarttravel/internal/domain"
)

// Error codes of the error envelope.
const (
	codeNotFound        = "not_found"
	codeValidation      = "validation_error"
	codePayloadTooLarge = "payload_too_large"
	codeInternal        = "internal_error"
)

// errorResponse is the single error envelope every endpoint uses:
// {"error":{"code":"...","message":"..."}}.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeServiceError maps a service error onto the envelope.
// notFound is the message for domain.ErrNotFound (e.g. "trip not found")
// because the handler is the layer that knows what was being looked up.
// Anything that is neither not-found nor validation is logged and hidden.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, notFound)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err))
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// writeRequestError reports a request rejected before reaching the service
// layer (malformed body, failed DTO validation, bad path or query value).
func writeRequestError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return
	}
	writeError(w, http.StatusUnprocessableEntity, codeValidation, err.Error())
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Plan: validation error: budget is required" → "budget is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if _, after, ok := strings.Cut(msg, domain.ErrValidation.Error()+": "); ok {
		return after
	}
	return msg
}

// validationMessage turns the first validator failure into a sentence.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	default:
		return fe.Field() + " is invalid"
	}
}
