package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/smarttravel/internal/domain"
)

// decodeBody reads a JSON request body into dst and validates it.
// The returned error is already phrased for the client.
func (s *Server) decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return err
		case errors.Is(err, io.EOF):
			return errors.New("request body is required")
		default:
			return errors.New("request body is not valid JSON")
		}
	}
	if err := s.validate.Struct(dst); err != nil {
		return errors.New(validationMessage(err))
	}
	return nil
}

// pathUUID parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a UUID", name)
	}
	return id, nil
}

// pageParams binds ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func pageParams(r *http.Request) (domain.PageParams, error) {
	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		return domain.PageParams{}, errors.New("page must be an integer")
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		return domain.PageParams{}, errors.New("limit must be an integer")
	}
	return domain.NewPageParams(page, limit), nil
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
