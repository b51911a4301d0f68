// Package respond writes JSON responses and maps domain errors to status
// codes for the HTTP handlers.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBadBody marks a request body that could not be decoded.
var ErrBadBody = errors.New("invalid request body")

type errorResponse struct {
	Detail string              `json:"detail"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		_, _ = w.Write([]byte(`{"detail":"internal error"}`))
	}
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes err with the status it maps to. Unexpected errors are logged
// and reported as 500 without their message.
func Error(w http.ResponseWriter, r *http.Request, log logger.ZapLogger, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		JSON(w, http.StatusNotFound, errorResponse{Detail: "not found"})
	case errors.Is(err, ErrBadBody):
		JSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	default:
		if ve, ok := model.IsValidation(err); ok {
			JSON(w, http.StatusBadRequest, errorResponse{Detail: "validation failed", Fields: ve.Fields})
			return
		}
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		JSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal error"})
	}
}

// Decode reads a JSON body into dst. Any decoding failure wraps ErrBadBody.
func Decode(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrBadBody
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Join(ErrBadBody, err)
	}
	return nil
}

// PathID returns the named URL parameter when it is a valid UUID. Any other
// value cannot name a row, so callers answer 404.
func PathID(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", model.ErrNotFound
	}
	return id.String(), nil
}

// RequestURL rebuilds the absolute URL of r for pagination links.
func RequestURL(r *http.Request) *url.URL {
	u := *r.URL
	u.Host = r.Host
	u.Scheme = "http"
	if r.TLS != nil {
		u.Scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		u.Scheme = proto
	}
	return &u
}
