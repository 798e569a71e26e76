package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/lead-insights/internal/entity"
	"github.com/xavierca1/lead-insights/internal/usecase"
)

type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

type errorBody struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError is the single funnel every handler error goes through:
// {"error":{"message","stack?"}}, stack only outside production.
func writeError(w http.ResponseWriter, r *http.Request, log *logrus.Entry, err error) {
	status := http.StatusInternalServerError

	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		status = appErr.Status
	case usecase.IsDomainError(err):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		status = http.StatusNotFound
	}

	if status >= http.StatusInternalServerError {
		log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("request failed")
	}

	body := errorBody{Message: err.Error()}
	if os.Getenv("ENVIRONMENT") == "development" {
		body.Stack = string(debug.Stack())
	}

	writeJSON(w, status, errorResponse{Error: body})
}

// NotFound answers unmatched routes with the same structured shape.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{
		Error: errorBody{Message: "Route " + r.Method + " " + r.URL.Path + " not found"},
	})
}
