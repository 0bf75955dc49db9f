package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/rpggio/mockdata/internal/domain/project"
)

// WriteData writes a success envelope carrying data.
func WriteData(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, mockdata.Envelope[any]{Success: true, Data: data})
}

// WriteError writes a failure envelope.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, mockdata.Envelope[any]{Success: false, Message: message})
}

// writeDomainError maps domain errors to failure envelopes.
func writeDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, mockdata.ErrProjectNotFound):
		WriteError(w, r, http.StatusNotFound, "project not found")
	case errors.Is(err, mockdata.ErrRecordNotFound):
		WriteError(w, r, http.StatusNotFound, "mock data not found")
	case errors.Is(err, mockdata.ErrNoMatch):
		WriteError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, mockdata.ErrInvalidInput):
		WriteError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, project.ErrDuplicateProject):
		WriteError(w, r, http.StatusConflict, err.Error())
	default:
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "request_id", RequestIDFromContext(r.Context()), "error", err)
		WriteError(w, r, http.StatusInternalServerError, "internal error")
	}
}
