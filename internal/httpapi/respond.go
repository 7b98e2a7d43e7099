package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/studybuddy/internal/auth"
	"github.com/alexanderramin/studybuddy/internal/service"
)

const maxBodyBytes = 1 << 20

// envelope is the body shape of every /api response except health.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error,omitempty"`
}

type apiError struct {
	status  int
	code    string
	message string
}

// classify maps service errors onto HTTP status, code and user message.
func classify(err error) apiError {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return apiError{http.StatusUnauthorized, "unauthenticated", "Authentication required"}
	case errors.Is(err, service.ErrServiceUnavailable):
		return apiError{http.StatusServiceUnavailable, "not_configured",
			"AI study plan generation is not configured on this server."}
	case errors.Is(err, service.ErrNoPendingWork):
		return apiError{http.StatusBadRequest, "no_pending_work",
			"No pending assignments found. Add some assignments to generate a study plan."}
	case errors.Is(err, service.ErrUpstream):
		return apiError{http.StatusBadGateway, "upstream_error", "The AI service failed to produce a study plan."}
	case errors.Is(err, service.ErrMalformedResponse):
		return apiError{http.StatusInternalServerError, "malformed_response",
			"Error parsing AI response. Please try again."}
	case errors.Is(err, service.ErrTooManyGenerations):
		return apiError{http.StatusTooManyRequests, "too_many_generations",
			"A study plan is already being generated. Please wait for it to finish."}
	case errors.Is(err, service.ErrNotFound):
		return apiError{http.StatusNotFound, "not_found", "Resource not found"}
	case errors.Is(err, service.ErrInvalidInput):
		return apiError{http.StatusBadRequest, "invalid_input", err.Error()}
	default:
		return apiError{http.StatusInternalServerError, "internal_error", "Something went wrong"}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// writeError logs err and writes the classified response. Internal detail
// never reaches the client for 5xx responses other than the known codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := classify(err)
	if e.status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "code", e.code, "error", err)
	} else {
		s.logger.DebugContext(r.Context(), "request rejected",
			"method", r.Method, "path", r.URL.Path, "code", e.code, "error", err)
	}
	writeJSON(w, e.status, envelope{Success: false, Message: e.message, Code: e.code})
}

func (s *Server) rejectUnauthenticated(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.Is(err, auth.ErrUnauthenticated) {
		err = fmt.Errorf("%w: %v", auth.ErrUnauthenticated, err)
	}
	s.writeError(w, r, err)
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: request body must be a JSON object: %v", service.ErrInvalidInput, err)
	}
	return nil
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
