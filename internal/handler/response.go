package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/habits/internal/ctxkeys"
	"github.com/templui/habits/internal/validation"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON writes data as a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// Error writes a JSON error response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// MethodNotAllowed answers 405 for a known path requested with a method it
// does not serve.
func MethodNotAllowed(allowed ...string) http.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		Error(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method))
	}
}

// decodeJSON reads a single JSON object from the request body. Unknown fields
// are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: unexpected data after object")
	}
	return nil
}

// serviceError answers validation errors with 400 and logs everything else
// as a 500.
func serviceError(w http.ResponseWriter, r *http.Request, err error, msg string, attrs ...any) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		Error(w, http.StatusBadRequest, vErr.Error())
		return
	}

	attrs = append(attrs, "error", err, "request_id", ctxkeys.RequestID(r.Context()))
	slog.Error(msg, attrs...)
	Error(w, http.StatusInternalServerError, "Internal server error")
}
