// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// ErrInvalidBody indicates a request body could not be decoded as JSON.
var ErrInvalidBody = errors.New("invalid request body")

// RespondJSON writes data as a JSON body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes it as {"error": msg} with the given status code.
// Server errors are logged at error level, client errors at warn level.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "status", status, "error", err)
	} else {
		logger.Warn("handler error", "status", status, "error", err)
	}
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}

// DecodeJSON decodes the request body into T, limiting reads to maxBytes.
// A maxBytes of zero or less disables the limit.
func DecodeJSON[T any](r *http.Request, maxBytes int64) (T, error) {
	var v T

	var body io.Reader = r.Body
	if maxBytes > 0 {
		body = io.LimitReader(r.Body, maxBytes+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return v, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return v, fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidBody, maxBytes)
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	return v, nil
}
