package kits

import (
	"errors"
	"net/http"
)

// Domain errors for kit archive operations.
var (
	ErrNotFound         = errors.New("kit not found")
	ErrDuplicate        = errors.New("kit already archived")
	ErrInvalidID        = errors.New("invalid kit id")
	ErrIndexUnavailable = errors.New("kit index requires a database")
)

// MapHTTPStatus maps kit domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrIndexUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
