package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired is returned when the server rejects the bearer token on a
// non-auth endpoint. The session store reacts by clearing persisted state.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx response from the server. Message carries the
// server-provided error text when present, otherwise a generic fallback.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// errorBody is the shape the server uses for error payloads. Some endpoints
// use "error", others "message".
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// fallbackMessage returns a generic message for a status code when the server
// did not include one.
func fallbackMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusUnauthorized:
		return "authentication required"
	case http.StatusForbidden:
		return "you don't have permission to perform this action"
	case http.StatusNotFound:
		return "resource not found"
	default:
		return "something went wrong, please try again"
	}
}
