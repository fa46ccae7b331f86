package services

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated indicates the requested action needs a logged-in user.
var ErrNotAuthenticated = errors.New("not authenticated")

// NotAuthenticatedError wraps ErrNotAuthenticated with the place the user
// should be returned to after logging in, so the caller can send them to
// login and then resume the original action.
type NotAuthenticatedError struct {
	ReturnTo string
}

// Error implements the error interface.
func (e *NotAuthenticatedError) Error() string {
	return fmt.Sprintf("not authenticated (return to %s)", e.ReturnTo)
}

// Unwrap lets errors.Is match ErrNotAuthenticated.
func (e *NotAuthenticatedError) Unwrap() error {
	return ErrNotAuthenticated
}

// ErrActionInProgress indicates a duplicate submission for an entity whose
// previous request is still in flight.
var ErrActionInProgress = errors.New("action already in progress for this entity")

// ErrPermissionDenied indicates the current identity may not perform the
// action. The client checks this before calling the server, which enforces
// the same rule authoritatively.
var ErrPermissionDenied = errors.New("you don't have permission to perform this action")
