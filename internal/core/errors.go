package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors shared across services and mapped to HTTP statuses at the
// handler boundary.
var (
	// ErrUnauthorized means no verified identity accompanied the call.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden means the caller's role set or user status does not permit the operation.
	ErrForbidden = errors.New("operation not allowed for the current user")

	ErrUserNotFound       = errors.New("user not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrSelectionNotFound  = errors.New("team not yet selected for this match")
	ErrPaymentNotFound    = errors.New("payment request not found")
	ErrSummaryNotFound    = errors.New("payment summary not found")

	// ErrInvalidState means the operation is not legal in the entity's current
	// lifecycle state (e.g. submitting a non-pending payment request).
	ErrInvalidState = errors.New("operation not valid in current state")
	// ErrVoteClosed means the voting deadline for the match has passed.
	ErrVoteClosed = errors.New("voting deadline has passed")

	// ErrDuplicateUser means a user document already exists for the email.
	ErrDuplicateUser = errors.New("user already registered")
)

// ValidationError carries field-keyed messages for malformed or out-of-range
// input. Handlers render it as a 400 with the field map in the body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// newValidationError builds a ValidationError for a single field.
func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
