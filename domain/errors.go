package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds. Every error a service returns wraps exactly one of these,
// and the transport layer maps the kind to a status code.
var (
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("not permitted")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnauthorized = errors.New("authentication required")
)

var (
	ErrParseUUID      = fmt.Errorf("%w: malformed identifier", ErrNotFound)
	ErrTokenNotFound  = fmt.Errorf("%w: token not found", ErrUnauthorized)
	ErrTokenExpired   = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrTokenInvalid   = fmt.Errorf("%w: token invalid", ErrUnauthorized)
	ErrUserNotAllowed = ErrForbidden
)

// ValidationError reports per-field problems with a request.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, problem string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: problem}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
