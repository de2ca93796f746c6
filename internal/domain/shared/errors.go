// Package shared contains common domain types and errors used across all
// domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors (raised before any network call)
	ErrValidation   = errors.New("validation error")
	ErrInvalidID    = errors.New("invalid ID")
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyValue   = errors.New("value cannot be empty")

	// Authentication and authorization errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNoSession    = errors.New("no active session")

	// Backend errors
	ErrBackend        = errors.New("backend error")
	ErrUnavailable    = errors.New("backend unavailable")
	ErrPartialFailure = errors.New("operation partially completed")

	// State errors
	ErrInvalidState = errors.New("invalid state")
	ErrStale        = errors.New("stale result")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "roadmap", "progress", "session"
	Op      string // Operation that failed, e.g., "Create", "Toggle"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Roadmap domain errors
var (
	ErrRoadmapNotFound = NewDomainError("roadmap", "Find", ErrNotFound, "roadmap not found")
	ErrEmptyTitle      = NewDomainError("roadmap", "Validate", ErrEmptyValue, "title is required")
)

// Module domain errors
var (
	ErrModuleNotFound  = NewDomainError("module", "Find", ErrNotFound, "module not found")
	ErrOrderOutOfRange = NewDomainError("module", "Remove", ErrInvalidInput, "no module at the given order")
)

// Sharing domain errors
var (
	ErrShareTokenNotFound = NewDomainError("sharing", "Resolve", ErrNotFound, "share token is invalid or revoked")
)

// Session domain errors
var (
	ErrBadCredentials = NewDomainError("session", "Login", ErrUnauthorized, "invalid username or password")
	ErrTokenExpired   = NewDomainError("session", "Verify", ErrUnauthorized, "session token expired")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue)
}

// IsAuth checks if the error requires re-authentication.
func IsAuth(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNoSession)
}

// IsBackend checks if the error came from the backend or the network.
func IsBackend(err error) bool {
	return errors.Is(err, ErrBackend) || errors.Is(err, ErrUnavailable)
}

// IsPartialFailure checks if a multi-step operation left a persisted prefix behind.
func IsPartialFailure(err error) bool {
	return errors.Is(err, ErrPartialFailure)
}
