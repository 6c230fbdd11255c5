// Package errors provides the error taxonomy shared by the store, the
// migration runner and the command surface. All service-layer errors should
// use AppError so callers can decide between retrying and surfacing a
// user-facing message without parsing strings.
package errors

import (
	"fmt"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, the entity and constraint it
// concerns, and an optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Entity     string `json:"entity,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	Version    int64  `json:"version,omitempty"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Version != 0 {
		return fmt.Sprintf("%s (version %d)", e.Message, e.Version)
	}
	return e.Message
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so that
// errors.Is(err, ErrNotFound) matches wrapped and re-messaged copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Entity:     sentinel.Entity,
		Constraint: sentinel.Constraint,
		Version:    sentinel.Version,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Entity:     sentinel.Entity,
		Constraint: sentinel.Constraint,
		Version:    sentinel.Version,
		Internal:   sentinel.Internal,
	}
}

// Integrity creates an IntegrityViolation-family error for the given table
// and constraint.
func Integrity(sentinel *AppError, entity, constraint, message string, internal error) *AppError {
	err := WithMessage(sentinel, message)
	err.Entity = entity
	err.Constraint = constraint
	err.Internal = internal
	return err
}

// Migration creates a MigrationFailure for the given schema version.
func Migration(version int64, message string, internal error) *AppError {
	err := WithMessage(ErrMigrationFailed, message)
	err.Version = version
	err.Entity = "schema_migrations"
	err.Internal = internal
	return err
}

// Store lifecycle errors. Both are fatal to startup.
var (
	ErrMigrationFailed  = &AppError{Code: "MIGRATION_FAILED", Message: "Schema migration failed", StatusCode: http.StatusInternalServerError}
	ErrStoreUnavailable = &AppError{Code: "STORE_UNAVAILABLE", Message: "The data store could not be opened", StatusCode: http.StatusServiceUnavailable}
)

// Authentication errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "A valid session token is required", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput       = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound           = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrIntegrityViolation = &AppError{Code: "INTEGRITY_VIOLATION", Message: "The change would violate a data integrity constraint", StatusCode: http.StatusConflict}
	ErrInternalServer     = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Client errors.
var (
	ErrClientNotFound      = &AppError{Code: "CLIENT_NOT_FOUND", Message: "Client not found", StatusCode: http.StatusNotFound, Entity: "clients"}
	ErrDuplicateClient     = &AppError{Code: "DUPLICATE_CLIENT", Message: "A client with this identifier already exists", StatusCode: http.StatusConflict, Entity: "clients", Constraint: "pk_clients_id"}
	ErrClientHasDependents = &AppError{Code: "CLIENT_HAS_DEPENDENTS", Message: "Client still has trades or suitability letters", StatusCode: http.StatusConflict, Entity: "clients"}
)

// Trade errors.
var (
	ErrTradeNotFound = &AppError{Code: "TRADE_NOT_FOUND", Message: "Trade not found", StatusCode: http.StatusNotFound, Entity: "trades"}
)

// Suitability letter errors.
var (
	ErrLetterNotFound = &AppError{Code: "LETTER_NOT_FOUND", Message: "Suitability letter not found", StatusCode: http.StatusNotFound, Entity: "suitability_letters"}
)
