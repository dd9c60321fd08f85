package repositories

import (
	"errors"
	"fmt"
)

// Common repository errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrMultipleRows is returned when a lookup expected one row and got several
	ErrMultipleRows = errors.New("multiple rows returned")

	// ErrInvalidID is returned when an invalid ID is provided
	ErrInvalidID = errors.New("invalid ID")

	// ErrConnection is returned when database connection fails
	ErrConnection = errors.New("database connection error")
)

// RepositoryError represents a repository-specific error with additional context
type RepositoryError struct {
	Op      string // Operation that failed
	Entity  string // Entity type
	ID      string // Entity ID (if applicable)
	Err     error  // Underlying error
	Message string // Human-readable message
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.ID != "" {
		return fmt.Sprintf("%s %s operation failed for ID %s: %v", e.Entity, e.Op, e.ID, e.Err)
	}

	return fmt.Sprintf("%s %s operation failed: %v", e.Entity, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new repository error
func NewRepositoryError(op, entity, id string, err error) *RepositoryError {
	return &RepositoryError{
		Op:     op,
		Entity: entity,
		ID:     id,
		Err:    err,
	}
}

// NotFoundError creates a "not found" repository error
func NotFoundError(entity, id string) *RepositoryError {
	return &RepositoryError{
		Op:      "get",
		Entity:  entity,
		ID:      id,
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s with ID %s not found", entity, id),
	}
}

// MultipleRowsError creates an error for a lookup that matched more than one row
func MultipleRowsError(entity, id string) *RepositoryError {
	return &RepositoryError{
		Op:      "get",
		Entity:  entity,
		ID:      id,
		Err:     ErrMultipleRows,
		Message: fmt.Sprintf("expected one %s with ID %s, found several", entity, id),
	}
}

// ConnectionError creates a "connection" repository error
func ConnectionError(err error) *RepositoryError {
	return &RepositoryError{
		Op:      "connect",
		Entity:  "database",
		Err:     ErrConnection,
		Message: fmt.Sprintf("database connection failed: %v", err),
	}
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
