package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrNotFound = errors.New("resource not found")

	// Input errors surface as 4xx responses, never retried.
	ErrEmptyDataset      = errors.New("dataset has no data rows")
	ErrMissingSearchTerm = errors.New("search term is required")
)

// NewNotFoundError tags ErrNotFound with the resource and id.
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// NewStorageError wraps a failure from the document-store client. Storage
// errors surface as 5xx responses with the underlying error text.
func NewStorageError(op string, err error) error {
	return fmt.Errorf("storage %s failed: %w", op, err)
}

// IsNotFoundError reports whether err is a not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
