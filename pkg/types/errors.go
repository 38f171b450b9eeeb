package types

import (
	"errors"
	"fmt"
)

// Configuration errors, reported when a policy, composer or executor is built
var (
	ErrInvalidSize      = errors.New("size must be positive")
	ErrInvalidThreshold = errors.New("threshold out of range")
	ErrInvalidDepth     = errors.New("depth must not be negative")
	ErrInvalidPredicate = errors.New("predicate is required")
	ErrNilPolicy        = errors.New("policy is required")
	ErrUnknownPolicy    = errors.New("unknown policy kind")
)

// ConfigError describes a rejected construction parameter
type ConfigError struct {
	Field string
	Value any
	Err   error
}

// NewConfigError creates a ConfigError for field
func NewConfigError(field string, value any, err error) *ConfigError {
	return &ConfigError{Field: field, Value: value, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// OperationError is the single failure surfaced by a concurrent chunk
// operation. Index is the position of the failing chunk in the input list.
type OperationError struct {
	Index int
	Err   error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("chunk %d: %v", e.Index, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
