package service

import (
	"errors"
	"fmt"
)

// ValidationError rejects bad input before any write. The caller can
// correct the input and retry.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// NewValidationError creates a ValidationError with a formatted reason
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// PermissionError rejects a mutating call from a viewer tier that is not
// allowed to make it. Distinct from InvalidStateError so callers can tell
// "not allowed" apart from "not legal right now".
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Reason)
}

// NewPermissionError creates a PermissionError with a formatted reason
func NewPermissionError(format string, args ...any) error {
	return &PermissionError{Reason: fmt.Sprintf(format, args...)}
}

// InvalidStateError rejects an operation that is not legal in the current
// state, such as settling an already-settled prediction. No partial effect
// is left behind.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state: %s", e.Reason)
}

// NewInvalidStateError creates an InvalidStateError with a formatted reason
func NewInvalidStateError(format string, args ...any) error {
	return &InvalidStateError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError surfaces a missing record to the caller. A missing bankroll
// singleton is a setup bug, never a zero balance.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given entity and ID
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConsistencyError signals that the ledger invariant already broke upstream.
// It is fatal to the operation and must never be swallowed.
type ConsistencyError struct {
	Reason string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("ledger consistency violated: %s", e.Reason)
}

// NewConsistencyError creates a ConsistencyError with a formatted reason
func NewConsistencyError(format string, args ...any) error {
	return &ConsistencyError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsPermission reports whether err is (or wraps) a PermissionError
func IsPermission(err error) bool {
	var target *PermissionError
	return errors.As(err, &target)
}

// IsInvalidState reports whether err is (or wraps) an InvalidStateError
func IsInvalidState(err error) bool {
	var target *InvalidStateError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConsistency reports whether err is (or wraps) a ConsistencyError
func IsConsistency(err error) bool {
	var target *ConsistencyError
	return errors.As(err, &target)
}
