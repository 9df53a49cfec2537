package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyPaid      = errors.New("rent is already paid")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation failed")
)

// EquipmentUnavailableError aggregates every requested equipment unit that
// cannot be allocated, so the caller sees the full list rather than the
// first offender.
type EquipmentUnavailableError struct {
	Items []string
}

func (e *EquipmentUnavailableError) Error() string {
	return fmt.Sprintf("equipment unavailable or not found: %s", strings.Join(e.Items, ", "))
}

func (e *EquipmentUnavailableError) Is(target error) bool {
	return target == ErrValidation
}

// ValidationError carries a user-facing message for a business-rule
// violation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
