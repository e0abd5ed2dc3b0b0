package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound           = errors.New("resource not found")
	ErrAssessmentNotFound = fmt.Errorf("%w: assessment", ErrNotFound)
	ErrReportNotFound     = fmt.Errorf("%w: report", ErrNotFound)

	// Validation errors
	ErrInvalidActivityLevel = errors.New("invalid activity level")
	ErrInvalidPeriod        = errors.New("invalid target period")
	ErrUnsafeInput          = errors.New("physiologically implausible input")
	ErrSchemaViolation      = errors.New("report schema violation")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewActivityLevelError(level string) error {
	return fmt.Errorf("%w: %q", ErrInvalidActivityLevel, level)
}

func NewPeriodError(weeks float64) error {
	return fmt.Errorf("%w: %.1f weeks", ErrInvalidPeriod, weeks)
}

func NewUnsafeInputError(field string, value float64) error {
	return fmt.Errorf("%w: %s=%.2f", ErrUnsafeInput, field, value)
}

func NewSchemaViolationError(field string, reason string) error {
	return fmt.Errorf("%w: field %s: %s", ErrSchemaViolation, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidActivityLevel) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrUnsafeInput)
}

func IsSchemaViolation(err error) bool {
	return errors.Is(err, ErrSchemaViolation)
}
