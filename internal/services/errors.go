package services

import (
	"errors"

	"github.com/kylo18/practice-exam-service/internal/repositories"
	"github.com/kylo18/practice-exam-service/internal/validator"
)

// Sentinel errors for the practice exam domain. Handlers map these to HTTP
// statuses; services wrap them with %w to add context.
var (
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrExamNotFound         = errors.New("practice exam not found")
	ErrDistributionNotFound = errors.New("difficulty distribution not found")
	ErrSettingNotFound      = errors.New("practice exam setting not found")

	// The approved pool has no questions at all for the requested scope.
	ErrInsufficientQuestionPool = errors.New("insufficient question pool")

	// The requested difficulty split is malformed.
	ErrInvalidDistribution = errors.New("invalid difficulty distribution")

	// Exam assembly could not be committed; nothing was persisted.
	ErrPersistenceFailed = errors.New("failed to persist practice exam")

	// Practice exams are disabled for this user and subject.
	ErrPracticeExamDisabled = errors.New("practice exam is disabled for this subject")
)

// ValidationError aliases the validator package's error types so services
// can return them directly.
type ValidationError = validator.ValidationError
type ValidationErrors = validator.ValidationErrors

// NewValidationError builds a single-field business rule violation.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    "business_logic",
	}
}

// IsNotFoundError reports whether err represents a missing record, either a
// domain sentinel or a repository-level not-found.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrSubjectNotFound) ||
		errors.Is(err, ErrExamNotFound) ||
		errors.Is(err, ErrDistributionNotFound) ||
		errors.Is(err, ErrSettingNotFound) ||
		repositories.IsNotFoundError(err)
}

// IsValidationError reports whether err carries field-level rule violations.
func IsValidationError(err error) bool {
	var single *ValidationError
	var multi ValidationErrors
	return errors.As(err, &single) || errors.As(err, &multi) || errors.Is(err, ErrInvalidDistribution)
}
