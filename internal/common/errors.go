package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors with a stable code that
// adapters (HTTP, CLI) can map to their own surfaces.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Failure taxonomy. The extraction core itself never fails; these belong to
// the collaborators around it and must stay distinguishable so callers never
// confuse "could not read the document" with "the document had no records".
var (
	ErrNotADocument  = errors.New("input is not a PDF document")
	ErrDecodeFailure = errors.New("document text could not be extracted")
	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabase      = errors.New("database error")
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
