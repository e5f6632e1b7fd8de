package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
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

// Common application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// FailureKind classifies pipeline failures so tests and logs can inspect the
// cause even though the response payload only carries a message. Collaborator
// failures collapse to "no contribution" before they ever reach a payload.
type FailureKind string

const (
	FailureNone         FailureKind = ""
	FailureRecognition  FailureKind = "RECOGNITION"
	FailureMismatch     FailureKind = "MISMATCH"
	FailureEmptyResult  FailureKind = "EMPTY_RESULT"
	FailureCollaborator FailureKind = "COLLABORATOR"
)

// Error constructors
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
