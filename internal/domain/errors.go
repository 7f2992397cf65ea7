// Package domain defines core types, interfaces, and errors for the
// sports-administration service.
package domain

import "fmt"

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// UnauthenticatedError indicates the request carries no valid identity.
// Callers must authenticate; this is distinct from ForbiddenError.
type UnauthenticatedError struct {
	Message string
}

func (e *UnauthenticatedError) Error() string { return e.Message }

// ForbiddenError indicates an authenticated principal lacks the required role.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError indicates a conflict (e.g., duplicate resource).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// InvalidSetSequenceError indicates set numbers are not contiguous from 1.
type InvalidSetSequenceError struct {
	Message string
}

func (e *InvalidSetSequenceError) Error() string { return e.Message }

// InvalidSetScoreError indicates a set score does not describe a completed
// set under the match's scoring rules.
type InvalidSetScoreError struct {
	Message string
}

func (e *InvalidSetScoreError) Error() string { return e.Message }

// WinnerMismatchError indicates a completed match's declared winner disagrees
// with the winner derived from its sets.
type WinnerMismatchError struct {
	Message string
}

func (e *WinnerMismatchError) Error() string { return e.Message }

// MatchAlreadyDecidedError indicates sets were recorded beyond the point at
// which one side had already won the required majority.
type MatchAlreadyDecidedError struct {
	Message string
}

func (e *MatchAlreadyDecidedError) Error() string { return e.Message }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrUnauthenticated creates an UnauthenticatedError with a formatted message.
func ErrUnauthenticated(format string, args ...interface{}) *UnauthenticatedError {
	return &UnauthenticatedError{Message: fmt.Sprintf(format, args...)}
}

// ErrForbidden creates a ForbiddenError with a formatted message.
func ErrForbidden(format string, args ...interface{}) *ForbiddenError {
	return &ForbiddenError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ErrInvalidSetSequence creates an InvalidSetSequenceError with a formatted message.
func ErrInvalidSetSequence(format string, args ...interface{}) *InvalidSetSequenceError {
	return &InvalidSetSequenceError{Message: fmt.Sprintf(format, args...)}
}

// ErrInvalidSetScore creates an InvalidSetScoreError with a formatted message.
func ErrInvalidSetScore(format string, args ...interface{}) *InvalidSetScoreError {
	return &InvalidSetScoreError{Message: fmt.Sprintf(format, args...)}
}

// ErrWinnerMismatch creates a WinnerMismatchError with a formatted message.
func ErrWinnerMismatch(format string, args ...interface{}) *WinnerMismatchError {
	return &WinnerMismatchError{Message: fmt.Sprintf(format, args...)}
}

// ErrMatchAlreadyDecided creates a MatchAlreadyDecidedError with a formatted message.
func ErrMatchAlreadyDecided(format string, args ...interface{}) *MatchAlreadyDecidedError {
	return &MatchAlreadyDecidedError{Message: fmt.Sprintf(format, args...)}
}
