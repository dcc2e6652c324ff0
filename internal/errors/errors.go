// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrConfigInvalid = errors.New("invalid configuration")
	ErrDataNotFound  = errors.New("data not found")
	ErrDatabaseError = errors.New("database error")
	ErrRunNotFound   = errors.New("valuation run not found")
)

// InsufficientDataError is returned when a required input is zero or absent:
// zero shares outstanding, zero total capital, empty quarterly history.
// The engine never substitutes a default for the missing value.
type InsufficientDataError struct {
	Field   string
	Message string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data [%s]: %s", e.Field, e.Message)
}

// NewInsufficientDataError creates a new InsufficientDataError.
func NewInsufficientDataError(field, message string) *InsufficientDataError {
	return &InsufficientDataError{Field: field, Message: message}
}

// DomainError is returned when an economically invalid configuration is
// detected, such as a terminal growth rate at or above the discount rate.
type DomainError struct {
	Stage   string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error [%s]: %s", e.Stage, e.Message)
}

// NewDomainError creates a new DomainError.
func NewDomainError(stage, message string) *DomainError {
	return &DomainError{Stage: stage, Message: message}
}

// NonConvergenceError is returned when iterative root finding exhausts its
// iteration budget without finding a solution.
type NonConvergenceError struct {
	Operation  string
	Iterations int
	Low        float64
	High       float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("%s did not converge after %d iterations in [%.4f, %.4f]",
		e.Operation, e.Iterations, e.Low, e.High)
}

// NewNonConvergenceError creates a new NonConvergenceError.
func NewNonConvergenceError(operation string, iterations int, low, high float64) *NonConvergenceError {
	return &NonConvergenceError{Operation: operation, Iterations: iterations, Low: low, High: high}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// StageError annotates an error with the valuation pipeline stage that
// produced it. The pipeline aborts on the first stage failure.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps err with the failing stage name.
func NewStageError(stage string, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// DataError represents a data-related error from the provider boundary.
type DataError struct {
	DataType string
	Ticker   string
	Message  string
	Err      error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s] %s: %s: %v", e.DataType, e.Ticker, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s] %s: %s", e.DataType, e.Ticker, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(dataType, ticker, message string, err error) *DataError {
	return &DataError{DataType: dataType, Ticker: ticker, Message: message, Err: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
