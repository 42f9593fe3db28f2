package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategorySettings Category = "settings"
	CategoryStorage  Category = "storage"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// GameError is a structured error with a code, explanation and suggestion.
type GameError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (runtime, storage, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *GameError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *GameError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a GameError with the same code.
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *GameError) WithSuggestion(s string) *GameError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *GameError) WithDetail(d string) *GameError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detailed explanation to the error.
func (e *GameError) WithDetailf(format string, args ...any) *GameError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *GameError) Wrap(err error) *GameError {
	e.Wrapped = err
	return e
}

// New creates a GameError from a registered error code.
func New(code string) *GameError {
	template, ok := registry[code]
	if !ok {
		return &GameError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &GameError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new GameError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *GameError {
	return &GameError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a GameError.
func FromError(err error, code string) *GameError {
	if err == nil {
		return nil
	}
	if ge, ok := err.(*GameError); ok {
		return ge
	}
	return New(code).Wrap(err)
}
