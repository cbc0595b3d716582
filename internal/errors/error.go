package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRouting    Category = "routing"
	CategoryConfig     Category = "config"
	CategoryData       Category = "data"
	CategoryServer     Category = "server"
	CategoryValidation Category = "validation"
	CategoryCLI        Category = "cli"
)

// ZooError is a structured error with a code, an explanation and a hint.
type ZooError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type.
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
func (e *ZooError) Error() string {
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
func (e *ZooError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ZooError) WithSuggestion(s string) *ZooError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ZooError) WithDetail(d string) *ZooError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *ZooError) Wrap(err error) *ZooError {
	e.Wrapped = err
	return e
}

// New creates a ZooError from a registered error code.
func New(code string) *ZooError {
	template, ok := registry[code]
	if !ok {
		return &ZooError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ZooError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new ZooError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ZooError {
	return &ZooError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a ZooError. An error that already is
// (or wraps) a ZooError is returned as that ZooError.
func FromError(err error, code string) *ZooError {
	if err == nil {
		return nil
	}
	var ze *ZooError
	if stderrors.As(err, &ze) {
		return ze
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first ZooError in err's chain, or "".
func Code(err error) string {
	var ze *ZooError
	if stderrors.As(err, &ze) {
		return ze.Code
	}
	return ""
}
