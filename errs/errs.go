// Package errs defines the error taxonomy shared by the engine and its
// primitives. Every failure carries a machine-readable category the service
// layer can map to a response code, plus optional structured metadata.
package errs

import (
	"errors"
	"fmt"
)

// Category classifies an engine failure.
type Category string

const (
	// Validation means raw data failed its schema check during hydration.
	Validation Category = "validation"
	// IllegalAction means an action was rejected by the current machine state.
	IllegalAction Category = "illegal_action"
	// UnknownType means hydrator dispatch fell through: a programmer error.
	UnknownType Category = "unknown_type"
	// EmptyResource means a draw was attempted on an exhausted container.
	EmptyResource Category = "empty_resource"
	// Configuration means a game definition or action log is malformed.
	Configuration Category = "configuration"
)

// Error is the error type propagated out of the engine. It is never retried
// or swallowed internally; the caller decides how to surface it.
type Error struct {
	Category Category
	Message  string
	Meta     map[string]any
	cause    error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates an error with the given category.
func New(category Category, message string) *Error {
	return &Error{Category: category, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a category and message to an underlying error.
func Wrap(err error, category Category, message string) *Error {
	return &Error{Category: category, Message: message, cause: err}
}

// WithMeta attaches one structured metadata entry and returns the error for
// chaining.
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// CategoryOf returns the category of err, or "" if err is not an engine error.
func CategoryOf(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return ""
}

// Is reports whether err is an engine error of the given category.
func Is(err error, category Category) bool {
	return CategoryOf(err) == category
}

// MetaOf returns the metadata attached to err, or nil.
func MetaOf(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Meta
	}
	return nil
}
