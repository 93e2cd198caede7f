package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"slices"
)

// ClassifiedError is an error with a category, a severity and structured
// context. Construct it with an ErrorBuilder.
type ClassifiedError struct {
	category  ErrorCategory
	severity  ErrorSeverity
	retryable bool
	message   string
	cause     error
	context   map[string]any
}

func (e *ClassifiedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.category, e.severity, e.message, e.cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.category, e.severity, e.message)
}

func (e *ClassifiedError) Unwrap() error { return e.cause }

func (e *ClassifiedError) Category() ErrorCategory { return e.category }

func (e *ClassifiedError) Severity() ErrorSeverity { return e.severity }

// Message returns the message without category prefix or cause.
func (e *ClassifiedError) Message() string { return e.message }

// CanRetry reports whether the failed operation may succeed when repeated.
func (e *ClassifiedError) CanRetry() bool { return e.retryable }

// Value returns one context value.
func (e *ClassifiedError) Value(key string) (any, bool) {
	v, ok := e.context[key]
	return v, ok
}

// ContextKeys returns the context keys in sorted order.
func (e *ClassifiedError) ContextKeys() []string {
	return slices.Sorted(maps.Keys(e.context))
}

// Is matches another ClassifiedError with the same category and message.
func (e *ClassifiedError) Is(target error) bool {
	other, ok := target.(*ClassifiedError)
	return ok && e.category == other.category && e.message == other.message
}

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if stderrors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// HasCategory reports whether the first ClassifiedError in err's chain has
// the given category.
func HasCategory(err error, category ErrorCategory) bool {
	classified, ok := AsClassified(err)
	return ok && classified.category == category
}

// IsRetryable reports whether err carries a retryable classification.
func IsRetryable(err error) bool {
	classified, ok := AsClassified(err)
	return ok && classified.retryable
}
