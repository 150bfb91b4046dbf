// Package smt implements the solver-agnostic term-building core: the
// closed Sort/Op algebra, sort inference, and the narrow Backend contract
// every concrete SMT engine adapter must satisfy.
package smt

import (
	"fmt"

	"github.com/pkg/errors"
)

// UsageError reports that a caller violated a documented precondition,
// e.g. passing a non-array sort to a constant-array builder.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string { return e.msg }

// NewUsageError builds an UsageError with a formatted message.
func NewUsageError(format string, args ...interface{}) error {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// NotImplementedError reports an operator, coercion, or backend path that
// the abstract API defines but this implementation does not support.
type NotImplementedError struct {
	msg string
}

func (e *NotImplementedError) Error() string { return e.msg }

// NewNotImplementedError builds a NotImplementedError with a formatted message.
func NewNotImplementedError(format string, args ...interface{}) error {
	return &NotImplementedError{msg: fmt.Sprintf(format, args...)}
}

// BackendError wraps an error surfaced by the underlying SMT engine
// (unknown option, unsupported logic, duplicate symbol).
type BackendError struct {
	cause error
}

func (e *BackendError) Error() string { return e.cause.Error() }
func (e *BackendError) Unwrap() error { return e.cause }

// WrapBackendError wraps a raw backend error with operation context,
// following the teacher's errors.Wrapf convention.
func WrapBackendError(err error, op string) error {
	if err == nil {
		return nil
	}
	return &BackendError{cause: errors.Wrapf(err, "backend: %s", op)}
}

// SortError reports that an operator application failed sort inference.
type SortError struct {
	msg string
}

func (e *SortError) Error() string { return e.msg }

// NewSortError builds a SortError with a formatted message.
func NewSortError(format string, args ...interface{}) error {
	return &SortError{msg: fmt.Sprintf(format, args...)}
}

// IsNotImplemented reports whether err is (or wraps) a NotImplementedError.
func IsNotImplemented(err error) bool {
	var nie *NotImplementedError
	return errors.As(err, &nie)
}

// IsSortError reports whether err is (or wraps) a SortError.
func IsSortError(err error) bool {
	var se *SortError
	return errors.As(err, &se)
}
