package array

import (
	"errors"
	"fmt"
)

// Error represents a failure detected while building or combining arrays.
//
// Errors fall into three categories:
//   - Invalid input: a token is neither a valid literal nor a loadable file
//   - Shape mismatch: broadcasting was requested on incompatible shapes
//   - Type mismatch: element types have no common ordering or arithmetic
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes array errors.
type ErrorCode string

const (
	// ErrCodeInvalidInput indicates a token could not be turned into an array.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodeShapeMismatch indicates two shapes cannot be broadcast together.
	ErrCodeShapeMismatch ErrorCode = "SHAPE_MISMATCH"

	// ErrCodeTypeMismatch indicates two dtypes cannot be compared or added.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewInvalidInputError creates an Error for unusable input. err may be nil.
func NewInvalidInputError(message string, err error) *Error {
	return &Error{Code: ErrCodeInvalidInput, Message: message, Err: err}
}

// NewShapeMismatchError creates an Error for shapes that do not broadcast.
func NewShapeMismatchError(a, b Shape) *Error {
	return &Error{
		Code:    ErrCodeShapeMismatch,
		Message: fmt.Sprintf("operands could not be broadcast together with shapes %s %s", a, b),
	}
}

// NewTypeMismatchError creates an Error for dtypes with no common type.
func NewTypeMismatchError(a, b DType) *Error {
	return &Error{
		Code:    ErrCodeTypeMismatch,
		Message: fmt.Sprintf("no common type for %s and %s", a, b),
	}
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// IsInvalidInput returns true if err is, or wraps, an invalid input error.
func IsInvalidInput(err error) bool {
	return CodeOf(err) == ErrCodeInvalidInput
}

// IsShapeMismatch returns true if err is, or wraps, a shape mismatch error.
func IsShapeMismatch(err error) bool {
	return CodeOf(err) == ErrCodeShapeMismatch
}

// IsTypeMismatch returns true if err is, or wraps, a type mismatch error.
func IsTypeMismatch(err error) bool {
	return CodeOf(err) == ErrCodeTypeMismatch
}
