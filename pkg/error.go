package pkg

// Sentinel errors shared by the pyrelens packages.
// These errors can be tested using errors.Is for reliable error checking.

import (
	"fmt"
	"slices"
	"strings"
)

// Error represents a chain of errors.
type Error []error

// ErrInvalidPattern is returned when a search pattern fails to compile.
//
// This error should be wrapped with the offending pattern text so it can
// be surfaced to the user as a transient message.
var ErrInvalidPattern = MakeErrorf("invalid search pattern")

// ErrInvalidFilter is returned when a row filter expression fails to
// compile or does not evaluate to a boolean.
var ErrInvalidFilter = MakeErrorf("invalid filter expression")

// ErrSamplerExited is returned when the external sampling process reports
// an unrecoverable error. It is fatal: a live view backed by a dead data
// source is worse than stopping.
var ErrSamplerExited = MakeErrorf("sampler exited")

// ErrNoInput is returned when neither an input file nor a target process
// was provided to the viewer.
var ErrNoInput = MakeErrorf("no input file or target process")

// MakeError constructs an Error from the given errors.
// The errors are stored in the order they are provided:
// the first argument is the innermost error in the chain.
// Nil is returned if no errors are provided.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns a concatenated string representation of all errors
// in the error chain, separated by ": ", from innermost to outermost.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range slices.All(e) {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap appends one or more errors to the receiver and returns the result.
func (e Error) Wrap(err ...error) Error {
	return append(e, err...)
}

// Wrapf appends a formatted error to the receiver and returns the result.
func (e Error) Wrapf(format string, args ...any) Error {
	return append(e, fmt.Errorf(format, args...))
}

// Unwrap returns the slice of errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// Is reports whether the receiver's chain shares an error instance with
// target, making sentinels constructed by [MakeErrorf] testable with
// [errors.Is] after wrapping via [Error.Wrap] or [Error.Wrapf].
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}

	for _, err := range e {
		for _, terr := range t {
			if err == terr {
				return true
			}
		}
	}

	return false
}

// UnwrapErrors recursively unwraps an error chain and returns a slice
// containing all errors in the chain, starting from the innermost error.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	} else if e, ok := err.(interface{ Unwrap() error }); ok {
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
