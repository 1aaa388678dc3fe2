// Package data implements the storage, aliasing, strided-view, and
// broadcasting-arithmetic engine underneath the public dataset package:
// Dimensions, Buffer, View, Variable, Dataset, and the derived operations
// (slice, concatenate, split, filter, sort, rebin).
package data

import "fmt"

// Kind discriminates the failure categories operations in this package
// can raise. Every *Error carries a stable Kind so callers can branch on
// failure category without string-matching messages.
type Kind string

// Error kinds, one per spec error-kind row.
const (
	KindDimensionMismatch  Kind = "dimension_mismatch"
	KindDimensionNotFound  Kind = "dimension_not_found"
	KindEdgeMismatch       Kind = "edge_mismatch"
	KindUniqueness         Kind = "uniqueness"
	KindDuplicateKey       Kind = "duplicate_key"
	KindTypeMismatch       Kind = "type_mismatch"
	KindUnsupportedElement Kind = "unsupported_element"
	KindUnit               Kind = "unit"
	KindAlias              Kind = "alias"
	KindUnsupported        Kind = "unsupported"
	KindMissingVariable    Kind = "missing_variable"
	KindContract           Kind = "contract"
)

// Error is the single error type this package raises. It always carries a
// Kind discriminant plus a human-readable message, and optionally wraps a
// causing error.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is/errors.As to see through to the cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// newErr builds an *Error with no cause.
func newErr(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// wrapErr builds an *Error wrapping cause.
func wrapErr(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err is an *Error with the given Kind, unwrapping
// through any wrapped causes along the way.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.Kind == kind {
				return true
			}
			err = e.Cause
			continue
		}
		break
	}
	return false
}
