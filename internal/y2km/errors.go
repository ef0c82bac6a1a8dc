package y2km

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes codec errors.
type ErrorCode string

const (
	// ErrCodeParse indicates text that cannot be split into year and month.
	ErrCodeParse ErrorCode = "PARSE_ERROR"

	// ErrCodeLengthMismatch indicates element-wise operands of incompatible lengths.
	ErrCodeLengthMismatch ErrorCode = "LENGTH_MISMATCH"

	// ErrCodeIndex indicates a position outside the sequence.
	ErrCodeIndex ErrorCode = "INDEX_ERROR"

	// ErrCodeInvalidOperation indicates an operation with no meaning for months,
	// such as adding two dates.
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// ErrCodeRangeOverflow indicates a month-count outside the 16-bit range.
	ErrCodeRangeOverflow ErrorCode = "RANGE_OVERFLOW"

	// ErrCodeTypeMismatch indicates an input element or operand of unsupported type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// Error is the error type returned by every fallible operation in this package.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Input is the offending text for parse errors.
	Input string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("%s: %s (input=%q)", e.Code, e.Message, e.Input)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same Code, so callers can
// match with errors.Is(err, &Error{Code: ErrCodeParse}).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsParseError returns true if err is a parse error.
func IsParseError(err error) bool { return CodeOf(err) == ErrCodeParse }

// IsLengthMismatch returns true if err is a length mismatch.
func IsLengthMismatch(err error) bool { return CodeOf(err) == ErrCodeLengthMismatch }

// IsIndexError returns true if err is an out-of-range index.
func IsIndexError(err error) bool { return CodeOf(err) == ErrCodeIndex }

// IsInvalidOperation returns true if err rejects a meaningless operation.
func IsInvalidOperation(err error) bool { return CodeOf(err) == ErrCodeInvalidOperation }

// IsRangeOverflow returns true if err is a 16-bit range violation.
func IsRangeOverflow(err error) bool { return CodeOf(err) == ErrCodeRangeOverflow }

// IsTypeMismatch returns true if err reports an unsupported element or operand type.
func IsTypeMismatch(err error) bool { return CodeOf(err) == ErrCodeTypeMismatch }

func newParseError(input, reason string) *Error {
	return &Error{Code: ErrCodeParse, Message: reason, Input: input}
}

func newLengthMismatch(left, right int) *Error {
	return &Error{
		Code:    ErrCodeLengthMismatch,
		Message: fmt.Sprintf("operand lengths %d and %d are not broadcastable", left, right),
	}
}

func newIndexError(index, length int) *Error {
	return &Error{
		Code:    ErrCodeIndex,
		Message: fmt.Sprintf("index %d out of range for length %d", index, length),
	}
}

func newRangeOverflow(v int64) *Error {
	return &Error{
		Code:    ErrCodeRangeOverflow,
		Message: fmt.Sprintf("month-count %d outside [%d, %d]", v, MinMonth, MaxMonth),
	}
}

func newTypeMismatch(format string, args ...any) *Error {
	return &Error{Code: ErrCodeTypeMismatch, Message: fmt.Sprintf(format, args...)}
}
