// Package rmxerr contains the error types shared by the layout engine and its consumers.
package rmxerr

import (
	"errors"
	"fmt"
)

type (
	// Code is a machine readable error identifier.
	Code string

	// Error is a coded error with an optional cause.
	Error struct {
		Code    Code
		Message string
		Cause   error
	}

	// ErrMsg carries an error through a bubbletea update loop.
	ErrMsg struct {
		Err error
	}
)

const (
	// Start note is above the end note.
	InvalidRange Code = "INVALID_RANGE"
	// Range holds no natural keys, so no key width can be derived.
	DegenerateRange Code = "DEGENERATE_RANGE"
	// Offset table is missing a note letter, or a symbol is not a note letter.
	UnknownNoteSymbol Code = "UNKNOWN_NOTE_SYMBOL"
	InvalidConfig     Code = "INVALID_CONFIG"
	InvalidNote       Code = "INVALID_NOTE"
	InvalidMessage    Code = "INVALID_MESSAGE"
)

func (m ErrMsg) Error() string {
	return m.Err.Error()
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain carries code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode returns the code of the first *Error in err's chain, or "" if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix from coded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
