// Package errors provides the coded errors nestview returns from its
// library, CLI and HTTP API.
//
// # Error Codes
//
//   - INVALID_*: the caller sent something unusable (dataset, scope, format, config)
//   - NOT_FOUND, UNKNOWN_GROUP: a referenced file, URL or group does not exist
//   - UNREACHABLE: a remote dataset could not be fetched after retries
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// The HTTP server maps INVALID_* to 400, the not-found codes to 404 and
// the rest to 5xx, so the code chosen at the failure site decides what a
// client sees.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidScope, "group %q does not exist", id)
//	if errors.Is(err, errors.ErrCodeInvalidScope) {
//	    // fall back to the top-level scope
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error class.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidScope  Code = "INVALID_SCOPE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeUnknownGroup Code = "UNKNOWN_GROUP"

	ErrCodeUnreachable Code = "UNREACHABLE"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a code, a message for users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e := find(err); e != nil {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without code prefix or cause, falling
// back to err.Error() for uncoded errors.
func UserMessage(err error) string {
	if e := find(err); e != nil {
		return e.Message
	}
	return err.Error()
}

// IsInvalid reports whether err carries one of the INVALID_* codes.
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidScope, ErrCodeInvalidFormat, ErrCodeInvalidConfig:
		return true
	}
	return false
}

func find(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
