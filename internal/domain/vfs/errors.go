package vfs

import (
	"errors"
	"fmt"
)

// Code classifies file-system operation failures
type Code string

const (
	CodeParentNotFound    Code = "parent_not_found"
	CodeNameCollision     Code = "name_collision"
	CodeEntityNotFound    Code = "entity_not_found"
	CodeNotADirectory     Code = "not_a_directory"
	CodeInvalidLinkTarget Code = "invalid_link_target"
	CodeStorageFault      Code = "storage_fault"
)

// Error is the typed failure every service operation returns.
// Code drives programmatic handling; Message is human-readable.
type Error struct {
	Code    Code
	Message string
	Err     error // wrapped storage error, if any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped storage error
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func storageFault(op string, err error) *Error {
	return &Error{Code: CodeStorageFault, Message: fmt.Sprintf("%s failed", op), Err: err}
}

// CodeOf extracts the failure code from an error, or empty if the error
// is nil or not a file-system error
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
