package importing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes import failure semantics.
type ErrorCode string

const (
	// CodeUnsupportedFormat: none of the known document shapes matched.
	CodeUnsupportedFormat ErrorCode = "unsupported_format"
	// CodeMalformedInput: invalid JSON, or a key present with the wrong
	// container type (e.g. domains not a list), or a blank required name.
	CodeMalformedInput ErrorCode = "malformed_input"
	// CodeNotFound: target capability (or domain, for renames) missing.
	CodeNotFound ErrorCode = "not_found"
	// CodeConflict: unique/active-row conflict that exhausted its retry.
	CodeConflict ErrorCode = "conflict"
	// CodeRetryable: transient persistence failure (serialization, deadlock).
	CodeRetryable ErrorCode = "retryable"
	// CodeValidation: caller input failed validation outside document parsing.
	CodeValidation ErrorCode = "validation"
	// CodePersistence: the transaction could not be committed.
	CodePersistence ErrorCode = "persistence"
	// CodeInternal: anything else.
	CodeInternal ErrorCode = "internal"
)

// Error is the canonical import error wrapper.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an import error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates an existing error with import error semantics.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode checks whether err (or a wrapped err) carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var impErr *Error
	if !errors.As(err, &impErr) {
		return false
	}
	return impErr.Code == code
}

// CodeOf extracts the import error code when available.
func CodeOf(err error) ErrorCode {
	var impErr *Error
	if !errors.As(err, &impErr) {
		return ""
	}
	return impErr.Code
}
