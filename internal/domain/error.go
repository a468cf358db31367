package domain

import (
	"errors"
	"strings"
)

// ErrorCode classifies failures independently of the transport that reports
// them.
type ErrorCode string

const (
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeAlreadyExists   ErrorCode = "ALREADY_EXISTS"
	CodeUnavailable     ErrorCode = "UNAVAILABLE"
	CodeFailedPrecond   ErrorCode = "FAILED_PRECONDITION"
	CodeInternal        ErrorCode = "INTERNAL"
	CodeCanceled        ErrorCode = "CANCELED"
	CodeNotImplemented  ErrorCode = "NOT_IMPLEMENTED"
)

var (
	ErrDuplicateName          = errors.New("duplicate name")
	ErrItemNotFound           = errors.New("item not found")
	ErrTaskNotFound           = errors.New("task not found")
	ErrTaskTerminal           = errors.New("task already finished")
	ErrInvalidCursor          = errors.New("invalid cursor")
	ErrSamplingUnsupported    = errors.New("client does not support sampling")
	ErrElicitationUnsupported = errors.New("client does not support elicitation")
	ErrStoreClosed            = errors.New("store is closed")
)

// sentinelCodes maps bare sentinels to the code CodeFrom reports for them.
var sentinelCodes = []struct {
	err  error
	code ErrorCode
}{
	{ErrInvalidCursor, CodeInvalidArgument},
	{ErrItemNotFound, CodeNotFound},
	{ErrTaskNotFound, CodeNotFound},
	{ErrDuplicateName, CodeAlreadyExists},
	{ErrTaskTerminal, CodeFailedPrecond},
	{ErrSamplingUnsupported, CodeNotImplemented},
	{ErrElicitationUnsupported, CodeNotImplemented},
	{ErrStoreClosed, CodeUnavailable},
}

// Error is a coded failure raised by operation Op.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

// Error renders as "op: CODE: message", omitting empty parts.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	parts = append(parts, string(e.Code))
	switch {
	case e.Message != "":
		parts = append(parts, e.Message)
	case e.Cause != nil:
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// E builds an *Error. An empty msg falls back to the cause's text.
func E(code ErrorCode, op, msg string, cause error) *Error {
	if msg == "" && cause != nil {
		msg = cause.Error()
	}
	return &Error{Code: code, Op: op, Message: msg, Cause: cause}
}

// CodeFrom finds the code carried by err, looking through wrapping for an
// *Error first and known sentinels second.
func CodeFrom(err error) (ErrorCode, bool) {
	if err == nil {
		return "", false
	}
	var coded *Error
	if errors.As(err, &coded) && coded.Code != "" {
		return coded.Code, true
	}
	for _, s := range sentinelCodes {
		if errors.Is(err, s.err) {
			return s.code, true
		}
	}
	return "", false
}
