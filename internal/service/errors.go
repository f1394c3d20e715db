package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("invalid state")
	ErrConflict           = errors.New("conflict")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrGateway            = errors.New("payment gateway error")
	ErrStore              = errors.New("store failure")
)

// Error carries a caller-facing message together with the category sentinel
// it belongs to. errors.Is matches both the category and the wrapped cause.
type Error struct {
	Kind    error
	Message string
	// Fields lists the request fields that failed validation, if any.
	Fields []string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if len(e.Fields) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(e.Fields, ", "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return e != nil && target == e.Kind
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func invalid(message string, fields ...string) *Error {
	return &Error{Kind: ErrValidation, Message: message, Fields: fields}
}

func notFound(message string, err error) *Error {
	return &Error{Kind: ErrNotFound, Message: message, Err: err}
}

func invalidState(message string, err error) *Error {
	return &Error{Kind: ErrInvalidState, Message: message, Err: err}
}

func conflict(message string, err error) *Error {
	return &Error{Kind: ErrConflict, Message: message, Err: err}
}

func storeFailure(message string, err error) *Error {
	return &Error{Kind: ErrStore, Message: message, Err: err}
}
