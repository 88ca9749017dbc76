// Package apperr holds the error kinds shared by the domain packages.
// Domain sentinels are built with the constructors below so that callers can
// test either for the exact sentinel or for its kind with errors.Is.
package apperr

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Is(target error) bool {
	return target == e.kind
}

func (e *Error) Kind() error { return e.kind }

func Validation(msg string) *Error   { return &Error{kind: ErrValidation, msg: msg} }
func NotFound(msg string) *Error     { return &Error{kind: ErrNotFound, msg: msg} }
func Unauthorized(msg string) *Error { return &Error{kind: ErrUnauthorized, msg: msg} }
func Conflict(msg string) *Error     { return &Error{kind: ErrConflict, msg: msg} }
