// Package apperr holds the domain error taxonomy shared by the services and
// mapped to response statuses by the handlers.
package apperr

import "errors"

type Code string

const (
	CodeValidation     Code = "validation"
	CodeAuthentication Code = "authentication"
	CodeAccessDenied   Code = "access_denied"
	CodeNotFound       Code = "not_found"
	CodeConflict       Code = "conflict"
	CodeInvalidState   Code = "invalid_state"
	CodeInternal       Code = "internal"
)

// Error is a failure that is safe to show to the caller as-is.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

func Validation(message string) error {
	return New(CodeValidation, message)
}

func Authentication(message string) error {
	return New(CodeAuthentication, message)
}

func AccessDenied(message string) error {
	return New(CodeAccessDenied, message)
}

func NotFound(message string) error {
	return New(CodeNotFound, message)
}

func Conflict(message string) error {
	return New(CodeConflict, message)
}

func InvalidState(message string) error {
	return New(CodeInvalidState, message)
}

func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
