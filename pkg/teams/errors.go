package teams

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a TeamService failure. Callers switch on the code;
// the message is for humans.
type ErrorCode string

const (
	// ErrCodeAlreadyExists - a team with the requested name already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// ErrCodeNotFound - a referenced team or user does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeNameExists - renaming a team would collide with another team's name.
	ErrCodeNameExists ErrorCode = "NAME_EXISTS"

	// ErrCodeCreateFailure - the persistence layer failed during the team
	// creation transaction. The message carries the underlying cause's text.
	ErrCodeCreateFailure ErrorCode = "CREATE_FAILURE"
)

// Error carries an expected service outcome as a value. Validation failures
// are normal results of these operations, not panics, so they travel as
// (code, message) pairs the boundary can serialize directly.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func createFailureError(cause error) *Error {
	return &Error{Code: ErrCodeCreateFailure, Message: cause.Error(), Err: cause}
}

// CodeOf returns the ErrorCode err carries, or "" when err is not a service
// error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ""
}

// MessageOf returns the human message err carries, falling back to
// err.Error() for errors that didn't come from the service.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}

	return err.Error()
}
