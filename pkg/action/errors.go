package action

import (
	"errors"
	"fmt"
)

// ErrorClass classifies a pipeline error for the caller's retry and
// reporting logic.
type ErrorClass string

const (
	// ClassInvalidRequest indicates a malformed or under-specified
	// request. Never retried.
	ClassInvalidRequest ErrorClass = "invalid_request"

	// ClassSpawn indicates the kubectl binary could not be located or
	// launched. Distinct from a non-zero exit, which is a normal,
	// classifiable outcome.
	ClassSpawn ErrorClass = "spawn"

	// ClassCommandFailure indicates the subprocess ran but its
	// exit/stderr signature is a genuine failure.
	ClassCommandFailure ErrorClass = "command_failure"
)

// Error is a classified pipeline error.
type Error struct {
	// Class is the error classification.
	Class ErrorClass

	// Message is the human-readable error message.
	Message string

	// Argv is the command vector involved, when known.
	Argv []string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Class, e.Message)
	if len(e.Argv) > 0 {
		msg = fmt.Sprintf("%s (argv=%v)", msg, e.Argv)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error equality by class for errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Class == t.Class
}

// WithArgv attaches the executed command vector to the error.
func (e *Error) WithArgv(argv []string) *Error {
	e.Argv = argv
	return e
}

// NewInvalidRequestError creates a ClassInvalidRequest error.
func NewInvalidRequestError(message string, err error) *Error {
	return &Error{Class: ClassInvalidRequest, Message: message, Err: err}
}

// NewSpawnError creates a ClassSpawn error.
func NewSpawnError(message string, err error) *Error {
	return &Error{Class: ClassSpawn, Message: message, Err: err}
}

// NewCommandFailureError creates a ClassCommandFailure error.
func NewCommandFailureError(message string, err error) *Error {
	return &Error{Class: ClassCommandFailure, Message: message, Err: err}
}

// IsInvalidRequest reports whether err is classified as an invalid
// request.
func IsInvalidRequest(err error) bool {
	return classOf(err) == ClassInvalidRequest
}

// IsSpawnError reports whether err is classified as a spawn failure.
func IsSpawnError(err error) bool {
	return classOf(err) == ClassSpawn
}

// IsCommandFailure reports whether err is classified as a command
// failure.
func IsCommandFailure(err error) bool {
	return classOf(err) == ClassCommandFailure
}

func classOf(err error) ErrorClass {
	var e *Error
	if errors.As(err, &e) {
		return e.Class
	}
	return ""
}
