// Package errs defines the coded application errors shared by nlpres
// components.
package errs

import (
	"errors"
	"fmt"
)

// Standard error codes for the application.
const (
	CodeUnknown        = "UNKNOWN"
	CodeConfig         = "CONFIG"
	CodeDatabase       = "DATABASE"
	CodeValidation     = "VALIDATION"
	CodeInitialization = "INITIALIZATION"
	CodeNotFound       = "NOT_FOUND"
)

// ErrInitialization is matched by every error returned from a failed
// resource initialization.
var ErrInitialization = errors.New("initialization failed")

// ApplicationError is the interface that all our custom errors implement.
type ApplicationError interface {
	error
	Code() string
	Unwrap() error
}

// Error represents a basic application error.
type Error struct {
	code    string
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}

	return e.message
}

func (e *Error) Code() string {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the code of the first ApplicationError in err's chain,
// or CodeUnknown if it doesn't have one.
func Code(err error) string {
	var appErr ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}

	return CodeUnknown
}

func newError(code, message string, cause error) *Error {
	return &Error{code: code, message: message, err: cause}
}

// NewConfigError reports an invalid or unreadable configuration.
func NewConfigError(message string, cause error) error {
	return newError(CodeConfig, message, cause)
}

// NewDatabaseError reports a failed database operation.
func NewDatabaseError(message string, cause error) error {
	return newError(CodeDatabase, message, cause)
}

// NewValidationError reports invalid caller input.
func NewValidationError(message string, cause error) error {
	return newError(CodeValidation, message, cause)
}

// NewNotFoundError reports a missing entry.
func NewNotFoundError(message string) error {
	return newError(CodeNotFound, message, nil)
}

// InitializationError wraps whatever an underlying library returned while a
// resource was being acquired.
type InitializationError struct {
	Resource string
	base     Error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Resource, e.base.Error())
}

func (e *InitializationError) Code() string {
	return e.base.Code()
}

func (e *InitializationError) Unwrap() error {
	return e.base.Unwrap()
}

// Is reports true for ErrInitialization so callers can test with errors.Is.
func (e *InitializationError) Is(target error) bool {
	return target == ErrInitialization
}

// NewInitializationError wraps cause as the initialization failure of the
// named resource.
func NewInitializationError(resource string, cause error) error {
	return &InitializationError{
		Resource: resource,
		base: Error{
			code:    CodeInitialization,
			message: ErrInitialization.Error(),
			err:     cause,
		},
	}
}
