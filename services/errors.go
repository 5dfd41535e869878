package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrorKind classifies failures so handlers can pick a status code
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	}
	return "internal"
}

// AppError is the error type returned by every service
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(message string, err error) *AppError {
	return &AppError{Kind: KindAuthentication, Message: message, Err: err}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// Internal wraps an unexpected store or runtime failure
func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf returns the kind of err, treating anything that is not an AppError as internal
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// notFoundOr maps a missing row to NotFound(message) and anything else to Internal
func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(message)
	}
	return Internal(err)
}

// internalIf wraps err as Internal unless it already is an AppError
func internalIf(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return Internal(err)
}
