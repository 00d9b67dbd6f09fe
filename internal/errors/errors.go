package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies a class of failure surfaced to the user.
type ErrorCode string

const (
	ErrConfig            ErrorCode = "CONFIG_ERROR"       // 500, halts startup
	ErrValidation        ErrorCode = "VALIDATION_ERROR"   // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT" // 415
	ErrExtractionFailed  ErrorCode = "EXTRACTION_FAILED"  // 422
	ErrMissingVariable   ErrorCode = "MISSING_VARIABLE"   // 500
	ErrAuth              ErrorCode = "AUTH_ERROR"         // 502
	ErrService           ErrorCode = "SERVICE_ERROR"      // 502
	ErrInternal          ErrorCode = "INTERNAL"           // 500
)

// AppError is a structured error carrying a code, an HTTP status and details.
type AppError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewConfig creates an error for a missing or invalid startup setting.
func NewConfig(key, msg string) *AppError {
	return &AppError{
		Code:    ErrConfig,
		Status:  500,
		Message: msg,
		Details: map[string]any{"key": key},
	}
}

// NewValidation creates a 400 error for input rejected before any remote call.
func NewValidation(msg string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error.
func NewNotFound(what, identifier string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", what, identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewUnsupportedFormat creates a 415 error for an upload of an unknown kind.
func NewUnsupportedFormat(declared string) *AppError {
	return &AppError{
		Code:    ErrUnsupportedFormat,
		Status:  415,
		Message: fmt.Sprintf("unsupported document format: %q", declared),
		Details: map[string]any{"declared": declared},
	}
}

// NewExtractionFailed creates a 422 error for an unreadable container.
func NewExtractionFailed(kind string, err error) *AppError {
	return &AppError{
		Code:    ErrExtractionFailed,
		Status:  422,
		Message: fmt.Sprintf("failed to extract text from %s document", kind),
		Err:     err,
	}
}

// NewMissingVariable creates an error for a template placeholder with no value.
func NewMissingVariable(template, name string) *AppError {
	return &AppError{
		Code:    ErrMissingVariable,
		Status:  500,
		Message: fmt.Sprintf("template %q has no value for placeholder {%s}", template, name),
		Details: map[string]any{"template": template, "variable": name},
	}
}

// NewAuth creates an error for absent or rejected completion credentials.
func NewAuth(err error) *AppError {
	return &AppError{
		Code:    ErrAuth,
		Status:  502,
		Message: "completion service rejected the credentials",
		Err:     err,
	}
}

// NewService creates an error for a failed or timed out completion call.
func NewService(err error) *AppError {
	return &AppError{
		Code:    ErrService,
		Status:  502,
		Message: "completion service call failed",
		Err:     err,
	}
}

// NewInternal creates a 500 error for unexpected failures. The cause is kept
// for logs and never shown to the user.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Status:  500,
		Message: "internal error",
		Err:     err,
	}
}

// Is reports whether err, or anything it wraps, is an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// As returns the AppError in err's chain, or wraps err as an internal error.
func As(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return NewInternal(err)
}
