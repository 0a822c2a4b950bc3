/*
Package errs provides custom error types and application-level error code constants.

This file defines the CustomError struct, which implements the standard Go error
interface and carries a business code, a client-safe message, and an HTTP status
code for unified error reporting.
*/
package errs

import (
	"fmt"
	"net/http"

	"linewatch/internal/pkg/logx"
)

// CustomError is the error structure used for JSON error responses.
type CustomError struct {
	// Code is the business error code (see constants definition).
	Code int

	// Message is the client-safe error description.
	Message string

	// Status is the HTTP status code corresponding to this error.
	Status int
}

// Error implements the standard error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError constructs a *CustomError from a predefined error code.
// An unknown code falls back to ErrUnknown. When the first detail is an error it is
// logged as the underlying cause but never included in the client-facing message.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]
	if !ok {
		logx.Error(
			fmt.Errorf("unknown error code %d", code),
			"errs.NewError called with a code missing from errorMap",
		)
		templateErr = errorMap[ErrUnknown]
	}

	customErr := templateErr

	if customErr.Status == 0 {
		customErr.Status = http.StatusInternalServerError
	}

	if len(details) > 0 {
		if cause, ok := details[0].(error); ok {
			logx.Error(cause, "request failed", "error_code", customErr.Code)
		}
	}

	return &customErr
}
