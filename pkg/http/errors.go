package http

import (
	"fmt"
	"net/http"
)

// AppError is an application error that knows its HTTP status. The status
// and wrapped cause stay server-side; code, message, field, and params are
// what the client sees.
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Field   string                 `json:"field,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Status  int                    `json:"-"`
	Err     error                  `json:"-"`
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

// WithError attaches the underlying cause without exposing it to clients.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

func newAppError(code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Params:  make(map[string]interface{}),
	}
}

// BadRequestError creates a 400 error.
func BadRequestError(message string) *AppError {
	return newAppError("ERR_BAD_REQUEST", message, http.StatusBadRequest)
}

// NotFoundError creates a 404 error.
func NotFoundError(message string) *AppError {
	return newAppError("ERR_NOT_FOUND", message, http.StatusNotFound)
}

// BadGatewayError creates a 502 error, used when the upstream market-data
// source fails after retries.
func BadGatewayError(message string) *AppError {
	return newAppError("ERR_BAD_GATEWAY", message, http.StatusBadGateway)
}

// InternalError creates a 500 error.
func InternalError(message string) *AppError {
	return newAppError("ERR_INTERNAL", message, http.StatusInternalServerError)
}
