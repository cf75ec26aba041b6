package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeConflict          = "CONFLICT"
	CodeBusinessRule      = "BUSINESS_RULE_VIOLATION"
	CodeWriteConflict     = "WRITE_CONFLICT"
	CodeDependencyFailure = "DEPENDENCY_FAILURE"
	CodeInternal          = "INTERNAL_ERROR"
	CodeBadRequest        = "BAD_REQUEST"
	CodeTimeout           = "TIMEOUT"
	CodeUnavailable       = "SERVICE_UNAVAILABLE"
	CodeInvalidInput      = "INVALID_INPUT"
)

// Kind groups codes into the failure classes callers branch on.
type Kind string

const (
	KindNotFound          Kind = "NotFound"
	KindValidation        Kind = "Validation"
	KindBusinessRule      Kind = "BusinessRuleViolation"
	KindWriteConflict     Kind = "WriteConflict"
	KindDependencyFailure Kind = "DependencyFailure"
	KindUnexpected        Kind = "Unexpected"
)

type AppError struct {
	Code       string         `json:"code"`
	Reason     string         `json:"reason,omitempty"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) Kind() Kind {
	switch e.Code {
	case CodeNotFound:
		return KindNotFound
	case CodeValidation, CodeInvalidInput, CodeBadRequest:
		return KindValidation
	case CodeBusinessRule, CodeForbidden, CodeConflict:
		return KindBusinessRule
	case CodeWriteConflict:
		return KindWriteConflict
	case CodeDependencyFailure:
		return KindDependencyFailure
	default:
		return KindUnexpected
	}
}

func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(e.response())
	return data
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Reason  string         `json:"reason,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// response hides the message and details of internal errors.
func (e *AppError) response() ErrorResponse {
	if e.Code == CodeInternal {
		return ErrorResponse{
			Error:  "Internal server error",
			Code:   e.Code,
			Reason: e.Reason,
		}
	}
	return ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Reason:  e.Reason,
		Details: e.Details,
	}
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// WithReason sets a stable machine-readable reason and records the sentinel
// that caused it so errors.Is keeps working through the AppError.
func (e *AppError) WithReason(reason string, cause error) *AppError {
	e.Reason = reason
	if cause != nil && e.Err == nil {
		e.Err = cause
	}
	return e
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func BusinessRule(message string) *AppError {
	return &AppError{
		Code:       CodeBusinessRule,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func WriteConflict(message string, err error) *AppError {
	return &AppError{
		Code:       CodeWriteConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
		Err:        err,
	}
}

func DependencyFailure(dependency string, err error) *AppError {
	return &AppError{
		Code:       CodeDependencyFailure,
		Message:    fmt.Sprintf("%s failed", dependency),
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func Unavailable(service string) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    fmt.Sprintf("%s is temporarily unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

// KindOf reports the failure class of any error; non-AppErrors are Unexpected.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return KindUnexpected
}
