package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeExternal   ErrorType = "external_api"
	ErrorTypeParse      ErrorType = "parse"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeRateLimit  ErrorType = "rate_limit"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Code     string
	Message  string
	Internal error
	Context  map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is matches another AppError by type and code
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []any {
	fields := []any{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
	}
	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}
	for k, v := range e.Context {
		fields = append(fields, k, v)
	}
	return fields
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
	}
}

// Predefined errors, usable as errors.Is targets
var (
	ErrInvalidInput = New(ErrorTypeValidation, "INVALID_INPUT", "Invalid input provided")
	ErrUpstream     = New(ErrorTypeExternal, "UPSTREAM", "Upstream request failed")
	ErrUpstreamBody = New(ErrorTypeParse, "UPSTREAM_BODY", "Upstream response could not be parsed")
	ErrTimeout      = New(ErrorTypeTimeout, "TIMEOUT", "Operation timed out")
	ErrRateLimited  = New(ErrorTypeRateLimit, "RATE_LIMIT", "Rate limit exceeded")
	ErrThrottled    = New(ErrorTypeRateLimit, "UPSTREAM_THROTTLED", "Upstream request budget exhausted")
)

func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, "INVALID_INPUT", message)
}

// NewNetworkError classifies a failed upstream call. Context deadlines
// become timeouts, everything else is an external API error.
func NewNetworkError(err error, api string) *AppError {
	var timeout interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &timeout) && timeout.Timeout()) {
		return Wrap(err, ErrorTypeTimeout, "TIMEOUT", fmt.Sprintf("%s request timed out", api)).
			WithContext("api", api)
	}
	return Wrap(err, ErrorTypeExternal, "UPSTREAM", fmt.Sprintf("%s request failed", api)).
		WithContext("api", api)
}

// NewThrottledError reports an upstream call refused by the local request budget
func NewThrottledError(err error, api string) *AppError {
	return Wrap(err, ErrorTypeRateLimit, "UPSTREAM_THROTTLED", fmt.Sprintf("%s request budget exhausted", api)).
		WithContext("api", api)
}

func NewParseError(err error, api string) *AppError {
	return Wrap(err, ErrorTypeParse, "UPSTREAM_BODY", fmt.Sprintf("%s response could not be parsed", api)).
		WithContext("api", api)
}

func NewDatabaseError(err error) *AppError {
	return Wrap(err, ErrorTypeDatabase, "DB_ERROR", "Database operation failed")
}

func NewInternalError(err error) *AppError {
	return Wrap(err, ErrorTypeInternal, "INTERNAL", "Internal server error")
}

// TypeOf returns the ErrorType of err, or internal for foreign errors.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// HTTPStatus maps an error onto the status code the API responds with.
func HTTPStatus(err error) int {
	switch TypeOf(err) {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeRateLimit:
		return http.StatusTooManyRequests
	case ErrorTypeExternal, ErrorTypeParse:
		return http.StatusBadGateway
	case ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
