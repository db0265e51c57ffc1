package errors

import (
	"fmt"
)

// ErrorCode classifies why a query could not be answered.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates invalid input, such as an empty question.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeNotFound indicates the referenced parcel or category has no data.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeUnresolvedMetric indicates no known metric matched the question.
	ErrCodeUnresolvedMetric ErrorCode = "UNRESOLVED_METRIC"
	// ErrCodeUnresolvedFacility indicates no known facility type matched the question.
	ErrCodeUnresolvedFacility ErrorCode = "UNRESOLVED_FACILITY"
	// ErrCodeMissingParameter indicates the intent was clear but a required
	// parameter, such as a parcel id, was absent.
	ErrCodeMissingParameter ErrorCode = "MISSING_PARAMETER"
	// ErrCodeUnrecognized indicates no classification rule matched the question.
	ErrCodeUnrecognized ErrorCode = "UNRECOGNIZED"
)

// QueryError represents a structured error for query handling.
type QueryError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *QueryError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *QueryError) WithContext(key string, value interface{}) *QueryError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetCode returns the error code.
func (e *QueryError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error types.

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *QueryError {
	return &QueryError{Code: ErrCodeInvalidArgument, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *QueryError {
	return &QueryError{Code: ErrCodeNotFound, Message: msg}
}

// ParcelNotFound creates a not found error for an unknown parcel id.
func ParcelNotFound(id string) *QueryError {
	return &QueryError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("parcel not found: %s", id),
	}
}

// UnresolvedMetric creates an unresolved metric error.
func UnresolvedMetric(msg string) *QueryError {
	return &QueryError{Code: ErrCodeUnresolvedMetric, Message: msg}
}

// UnresolvedFacility creates an unresolved facility error.
func UnresolvedFacility(msg string) *QueryError {
	return &QueryError{Code: ErrCodeUnresolvedFacility, Message: msg}
}

// MissingParameter creates a missing parameter error.
func MissingParameter(msg string) *QueryError {
	return &QueryError{Code: ErrCodeMissingParameter, Message: msg}
}

// Unrecognized creates an unrecognized question error.
func Unrecognized(msg string) *QueryError {
	return &QueryError{Code: ErrCodeUnrecognized, Message: msg}
}

// Wrap wraps an existing error with additional context.
func Wrap(cause error, code ErrorCode, msg string) *QueryError {
	return &QueryError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if qErr, ok := err.(*QueryError); ok {
		return qErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a QueryError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if qErr, ok := err.(*QueryError); ok {
		return qErr.Code
	}
	return defaultCode
}
