package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Application error types organized by category for better error handling

type ErrorType int

// Caller errors - malformed input or unknown locations
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeInvalidParameters
	ErrorTypeNotFound

	// Upstream errors - failures reported by or while talking to the weather provider
	ErrorTypeInvalidAPIKey
	ErrorTypeUpstream
	ErrorTypeParse

	// System/Configuration Errors - errors related to system setup and configuration
	ErrorTypeConfiguration
	ErrorTypeCache
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeInvalidParameters:
		return "INVALID_PARAMETERS"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeInvalidAPIKey:
		return "INVALID_API_KEY"
	case ErrorTypeUpstream:
		return "UPSTREAM_ERROR"
	case ErrorTypeParse:
		return "PARSE_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	case ErrorTypeCache:
		return "CACHE_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Short aliases used across the code base
const (
	InvalidParametersError = ErrorTypeInvalidParameters
	NotFoundError          = ErrorTypeNotFound
	InvalidAPIKeyError     = ErrorTypeInvalidAPIKey
	UpstreamError          = ErrorTypeUpstream
	ParseError             = ErrorTypeParse
	ConfigurationError     = ErrorTypeConfiguration
	CacheError             = ErrorTypeCache
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error

	// Details lists every validation failure for InvalidParameters errors.
	Details []string
	// StatusCode is the upstream HTTP status for Upstream errors, 0 when no response was received.
	StatusCode int
}

func (e *AppError) Error() string {
	msg := e.Message
	if len(e.Details) > 0 {
		msg = fmt.Sprintf("%s [%s]", msg, strings.Join(e.Details, "; "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), msg)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Caller Error Constructors

// NewInvalidParametersError carries the ordered list of validation messages.
func NewInvalidParametersError(details []string) *AppError {
	copied := make([]string, len(details))
	copy(copied, details)
	return &AppError{
		Type:    InvalidParametersError,
		Message: "invalid parameters",
		Details: copied,
	}
}

func NewValidationError(message string) *AppError {
	return NewInvalidParametersError([]string{message})
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

func NewCityNotFoundError(city, country string) *AppError {
	return New(NotFoundError, fmt.Sprintf("city not found: %s, %s", city, country))
}

// Upstream Error Constructors
func NewInvalidAPIKeyError(message string) *AppError {
	return New(InvalidAPIKeyError, message)
}

func NewUpstreamError(statusCode int, message string, cause error) *AppError {
	return &AppError{
		Type:       UpstreamError,
		Message:    message,
		Cause:      cause,
		StatusCode: statusCode,
	}
}

func NewParseError(message string, cause error) *AppError {
	return Wrap(ParseError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

func NewCacheError(message string, cause error) *AppError {
	return Wrap(CacheError, message, cause)
}

// TypeOf returns the type of the first AppError in the chain, or ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// Helper functions for error type checking
func IsInvalidParametersError(err error) bool {
	return TypeOf(err) == InvalidParametersError
}

func IsNotFoundError(err error) bool {
	return TypeOf(err) == NotFoundError
}

func IsInvalidAPIKeyError(err error) bool {
	return TypeOf(err) == InvalidAPIKeyError
}

func IsUpstreamError(err error) bool {
	return TypeOf(err) == UpstreamError
}

func IsParseError(err error) bool {
	return TypeOf(err) == ParseError
}

func IsConfigurationError(err error) bool {
	return TypeOf(err) == ConfigurationError
}

func IsCacheError(err error) bool {
	return TypeOf(err) == CacheError
}
