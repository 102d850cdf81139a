// Package errors provides the error types returned by the kappaml SDK.
// Every failure surfaced by the client is one of these types, so callers can
// branch on the kind of failure with errors.Is and errors.As instead of
// matching on message text.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As are re-exported so callers importing this package under the
// name errors keep the standard helpers.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the kappaml SDK
var (
	// ErrKappaML is matched by every error kind the SDK reports about the service
	// or its configuration.
	ErrKappaML = errors.New("kappaml error")

	// ErrNotFound indicates that a requested model does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrDeploymentFailed indicates that the service reported a failed deployment
	ErrDeploymentFailed = errors.New("deployment failed")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrUnauthorized indicates the service rejected the API key
	ErrUnauthorized = errors.New("unauthorized")

	// ErrServiceUnavailable indicates a 5xx response from the service
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrClientClosed indicates the client was used after Close
	ErrClientClosed = errors.New("client closed")
)

// ConfigError represents a configuration error, such as a missing API key.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrKappaML
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// NotFoundError represents a 404 for an operation referencing a model.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == ErrKappaML
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// DeploymentError reports a model that did not become usable, either because
// the service marked the deployment Failed or because it did not reach
// Deployed before the wait timeout.
type DeploymentError struct {
	ModelID    string
	LastStatus string
	TimedOut   bool
	Timeout    time.Duration
}

// Error implements the error interface
func (e *DeploymentError) Error() string {
	if e.TimedOut {
		if e.LastStatus != "" {
			return fmt.Sprintf("model %s deployment timed out after %s (last status %s)", e.ModelID, e.Timeout, e.LastStatus)
		}
		return fmt.Sprintf("model %s deployment timed out after %s", e.ModelID, e.Timeout)
	}
	return fmt.Sprintf("model %s deployment failed", e.ModelID)
}

// Is implements errors.Is support
func (e *DeploymentError) Is(target error) bool {
	switch target {
	case ErrKappaML:
		return true
	case ErrTimeout:
		return e.TimedOut
	case ErrDeploymentFailed:
		return !e.TimedOut
	}
	return false
}

// NewDeploymentFailedError creates a DeploymentError for a Failed status.
func NewDeploymentFailedError(modelID string) *DeploymentError {
	return &DeploymentError{ModelID: modelID, LastStatus: "Failed"}
}

// NewDeploymentTimeoutError creates a DeploymentError for a wait that ran out of time.
func NewDeploymentTimeoutError(modelID, lastStatus string, timeout time.Duration) *DeploymentError {
	return &DeploymentError{
		ModelID:    modelID,
		LastStatus: lastStatus,
		TimedOut:   true,
		Timeout:    timeout,
	}
}

// APIError is the catch-all for non-success responses. Message carries the
// raw response body.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	op := e.Operation
	if op == "" {
		op = "request"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to %s (status %d): %s", op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("failed to %s: %s", op, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrKappaML:
		return true
	case ErrUnauthorized:
		return e.StatusCode == 401 || e.StatusCode == 403
	case ErrServiceUnavailable:
		return e.StatusCode >= 500
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(operation string, statusCode int, message string) *APIError {
	return &APIError{
		Operation:  operation,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ValidationError represents a client-side argument check failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ParseError represents an error when decoding a response body
type ParseError struct {
	Format  string
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s parse error in %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, source, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsKappaML checks if an error belongs to the SDK taxonomy
func IsKappaML(err error) bool {
	return errors.Is(err, ErrKappaML)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsAPIKeyError checks if an error is related to API keys
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired) || errors.Is(err, ErrUnauthorized)
}

// IsDeploymentFailed checks if a deployment was reported Failed by the service
func IsDeploymentFailed(err error) bool {
	return errors.Is(err, ErrDeploymentFailed)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsAPIError checks if an error is the catch-all API error
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, source, err.Error(), err)
}

// WrapAPI wraps a transport-level error as an APIError
func WrapAPI(operation, endpoint string, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Operation: operation,
		Endpoint:  endpoint,
		Message:   err.Error(),
		Err:       err,
	}
}
