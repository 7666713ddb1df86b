// Package errors provides the custom error types used across the merchant
// system. These errors enable programmatic error checking and let callers
// distinguish "my data was rejected" from "I am probably not logged in".
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the merchant system
var (
	// ErrNotLoggedIn indicates that no security cookie could be located
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrTokenRejected indicates the platform rejected the session token
	ErrTokenRejected = errors.New("session token rejected")

	// ErrDuplicateName indicates an entry name that already exists remotely
	ErrDuplicateName = errors.New("duplicate name")

	// ErrUnknownResponse indicates a remote response in no recognized shape
	ErrUnknownResponse = errors.New("unknown response format")

	// ErrMissingResult indicates an empty response where a result was required
	ErrMissingResult = errors.New("missing result")

	// ErrNoRemoteID indicates an update attempted on a never-created entry
	ErrNoRemoteID = errors.New("no remote id")

	// ErrPassCreateUnsupported indicates a create attempted on a game pass,
	// which the platform only allows through its own tooling
	ErrPassCreateUnsupported = errors.New("game passes cannot be created remotely")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")
)

// ContractError represents a programming-contract violation: the caller
// asked for an operation the entry's state cannot support. It is never
// retried and never reaches the network.
type ContractError struct {
	Entry     string
	Operation string
	Err       error
}

// Error implements the error interface
func (e *ContractError) Error() string {
	return fmt.Sprintf("cannot %s %q: %v", e.Operation, e.Entry, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ContractError) Unwrap() error {
	return e.Err
}

// NewContractError creates a new ContractError
func NewContractError(operation, entry string, err error) *ContractError {
	return &ContractError{Entry: entry, Operation: operation, Err: err}
}

// PlatformError represents a rejection returned by the remote platform,
// carrying its code and message verbatim where available.
type PlatformError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *PlatformError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("platform error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("platform error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *PlatformError) Unwrap() error {
	return e.Err
}

// NewPlatformError creates a new PlatformError
func NewPlatformError(code int, message string) *PlatformError {
	return &PlatformError{Code: code, Message: message}
}

// ValidationError represents a validation failure in the local catalogue
type ValidationError struct {
	Field   string
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
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// APIError represents a transport-level failure against a platform endpoint
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Endpoint, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 401 {
		return target == ErrNotLoggedIn
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(endpoint string, statusCode int, message string) *APIError {
	return &APIError{Endpoint: endpoint, StatusCode: statusCode, Message: message}
}

// ParseError represents an error when parsing a catalogue file
type ParseError struct {
	Format  string // "toml", "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during catalogue file I/O
type IOError struct {
	Operation string // "read", "write", "rename"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper wrapping functions for common patterns

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// Helper functions for error checking

// IsDuplicateName checks if an error is a duplicate-name rejection
func IsDuplicateName(err error) bool {
	return errors.Is(err, ErrDuplicateName)
}

// IsUnknownResponse checks if an error indicates an unparseable response
func IsUnknownResponse(err error) bool {
	return errors.Is(err, ErrUnknownResponse)
}

// IsContract checks if an error is a programming-contract violation
func IsContract(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}

// IsNotLoggedIn checks if an error indicates a missing or dead session
func IsNotLoggedIn(err error) bool {
	return errors.Is(err, ErrNotLoggedIn)
}
