// Package errors provides typed errors for promptpack
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrConfig indicates a configuration error
	ErrConfig ErrorType = iota
	// ErrInput indicates a missing or unreadable input path
	ErrInput
	// ErrManifest indicates an unreadable or malformed manifest
	ErrManifest
	// ErrEncoding indicates a file that could not be decoded
	ErrEncoding
	// ErrTokenizer indicates an unavailable or failing tokenizer
	ErrTokenizer
	// ErrOutput indicates an output write failure
	ErrOutput
)

// PackError is the base error type for all promptpack errors
type PackError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error returns the error message
func (e *PackError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", errorTypeString(e.Type), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", errorTypeString(e.Type), e.Message)
}

// Unwrap returns the underlying cause
func (e *PackError) Unwrap() error {
	return e.Cause
}

// New creates a new PackError
func New(errType ErrorType, message string, cause error) *PackError {
	return &PackError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var packErr *PackError
	if err == nil {
		return false
	}
	if errors.As(err, &packErr) {
		return packErr.Type == errType
	}
	return false
}

// IsFatal returns true if the error must abort the whole run.
// Per-file conditions (bad encoding, tokenizer failure on one file)
// are recoverable; everything touching configuration is not.
func IsFatal(err error) bool {
	var packErr *PackError
	if !errors.As(err, &packErr) {
		return err != nil
	}

	switch packErr.Type {
	case ErrConfig, ErrInput, ErrManifest, ErrTokenizer, ErrOutput:
		return true
	default:
		return false
	}
}

func errorTypeString(et ErrorType) string {
	switch et {
	case ErrConfig:
		return "CONFIG"
	case ErrInput:
		return "INPUT"
	case ErrManifest:
		return "MANIFEST"
	case ErrEncoding:
		return "ENCODING"
	case ErrTokenizer:
		return "TOKENIZER"
	case ErrOutput:
		return "OUTPUT"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *PackError {
	return New(ErrConfig, message, cause)
}

// InputError creates an input-path error
func InputError(message string, cause error) *PackError {
	return New(ErrInput, message, cause)
}

// ManifestError creates a manifest error
func ManifestError(message string, cause error) *PackError {
	return New(ErrManifest, message, cause)
}

// EncodingError creates an encoding error
func EncodingError(message string, cause error) *PackError {
	return New(ErrEncoding, message, cause)
}

// TokenizerError creates a tokenizer error
func TokenizerError(message string, cause error) *PackError {
	return New(ErrTokenizer, message, cause)
}

// OutputError creates an output write error
func OutputError(message string, cause error) *PackError {
	return New(ErrOutput, message, cause)
}
