package errors

import (
	"errors"
	"fmt"
)

// DoctorError is the structured error type for devdoctor.
// It provides context for logging and user presentation.
type DoctorError struct {
	// Code is the unique error code (e.g., "ERR_101_CONFIG_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, ...).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *DoctorError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *DoctorError) Unwrap() error {
	return e.Cause
}

// Is matches another DoctorError by code, so sentinel errors work with errors.Is.
func (e *DoctorError) Is(target error) bool {
	if t, ok := target.(*DoctorError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *DoctorError) WithDetail(key, value string) *DoctorError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *DoctorError) WithSuggestion(suggestion string) *DoctorError {
	e.Suggestion = suggestion
	return e
}

// New creates a new DoctorError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *DoctorError {
	return &DoctorError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a DoctorError from an existing error.
func Wrap(code string, err error) *DoctorError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *DoctorError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError creates a state-directory error.
func IOError(message string, cause error) *DoctorError {
	return New(ErrCodeStateDir, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *DoctorError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *DoctorError {
	return New(ErrCodeInternal, message, cause)
}

// GetCode extracts the error code from a DoctorError anywhere in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var de *DoctorError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
