package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// ConfigError reports unusable settings: a bad flag, profile or formatter
// option. It is raised when a configuration is built, never while a field
// is being edited.
type ConfigError struct {
	Message string
	// Cause is the parser or library error behind the message, if any.
	Cause error
}

func (e ConfigError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e ConfigError) Unwrap() error { return e.Cause }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// WrapConfigError turns cause into a ConfigError described by the
// formatted message. A nil cause gives nil.
func WrapConfigError(cause error, format string, a ...any) error {
	if cause == nil {
		return nil
	}
	return ConfigError{Message: fmt.Sprintf(format, a...), Cause: cause}
}

// ValidationError reports user input that cannot be processed, such as an
// empty mask descriptor or an unreadable batch file.
type ValidationError struct {
	// Field names the offending input.
	Field   string
	Message string
	Cause   error
}

func (e ValidationError) Error() string {
	msg := fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e ValidationError) Unwrap() error { return e.Cause }

// ParseAnomaly describes raw text that does not represent a well-formed
// partial number. The formatting engine absorbs it (the edit becomes a no-op)
// and only reports it to loggers.
type ParseAnomaly struct {
	// Input is the canonical text that failed to parse.
	Input  string
	Reason string
	Cause  error
}

func (e ParseAnomaly) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse anomaly in %q: %s: %v", e.Input, e.Reason, e.Cause)
	}
	return fmt.Sprintf("parse anomaly in %q: %s", e.Input, e.Reason)
}

func (e ParseAnomaly) Unwrap() error { return e.Cause }

// WrapError prefixes err with a formatted context message, keeping it
// reachable through errors.Is and errors.As. A nil err gives nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsConfigError reports whether err is, or wraps, a ConfigError.
func IsConfigError(err error) bool {
	var ce ConfigError
	return errors.As(err, &ce)
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
