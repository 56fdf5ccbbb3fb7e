// Package apperrors holds the error classes the CLI turns into exit codes.
//
// ConfigError covers settings, ValidationError covers user input, and
// ParseAnomaly is internal to the formatting engine, which logs it and
// treats the edit as a no-op. Every type carries an optional Cause and
// implements Unwrap, so errors.Is and errors.As see through them.
package apperrors
