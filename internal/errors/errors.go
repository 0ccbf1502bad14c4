// Package errors provides centralized error definitions and error handling utilities
// for hookkit. It defines sentinel errors for each failure the hooks can report,
// domain error types carrying the file and field involved, and classification helpers.
//
// # Error Types
//
// Two categories of errors are produced:
//
//   - ConfigError: a structural problem in a configuration document. These abort the
//     whole run before any file is touched.
//   - SyncError: a problem with a single version-sync entry. These are collected and
//     reported per entry; sibling entries are still processed.
//
// # Usage
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrMissingFile) { ... }
//
//	var syncErr *errors.SyncError
//	if errors.As(err, &syncErr) {
//	    fmt.Println(syncErr.File)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Version sync sentinel errors
var (
	// ErrMissingFile indicates that a sync entry references a file that does not exist.
	ErrMissingFile = New("missing file")
	// ErrPlaceholderCount indicates that the version placeholder appears more than once.
	ErrPlaceholderCount = New("version placeholder must appear exactly once")
	// ErrInvalidPattern indicates that a pattern failed to compile.
	ErrInvalidPattern = New("invalid pattern")
	// ErrCaptureGroups indicates that a pattern does not have exactly one capture group.
	ErrCaptureGroups = New("pattern must have exactly one capture group")
	// ErrNoMatch indicates that a pattern did not match the file content.
	ErrNoMatch = New("pattern did not match")
)

// Configuration sentinel errors
var (
	// ErrConfigNotFound indicates that a configuration document does not exist.
	ErrConfigNotFound = New("config file not found")
	// ErrInvalidConfig indicates that a configuration document is malformed.
	ErrInvalidConfig = New("invalid config")
)

// -----------------------------------------------------------------------------
// Domain Errors
// -----------------------------------------------------------------------------

// ConfigError is a structural error in a configuration document.
//
// Example:
//
//	err := errors.NewConfigError(".versions.yaml", "name", "Missing top-level 'name' in .versions.yaml")
//	fmt.Println(err) // "Missing top-level 'name' in .versions.yaml"
type ConfigError struct {
	Path    string
	Field   string
	message string
	cause   error
}

// NewConfigError creates a new ConfigError for the given document and field.
func NewConfigError(path, field, message string) *ConfigError {
	return &ConfigError{Path: path, Field: field, message: message}
}

// WithCause adds an underlying cause, e.g. a decoder error.
func (e *ConfigError) WithCause(cause error) *ConfigError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ConfigError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.cause
}

// Is reports ErrInvalidConfig and any ConfigError as matching.
func (e *ConfigError) Is(target error) bool {
	if target == ErrInvalidConfig {
		return true
	}
	_, ok := target.(*ConfigError)
	return ok
}

// SyncError is a validation error for one version sync entry.
//
// Example:
//
//	err := errors.NewSyncError("rust", "MODULE.bazel", `rust:\s*([0-9.]+)`, errors.ErrNoMatch)
//	fmt.Println(err) // "sync_versions entry 'rust' pattern did not match in MODULE.bazel: rust:\s*([0-9.]+)"
type SyncError struct {
	Spec    string
	File    string
	Pattern string
	kind    error
	cause   error
}

// NewSyncError creates a new SyncError of the given kind. Kind should be one of the
// version sync sentinel errors.
func NewSyncError(spec, file, pattern string, kind error) *SyncError {
	return &SyncError{Spec: spec, File: file, Pattern: pattern, kind: kind}
}

// WithCause adds the underlying engine error, e.g. a regex compile failure.
func (e *SyncError) WithCause(cause error) *SyncError {
	e.cause = cause
	return e
}

// Kind returns the sentinel describing what went wrong.
func (e *SyncError) Kind() error {
	return e.kind
}

// Error returns the formatted error message.
func (e *SyncError) Error() string {
	prefix := fmt.Sprintf("sync_versions entry '%s'", e.Spec)
	switch e.kind {
	case ErrMissingFile:
		return fmt.Sprintf("%s references missing file: %s", prefix, e.File)
	case ErrPlaceholderCount:
		return fmt.Sprintf("%s pattern must include %s exactly once in %s: %s", prefix, placeholderName, e.File, e.Pattern)
	case ErrInvalidPattern:
		return fmt.Sprintf("%s has invalid pattern for %s: %v", prefix, e.File, e.cause)
	case ErrCaptureGroups:
		return fmt.Sprintf("%s pattern must have exactly one capture group in %s: %s", prefix, e.File, e.Pattern)
	case ErrNoMatch:
		return fmt.Sprintf("%s pattern did not match in %s: %s", prefix, e.File, e.Pattern)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s failed for %s: %v", prefix, e.File, e.cause)
	}
	return fmt.Sprintf("%s failed for %s", prefix, e.File)
}

// Unwrap returns the underlying error.
func (e *SyncError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *SyncError) Is(target error) bool {
	if _, ok := target.(*SyncError); ok {
		return true
	}
	return e.kind != nil && e.kind == target
}

// placeholderName mirrors versionsync.Placeholder; duplicated to avoid an import cycle.
const placeholderName = "THE_VERSION"

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is meant to be printed to users as is.
func IsUserFacing(err error) bool {
	var cfgErr *ConfigError
	var syncErr *SyncError
	return As(err, &cfgErr) || As(err, &syncErr)
}

// Wrap wraps an error with additional context. Returns nil if err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
