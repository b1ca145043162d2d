// Package errors provides structured errors with machine-readable
// codes covering the memory engine's failure taxonomy.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for programmatic handling.
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeMergeFailed      = "MERGE_FAILED"
	CodeBackupFailed     = "BACKUP_FAILED"
	CodeSyncFailed       = "SYNC_FAILED"
	CodeSectionNotFound  = "SECTION_NOT_FOUND"
	CodePresetNotFound   = "PRESET_NOT_FOUND"
	CodeStoreIO          = "STORE_IO"
	CodeHistoryError     = "HISTORY_ERROR"
)

// SyncError is a structured error with a code and actionable suggestion.
type SyncError struct {
	Code       string // machine-readable code (e.g. MERGE_FAILED)
	Message    string // human-readable description
	Suggestion string // actionable fix
	Err        error  // wrapped underlying error
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap supports errors.Is / errors.As.
func (e *SyncError) Unwrap() error {
	return e.Err
}

// New creates a SyncError with the given code and message.
func New(code, message string) *SyncError {
	return &SyncError{Code: code, Message: message}
}

// Wrap creates a SyncError wrapping an existing error.
func Wrap(code, message string, err error) *SyncError {
	return &SyncError{Code: code, Message: message, Err: err}
}

// WithSuggestion returns a copy with the suggestion set.
func (e *SyncError) WithSuggestion(suggestion string) *SyncError {
	e.Suggestion = suggestion
	return e
}

// Is checks whether target matches this error's code.
func (e *SyncError) Is(target error) bool {
	var se *SyncError
	if errors.As(target, &se) {
		return e.Code == se.Code
	}
	return false
}

// AsCode extracts the SyncError code from an error, or "" if not a SyncError.
func AsCode(err error) string {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// Suggestion extracts the suggestion from an error, or "" if not a SyncError.
func Suggestion(err error) string {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Suggestion
	}
	return ""
}
