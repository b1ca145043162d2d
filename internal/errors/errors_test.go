package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSyncError_Error(t *testing.T) {
	err := New(CodeConfigInvalid, "missing platform name")
	expected := "[CONFIG_INVALID] missing platform name"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestSyncError_Wrap(t *testing.T) {
	inner := fmt.Errorf("permission denied")
	err := Wrap(CodeSyncFailed, "destination write failed", inner)

	if err.Error() != "[SYNC_FAILED] destination write failed: permission denied" {
		t.Errorf("unexpected error string: %s", err.Error())
	}

	// Unwrap should return inner
	if !errors.Is(err, inner) {
		t.Error("errors.Is should find inner error")
	}
}

func TestSyncError_WithSuggestion(t *testing.T) {
	err := New(CodeBackupFailed, "backup directory not writable").
		WithSuggestion("Check permissions on the backup_dir configured in memsync.yaml")

	if err.Suggestion != "Check permissions on the backup_dir configured in memsync.yaml" {
		t.Errorf("unexpected suggestion: %s", err.Suggestion)
	}
}

func TestSyncError_ErrorsAs(t *testing.T) {
	err := Wrap(CodeStoreIO, "canonical store unreadable", fmt.Errorf("no such file"))

	var syncErr *SyncError
	if !errors.As(err, &syncErr) {
		t.Fatal("errors.As should work")
	}
	if syncErr.Code != CodeStoreIO {
		t.Errorf("expected code %q, got %q", CodeStoreIO, syncErr.Code)
	}
}

func TestAsCode(t *testing.T) {
	err := New(CodeMergeFailed, "fragment did not parse")
	if AsCode(err) != CodeMergeFailed {
		t.Errorf("expected code %q, got %q", CodeMergeFailed, AsCode(err))
	}

	// Non-SyncError
	plain := fmt.Errorf("plain error")
	if AsCode(plain) != "" {
		t.Error("expected empty code for non-SyncError")
	}
}

func TestSuggestion(t *testing.T) {
	err := New(CodeSectionNotFound, "section not found").WithSuggestion("check the section title")
	if Suggestion(err) != "check the section title" {
		t.Errorf("expected 'check the section title', got %q", Suggestion(err))
	}

	// Non-SyncError
	if Suggestion(fmt.Errorf("plain")) != "" {
		t.Error("expected empty suggestion for non-SyncError")
	}
}

func TestSyncError_WrappedAs(t *testing.T) {
	inner := New(CodeValidationFailed, "bad document")
	wrapped := fmt.Errorf("update failed: %w", inner)

	var syncErr *SyncError
	if !errors.As(wrapped, &syncErr) {
		t.Fatal("errors.As should unwrap to SyncError")
	}
	if syncErr.Code != CodeValidationFailed {
		t.Errorf("expected code %q, got %q", CodeValidationFailed, syncErr.Code)
	}
}
