package history

import (
	"path/filepath"
	"testing"

	"github.com/myai-oss/memsync/internal/syncer"
)

func sampleRun(id string) syncer.Run {
	return syncer.Run{
		ID: id,
		Results: []syncer.Result{
			{Destination: "claude", Success: true, Status: syncer.StatusSynced, Message: "synced"},
			{Destination: "windsurf", Success: false, Status: syncer.StatusFailed, Message: "permission denied"},
		},
	}
}

func TestManager_RecordAndList(t *testing.T) {
	mgr, err := NewManager("memory", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mgr.Close()

	if err := mgr.RecordRun(sampleRun("run-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := mgr.List(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.ID == "" || e.RunID != "run-1" {
			t.Fatalf("malformed entry: %+v", e)
		}
	}
}

func TestManager_ListRun(t *testing.T) {
	mgr, err := NewManager("memory", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mgr.Close()

	if err := mgr.RecordRun(sampleRun("run-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.RecordRun(sampleRun("run-2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := mgr.Run("run-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries for run-2, got %d", len(entries))
	}
	if entries[0].Destination != "claude" || entries[1].Destination != "windsurf" {
		t.Fatalf("expected insertion order, got %+v", entries)
	}
}

func TestManager_UnsupportedDriver(t *testing.T) {
	_, err := NewManager("postgres", "")
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	mgr, err := NewManager("sqlite", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mgr.Close()

	if err := mgr.RecordRun(sampleRun("run-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := mgr.List(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Status != string(syncer.StatusFailed) && entries[1].Status != string(syncer.StatusFailed) {
		t.Fatalf("expected a failed entry, got %+v", entries)
	}
}

func TestSQLiteStore_Limit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	mgr, err := NewManager("sqlite", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mgr.Close()

	for i := 0; i < 3; i++ {
		if err := mgr.RecordRun(sampleRun("run")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, err := mgr.List(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected limit of 4 entries, got %d", len(entries))
	}
}
