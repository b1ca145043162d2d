package telemetry

import (
	"sync"
	"testing"
	"time"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.IncSyncsAttempted()
	m.IncSyncsAttempted()
	m.IncSyncsCompleted()
	m.IncSyncsSkipped()
	m.IncSectionMerges()
	m.IncBackupsCreated()

	summary := m.GetSummary()
	if summary["syncs_attempted"] != int64(2) {
		t.Fatalf("expected 2 attempted syncs, got %v", summary["syncs_attempted"])
	}
	if summary["syncs_completed"] != int64(1) {
		t.Fatalf("expected 1 completed sync, got %v", summary["syncs_completed"])
	}
	if summary["syncs_skipped"] != int64(1) {
		t.Fatalf("expected 1 skipped sync, got %v", summary["syncs_skipped"])
	}
}

func TestMetrics_SyncDuration(t *testing.T) {
	m := NewMetrics()
	m.RecordSyncDuration(10 * time.Millisecond)
	m.RecordSyncDuration(30 * time.Millisecond)

	summary := m.GetSummary()
	if summary["avg_sync_duration_ms"] != int64(20) {
		t.Fatalf("expected 20ms average, got %v", summary["avg_sync_duration_ms"])
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.IncSyncsFailed()
	m.Reset()

	if m.GetSummary()["syncs_failed"] != int64(0) {
		t.Fatal("expected reset counters")
	}
}

func TestMetrics_ConcurrentIncrements(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncSyncsAttempted()
		}()
	}
	wg.Wait()

	if m.GetSummary()["syncs_attempted"] != int64(50) {
		t.Fatalf("expected 50, got %v", m.GetSummary()["syncs_attempted"])
	}
}
