package syncer

import (
	"os"
	"testing"
	"time"

	"github.com/myai-oss/memsync/internal/telemetry"
)

func newTestOrchestrator(t *testing.T, platforms ...*Platform) (*Orchestrator, *telemetry.Metrics) {
	t.Helper()
	metrics := telemetry.NewMetrics()
	return NewOrchestrator(platforms, telemetry.NewTestLogger(), metrics), metrics
}

func TestOrchestrator_SyncAll(t *testing.T) {
	a := newTestPlatform(t, "claude")
	b := newTestPlatform(t, "windsurf")
	o, metrics := newTestOrchestrator(t, a, b)

	run := o.SyncAll(testContent)
	if run.ID == "" {
		t.Fatal("expected a run ID")
	}
	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.Results))
	}
	// Results come back in configuration order.
	if run.Results[0].Destination != "claude" || run.Results[1].Destination != "windsurf" {
		t.Fatalf("unexpected result order: %+v", run.Results)
	}
	for _, res := range run.Results {
		if res.Status != StatusSynced {
			t.Fatalf("unexpected result: %+v", res)
		}
	}
	if metrics.GetSummary()["syncs_completed"] != int64(2) {
		t.Fatal("expected 2 completed syncs in metrics")
	}
}

func TestOrchestrator_FailureDoesNotShortCircuit(t *testing.T) {
	good := newTestPlatform(t, "claude")
	// Destination path is a directory, so its write fails.
	bad := NewPlatform("broken", t.TempDir(), time.Second, telemetry.NewTestLogger())
	o, _ := newTestOrchestrator(t, bad, good)

	run := o.SyncAll(testContent)
	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.Results))
	}
	if run.Results[0].Success || run.Results[0].Status != StatusFailed {
		t.Fatalf("expected broken destination to fail: %+v", run.Results[0])
	}
	if run.Results[0].Message == "" {
		t.Fatal("failure must carry a descriptive message")
	}
	if !run.Results[1].Success || run.Results[1].Status != StatusSynced {
		t.Fatalf("sibling destination must still sync: %+v", run.Results[1])
	}
	if readFile(t, good.Path()) != testContent {
		t.Fatal("good destination content missing")
	}
}

func TestOrchestrator_SyncOne(t *testing.T) {
	a := newTestPlatform(t, "claude")
	b := newTestPlatform(t, "windsurf")
	o, _ := newTestOrchestrator(t, a, b)

	run, err := o.SyncOne("windsurf", testContent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(run.Results) != 1 || run.Results[0].Destination != "windsurf" {
		t.Fatalf("unexpected results: %+v", run.Results)
	}

	// Untargeted destination untouched.
	if _, err := os.Stat(a.Path()); !os.IsNotExist(err) {
		t.Fatal("claude destination should not have been written")
	}
}

func TestOrchestrator_SyncOneUnknown(t *testing.T) {
	o, _ := newTestOrchestrator(t, newTestPlatform(t, "claude"))

	_, err := o.SyncOne("nope", testContent)
	if err == nil {
		t.Fatal("expected error for unknown destination")
	}
}

func TestOrchestrator_Platforms(t *testing.T) {
	o, _ := newTestOrchestrator(t, newTestPlatform(t, "claude"), newTestPlatform(t, "windsurf"))

	names := o.Platforms()
	if len(names) != 2 || names[0] != "claude" || names[1] != "windsurf" {
		t.Fatalf("unexpected platform names: %v", names)
	}
}
