// Package testutil provides a shared fixture for tests that need a
// fully wired engine on top of a throwaway directory tree.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/myai-oss/memsync/internal/config"
	"github.com/myai-oss/memsync/internal/event"
	"github.com/myai-oss/memsync/internal/service"
	"github.com/myai-oss/memsync/internal/telemetry"
)

// TestHarness provides everything needed for integration tests:
// config, a live service over a temp directory, and captured events.
type TestHarness struct {
	T       *testing.T
	Config  *config.Config
	Service *service.Service
	Events  []event.Event
}

// NewTestHarness builds a harness rooted in t.TempDir. One destination
// named "claude" is preconfigured; cooldown is zero so repeated syncs
// are never throttled.
func NewTestHarness(t *testing.T) *TestHarness {
	t.Helper()

	root := t.TempDir()
	cfg := &config.Config{
		Name: "harness",
		Memory: config.MemoryConfig{
			Path:      filepath.Join(root, "memory.md"),
			BackupDir: filepath.Join(root, "backups"),
			PresetDir: filepath.Join(root, "presets"),
		},
		Platforms: []config.PlatformConfig{
			{Name: "claude", Path: filepath.Join(root, "claude", "CLAUDE.md")},
		},
		Sync:    config.SyncConfig{Cooldown: "0s", Debounce: "10ms"},
		History: config.HistoryConfig{Driver: "memory"},
		Logging: config.LoggingConfig{Level: "error", Format: "text"},
	}

	svc, err := service.New(cfg, telemetry.NewTestLogger())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = svc.Close() })

	h := &TestHarness{T: t, Config: cfg, Service: svc, Events: make([]event.Event, 0)}
	svc.RegisterHook(&eventCapture{harness: h})
	return h
}

// AddPlatform appends a destination under the harness root and
// rebuilds the service so the orchestrator picks it up.
func (h *TestHarness) AddPlatform(name string) string {
	h.T.Helper()

	path := filepath.Join(filepath.Dir(h.Config.Memory.Path), name, name+".md")
	h.Config.Platforms = append(h.Config.Platforms, config.PlatformConfig{Name: name, Path: path})

	svc, err := service.New(h.Config, telemetry.NewTestLogger())
	if err != nil {
		h.T.Fatal(err)
	}
	h.T.Cleanup(func() { _ = svc.Close() })
	svc.RegisterHook(&eventCapture{harness: h})
	h.Service = svc
	return path
}

// DestinationContent reads the named destination's file.
func (h *TestHarness) DestinationContent(name string) string {
	h.T.Helper()

	for _, p := range h.Config.Platforms {
		if p.Name == name {
			data, err := os.ReadFile(p.Path)
			if err != nil {
				h.T.Fatalf("read destination %s: %v", name, err)
			}
			return string(data)
		}
	}
	h.T.Fatalf("no destination named %s", name)
	return ""
}

// AssertEventEmitted checks that an event with the given type was emitted.
func (h *TestHarness) AssertEventEmitted(eventType event.EventType) {
	h.T.Helper()
	for _, e := range h.Events {
		if e.Type == eventType {
			return
		}
	}
	h.T.Errorf("expected event %q to be emitted", eventType)
}

// EventCount returns the number of events with the given type.
func (h *TestHarness) EventCount(eventType event.EventType) int {
	count := 0
	for _, e := range h.Events {
		if e.Type == eventType {
			count++
		}
	}
	return count
}

// eventCapture is a blocking hook that records events in order.
type eventCapture struct {
	harness *TestHarness
}

func (c *eventCapture) Name() string                 { return "test-capture" }
func (c *eventCapture) Matches(event.EventType) bool { return true }
func (c *eventCapture) IsBlocking() bool             { return true }

func (c *eventCapture) Handle(ev event.Event) error {
	c.harness.Events = append(c.harness.Events, ev)
	return nil
}
