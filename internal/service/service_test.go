package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/myai-oss/memsync/internal/config"
	syncerrors "github.com/myai-oss/memsync/internal/errors"
	"github.com/myai-oss/memsync/internal/syncer"
	"github.com/myai-oss/memsync/internal/telemetry"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Name: "test",
		Memory: config.MemoryConfig{
			Path:      filepath.Join(dir, "memory.md"),
			BackupDir: filepath.Join(dir, "backups"),
			PresetDir: filepath.Join(dir, "presets"),
		},
		Platforms: []config.PlatformConfig{
			{Name: "claude", Path: filepath.Join(dir, "dest", "CLAUDE.md")},
			{Name: "windsurf", Path: filepath.Join(dir, "dest", ".windsurfrules")},
		},
		Sync:    config.SyncConfig{Cooldown: "1s"},
		History: config.HistoryConfig{Driver: "memory"},
	}

	svc, err := New(cfg, telemetry.NewTestLogger())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestService_SynthesizesDefaultDocument(t *testing.T) {
	svc := newTestService(t)

	text := svc.GetTemplate()
	if !strings.Contains(text, "# User Information") {
		t.Fatalf("expected default section, got %q", text)
	}
	if _, err := os.Stat(svc.StorePath()); err != nil {
		t.Fatal("default document must be persisted on first access")
	}
}

func TestService_UpdateSectionPersists(t *testing.T) {
	svc := newTestService(t)

	if err := svc.UpdateSection("User Information", "-~- Name: Alice\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(svc.StorePath())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "-~- Name: Alice") {
		t.Fatalf("canonical store missing merged item:\n%s", data)
	}
}

func TestService_UpdateSectionBackupBeforeWrite(t *testing.T) {
	svc := newTestService(t)

	before := svc.GetTemplate()
	if err := svc.UpdateSection("User Information", "-~- Name: Alice\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	backups, err := svc.ListBackups()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected exactly one backup, got %v", backups)
	}

	if err := svc.RestoreBackup(backups[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.GetTemplate() != before {
		t.Fatalf("restore must reproduce pre-mutation content:\n%q\nvs\n%q", svc.GetTemplate(), before)
	}
}

func TestService_GetSectionCaseInsensitive(t *testing.T) {
	svc := newTestService(t)

	text, err := svc.GetSection("user information")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(text, "# User Information") {
		t.Fatalf("unexpected section text: %q", text)
	}
}

func TestService_GetSectionNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetSection("missing")
	if syncerrors.AsCode(err) != syncerrors.CodeSectionNotFound {
		t.Fatalf("expected SECTION_NOT_FOUND, got %v", err)
	}
}

func TestService_UpdateTemplateRejectsInvalid(t *testing.T) {
	svc := newTestService(t)
	before := svc.GetTemplate()

	err := svc.UpdateTemplate("garbage, not a document")
	if syncerrors.AsCode(err) != syncerrors.CodeValidationFailed {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
	if svc.GetTemplate() != before {
		t.Fatal("rejected replace must leave prior state untouched")
	}
}

func TestService_SyncAllWritesDestinations(t *testing.T) {
	svc := newTestService(t)

	run := svc.SyncAll()
	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %+v", run.Results)
	}
	for _, res := range run.Results {
		if res.Status != syncer.StatusSynced {
			t.Fatalf("unexpected result: %+v", res)
		}
	}

	for _, st := range svc.PlatformStates() {
		data, err := os.ReadFile(st.Path)
		if err != nil {
			t.Fatalf("destination %s missing: %v", st.Name, err)
		}
		if string(data) != svc.GetTemplate() {
			t.Fatalf("destination %s content mismatch", st.Name)
		}
		if !st.InCooldown {
			t.Fatalf("destination %s should be cooling down", st.Name)
		}
	}
}

func TestService_SyncRecordsHistory(t *testing.T) {
	svc := newTestService(t)

	run := svc.SyncAll()
	entries, err := svc.History(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.RunID != run.ID {
			t.Fatalf("entry not linked to run: %+v", e)
		}
	}
}

func TestService_SyncOne(t *testing.T) {
	svc := newTestService(t)

	run, err := svc.SyncOne("claude")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(run.Results) != 1 || run.Results[0].Destination != "claude" {
		t.Fatalf("unexpected results: %+v", run.Results)
	}

	if _, err := svc.SyncOne("nope"); err == nil {
		t.Fatal("expected error for unknown destination")
	}
}

func TestService_Presets(t *testing.T) {
	svc := newTestService(t)

	if err := svc.UpdateSection("Work", "-~- Workplace: Initech\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.CreatePreset("work"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	withWork := svc.GetTemplate()

	if err := svc.UpdateTemplate("# myAI Memory\n\n# Other\n-~- K: V\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	run, err := svc.LoadPreset("work")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.GetTemplate() != withWork {
		t.Fatal("preset load must restore the snapshotted document")
	}
	if len(run.Results) != 2 {
		t.Fatalf("preset load must fan out, got %+v", run.Results)
	}

	names, err := svc.ListPresets()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 1 || names[0] != "work" {
		t.Fatalf("unexpected presets: %v", names)
	}
}

func TestService_LoadPresetMissing(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.LoadPreset("ghost")
	if syncerrors.AsCode(err) != syncerrors.CodePresetNotFound {
		t.Fatalf("expected PRESET_NOT_FOUND, got %v", err)
	}
}

func TestService_FreeTextUpdate(t *testing.T) {
	svc := newTestService(t)

	if err := svc.UpdateSection("User Information", "I live in London"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := svc.GetSection("User Information")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "-~- Location: London") {
		t.Fatalf("expected extracted item, got %q", text)
	}
}

func TestService_ListSections(t *testing.T) {
	svc := newTestService(t)

	if err := svc.UpdateSection("Work", "-~- Workplace: Initech\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	titles := svc.ListSections()
	if len(titles) != 2 || titles[0] != "User Information" || titles[1] != "Work" {
		t.Fatalf("unexpected sections: %v", titles)
	}
}
